// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package semantickernel normalizes Microsoft Semantic Kernel
// descriptions: kernels, agents, plugins, planners, and memory stores.
package semantickernel

import (
	"strings"

	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "semantic_kernel"

// Fingerprint reports whether m carries Semantic Kernel-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{"kernel", "kernel_config", "planner", "plugins", "skills"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Normalize maps a Semantic Kernel description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Semantic Kernel Agent", "Microsoft Semantic Kernel AI orchestration")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	kernelConfig := record.Map(m["kernel_config"])
	if kernelConfig == nil {
		kernelConfig = record.Map(m["kernel"])
	}
	if kernelConfig != nil {
		if aiService := record.Map(kernelConfig["ai_service"]); aiService != nil {
			if model := record.String(aiService["model"]); model != "" {
				rec.SetMeta("model", model)
				rec.AddCapabilityf("model:%s", model)
			}
			if kind := record.String(aiService["service_type"]); kind != "" {
				rec.AddCapabilityf("ai_service:%s", kind)
			}
		}
		if model := record.String(kernelConfig["model"]); model != "" {
			rec.SetMeta("model", model)
			rec.AddCapabilityf("model:%s", model)
		}
		if functions := record.List(kernelConfig["functions"]); functions != nil {
			rec.SetMeta("functionCount", len(functions))
			rec.AddCapabilityf("functions:%d", len(functions))
		}
	}

	if agentConfig := record.Map(m["agent"]); agentConfig != nil {
		if instructions := record.String(agentConfig["instructions"]); instructions != "" {
			rec.SetMeta("instructions", instructions)
			rec.SetDescription(record.Summary(instructions, 200))
		}
		for _, plugin := range record.Strings(agentConfig["plugins"]) {
			rec.AddCapabilityf("plugin:%s", plugin)
		}
	}

	switch plugins := m["plugins"].(type) {
	case []any:
		rec.SetMeta("pluginCount", len(plugins))
		rec.AddCapabilityf("plugins:%d", len(plugins))
		for _, name := range record.Strings(plugins) {
			rec.AddCapabilityf("plugin:%s", name)
		}
	case map[string]any:
		rec.SetMeta("pluginCount", len(plugins))
		rec.AddCapabilityf("plugins:%d", len(plugins))
		for name := range plugins {
			rec.AddCapabilityf("plugin:%s", name)
		}
	}

	if skills := record.List(m["skills"]); skills != nil {
		rec.SetMeta("skillCount", len(skills))
		rec.AddCapabilityf("skills:%d", len(skills))
	}

	if functions := record.List(m["functions"]); functions != nil {
		rec.SetMeta("functionCount", len(functions))
		rec.AddCapabilityf("functions:%d", len(functions))
	}

	switch planner := m["planner"].(type) {
	case string:
		rec.AddCapabilityf("planner:%s", strings.ToLower(planner))
	case map[string]any:
		kind := record.String(planner["type"])
		if kind == "" {
			kind = "sequential"
		}
		rec.AddCapabilityf("planner:%s", kind)
		rec.SetMeta("plannerConfig", planner)
	}

	if memory, ok := m["memory"]; ok && record.Bool(memory) {
		rec.AddCapability("memory:enabled")
		if cfg := record.Map(memory); cfg != nil {
			kind := record.String(cfg["type"])
			if kind == "" {
				kind = "semantic"
			}
			rec.SetMeta("memoryType", kind)
		}
	}

	if _, ok := m["process"]; ok {
		rec.AddCapability("process:enabled")
		rec.SetMeta("hasProcess", true)
	} else if _, ok := m["workflow"]; ok {
		rec.AddCapability("process:enabled")
		rec.SetMeta("hasProcess", true)
	}

	if record.Bool(m["orchestration"]) {
		rec.AddCapability("orchestration:enabled")
	}

	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapabilityFacet("planner") {
		score += 5
	}
	if rec.HasCapabilityFacet("plugin") {
		score += 3
	}
	if rec.HasCapability("memory:enabled") {
		score += 5
	}
	if rec.HasCapability("process:enabled") {
		score += 5
	}
	if rec.MetaInt("functionCount") > 5 {
		score += 3
	}
	return score
}
