// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package agentstack normalizes AgentStack agent and swarm descriptions,
// including YAML-defined multi-agent configurations.
package agentstack

import (
	"fmt"

	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "agentstack"

// Fingerprint reports whether m carries AgentStack-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["swarm_architecture"]; ok {
		return true
	}
	if _, ok := m["agent_name"]; ok {
		_, hasPrompt := m["system_prompt"]
		_, hasLoops := m["max_loops"]
		return hasPrompt || hasLoops
	}
	for _, a := range record.List(m["agents"]) {
		if _, ok := record.Map(a)["system_prompt"]; ok {
			return true
		}
	}
	return false
}

// Normalize maps an AgentStack description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed AgentStack Agent", "AgentStack AI agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

// metaFields maps AgentStack config keys onto metadata keys.
var metaFields = map[string]string{
	"max_loops":                   "maxLoops",
	"autosave":                    "autosave",
	"dashboard":                   "dashboard",
	"verbose":                     "verbose",
	"dynamic_temperature_enabled": "dynamicTemperature",
	"saved_state_path":            "savedStatePath",
	"user_name":                   "userName",
	"retry_attempts":              "retryAttempts",
	"context_length":              "contextLength",
	"return_step_meta":            "returnStepMeta",
	"output_type":                 "outputType",
}

func extract(m map[string]any, rec *record.Agent) {
	switch {
	case record.List(m["agents"]) != nil:
		agents := record.List(m["agents"])
		if len(agents) == 1 {
			extractSingle(record.Map(agents[0]), rec)
		} else {
			extractSwarm(m, agents, rec)
		}
	case m["agent_name"] != nil || m["name"] != nil:
		extractSingle(m, rec)
	case record.Map(m["swarm_architecture"]) != nil:
		extractArchitecture(record.Map(m["swarm_architecture"]), rec)
	}

	rec.CopyIdentity(m)
}

func extractSingle(agent map[string]any, rec *record.Agent) {
	if agent == nil {
		return
	}
	name := record.String(agent["agent_name"])
	if name == "" {
		name = record.String(agent["name"])
	}
	rec.SetName(name)

	if prompt := record.String(agent["system_prompt"]); prompt != "" {
		rec.SetDescription(record.Summary(prompt, 200))
		rec.SetMeta("systemPrompt", prompt)
	}

	model := record.String(agent["model"])
	if model == "" {
		model = record.String(agent["llm"])
	}
	if model != "" {
		rec.SetMeta("model", model)
		rec.AddCapabilityf("model:%s", model)
	}

	for key, metaKey := range metaFields {
		if v, ok := agent[key]; ok {
			rec.SetMeta(metaKey, v)
		}
	}

	for _, tool := range record.Strings(agent["tools"]) {
		rec.AddCapabilityf("tool:%s", tool)
	}

	if _, ok := agent["memory"]; ok || record.Bool(agent["autosave"]) {
		rec.AddCapability("memory:enabled")
	}
	if record.Bool(agent["dynamic_temperature_enabled"]) {
		rec.AddCapability("dynamic_temperature:enabled")
	}
	if record.Bool(agent["return_step_meta"]) {
		rec.AddCapability("step_metadata:enabled")
	}
}

func extractSwarm(m map[string]any, agents []any, rec *record.Agent) {
	name := record.String(m["swarm_name"])
	if name == "" {
		name = "AgentStack Swarm"
	}
	rec.SetName(name)
	rec.SetDescription(fmt.Sprintf("AgentStack swarm with %d agents", len(agents)))
	rec.SetMeta("agentCount", len(agents))
	rec.AddCapabilityf("agents:%d", len(agents))

	names := make([]string, 0, len(agents))
	for _, a := range agents {
		agent := record.Map(a)
		agentName := record.String(agent["agent_name"])
		if agentName == "" {
			agentName = record.String(agent["name"])
		}
		if agentName == "" {
			agentName = "Unknown"
		}
		names = append(names, agentName)
		if _, ok := agent["system_prompt"]; ok {
			rec.AddCapabilityf("agent:%s", agentName)
		}
	}
	rec.SetMeta("agentNames", names)
}

func extractArchitecture(swarm map[string]any, rec *record.Agent) {
	name := record.String(swarm["name"])
	if name == "" {
		name = "AgentStack Swarm"
	}
	rec.SetName(name)
	rec.SetDescription(record.String(swarm["description"]))

	kind := record.String(swarm["swarm_type"])
	if kind == "" {
		kind = "ConcurrentWorkflow"
	}
	rec.SetMeta("swarmType", kind)
	rec.AddCapabilityf("swarm_type:%s", kind)

	if task := record.String(swarm["task"]); task != "" {
		rec.SetMeta("task", task)
	}
	if _, ok := swarm["max_loops"]; ok {
		rec.SetMeta("maxLoops", swarm["max_loops"])
	}
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if record.Bool(rec.Metadata["autosave"]) {
		score += 3
	}
	if rec.MetaInt("agentCount") > 1 {
		score += 5
	}
	if rec.MetaInt("contextLength") > 50000 {
		score += 3
	}
	if record.Bool(rec.Metadata["dynamicTemperature"]) {
		score += 2
	}
	return score
}
