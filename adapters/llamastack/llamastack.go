// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package llamastack normalizes Meta Llama Stack agent descriptions:
// agentic API configs, tools, memory, safety shields, and multi-turn
// settings.
package llamastack

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "llamastack"

// Fingerprint reports whether m carries Llama Stack-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["agent_config"]; ok {
		return true
	}
	if safety := record.Map(m["safety"]); safety != nil {
		if _, ok := safety["shields"]; ok {
			return true
		}
	}
	_, hasMultiTurn := m["multi_turn"]
	_, hasTurnConfig := m["turn_config"]
	return hasMultiTurn || hasTurnConfig
}

// Normalize maps a Llama Stack description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Llama Stack Agent", "Meta Llama Stack agentic application")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	agentConfig := record.Map(m["agent_config"])
	if agentConfig == nil {
		agentConfig = record.Map(m["agent"])
	}
	if agentConfig != nil {
		if prompt := record.String(agentConfig["system_prompt"]); prompt != "" {
			rec.SetMeta("systemPrompt", prompt)
			rec.SetDescription(record.Summary(prompt, 200))
		}
		if model := record.String(agentConfig["model"]); model != "" {
			rec.SetMeta("model", model)
			rec.AddCapabilityf("model:%s", model)
		}
		if _, ok := agentConfig["temperature"]; ok {
			rec.SetMeta("temperature", agentConfig["temperature"])
		}
	}

	extractTools(m["tools"], rec)

	if memory, ok := m["memory"]; ok && record.Bool(memory) {
		rec.AddCapability("memory:enabled")
		if cfg := record.Map(memory); cfg != nil {
			if kind := record.String(cfg["type"]); kind != "" {
				rec.SetMeta("memoryType", kind)
			}
			if store := record.String(cfg["store"]); store != "" {
				rec.SetMeta("memoryStore", store)
			}
		}
	}

	if _, ok := m["safety"]; ok {
		rec.AddCapability("safety:enabled")
		if safety := record.Map(m["safety"]); safety != nil {
			if shields := record.List(safety["shields"]); shields != nil {
				rec.SetMeta("shields", shields)
				rec.AddCapabilityf("shields:%d", len(shields))
			}
		}
	}

	turnConfig, ok := m["multi_turn"]
	if !ok {
		turnConfig, ok = m["turn_config"]
	}
	if ok {
		rec.AddCapability("multi_turn:enabled")
		if cfg := record.Map(turnConfig); cfg != nil {
			if _, ok := cfg["max_turns"]; ok {
				rec.SetMeta("maxTurns", cfg["max_turns"])
			}
		}
	}

	if record.Bool(m["code_execution"]) {
		rec.AddCapability("code_execution:enabled")
	}

	rec.CopyIdentity(m)
}

func extractTools(v any, rec *record.Agent) {
	tools := record.List(v)
	if tools == nil {
		return
	}
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		switch tool := t.(type) {
		case string:
			names = append(names, tool)
			rec.AddCapabilityf("tool:%s", tool)
			switch tool {
			case "web_search":
				rec.AddCapability("web_search:enabled")
			case "code_interpreter":
				rec.AddCapability("code_execution:enabled")
			}
		case map[string]any:
			name := record.String(tool["name"])
			if name == "" {
				name = record.String(tool["type"])
			}
			if name == "" {
				name = "unknown"
			}
			names = append(names, name)
			rec.AddCapabilityf("tool:%s", name)
			switch record.String(tool["type"]) {
			case "code_interpreter":
				rec.AddCapability("code_execution:enabled")
			case "web_search":
				rec.AddCapability("web_search:enabled")
			}
		}
	}
	if len(names) > 0 {
		rec.SetMeta("tools", names)
		rec.SetMeta("toolCount", len(names))
		rec.AddCapabilityf("tools:%d", len(names))
	}
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("memory:enabled") {
		score += 5
	}
	if rec.HasCapability("safety:enabled") {
		score += 5
	}
	if rec.HasCapability("code_execution:enabled") {
		score += 5
	}
	if rec.MetaInt("toolCount") > 3 {
		score += 3
	}
	if rec.HasCapability("multi_turn:enabled") {
		score += 3
	}
	return score
}
