// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package swarm normalizes OpenAI Swarm agent descriptions: instructions,
// functions, handoffs, and multi-agent swarms.
package swarm

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "swarm"

// Fingerprint reports whether m carries Swarm-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["handoffs"]; ok {
		return true
	}
	if _, ok := m["can_handoff_to"]; ok {
		return true
	}
	if _, ok := m["routines"]; ok {
		return true
	}
	_, hasInstructions := m["instructions"]
	_, hasFunctions := m["functions"]
	return hasInstructions && hasFunctions
}

// Normalize maps a Swarm description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Swarm Agent", "OpenAI Swarm agent for lightweight orchestration")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if raw, ok := m["instructions"]; ok {
		if instructions := record.String(raw); instructions != "" {
			rec.SetMeta("instructions", instructions)
			rec.SetDescription(record.Summary(instructions, 200))
		} else if raw != nil {
			// non-string instructions are computed at runtime, e.g. a
			// function value surfaced through a Describer
			rec.SetDescription("Swarm agent with dynamic instructions")
			rec.AddCapability("dynamic_instructions:enabled")
		}
	}

	if functions := record.List(m["functions"]); functions != nil {
		rec.SetMeta("functionCount", len(functions))
		rec.AddCapabilityf("functions:%d", len(functions))
		for _, fn := range record.Strings(m["functions"]) {
			rec.AddCapabilityf("function:%s", fn)
		}
	}

	if model := record.String(m["model"]); model != "" {
		rec.SetMeta("model", model)
		rec.AddCapabilityf("model:%s", model)
	}

	if agents := record.List(m["agents"]); agents != nil {
		rec.SetMeta("agentCount", len(agents))
		rec.AddCapabilityf("agents:%d", len(agents))
		if names := record.Strings(m["agents"]); len(names) > 0 {
			rec.SetMeta("agentNames", names)
		}
	}

	handoffs, hasHandoffs := m["handoffs"]
	if !hasHandoffs {
		handoffs, hasHandoffs = m["can_handoff_to"]
	}
	if hasHandoffs {
		rec.AddCapability("handoffs:enabled")
		if targets := record.List(handoffs); len(targets) > 0 {
			rec.SetMeta("handoffTargets", targets)
		}
	}

	if routines := record.List(m["routines"]); routines != nil {
		rec.AddCapability("routines:enabled")
		rec.SetMeta("routineCount", len(routines))
	}

	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("handoffs:enabled") {
		score += 5
	}
	if rec.HasCapability("dynamic_instructions:enabled") {
		score += 3
	}
	if rec.MetaInt("functionCount") > 3 {
		score += 3
	}
	if rec.MetaInt("agentCount") > 1 {
		score += 5
	}
	return score
}
