// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package crewai normalizes CrewAI agent, crew, and task descriptions.
package crewai

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "crewai"

// Fingerprint reports whether m carries CrewAI-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["role"]; ok {
		if _, ok := m["goal"]; ok {
			return true
		}
	}
	if _, ok := m["backstory"]; ok {
		return true
	}
	if _, ok := m["crew"]; ok {
		return true
	}
	_, hasAgents := m["agents"]
	_, hasTasks := m["tasks"]
	_, hasProcess := m["process"]
	return hasAgents && (hasTasks || hasProcess)
}

// Normalize maps a CrewAI description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed CrewAI Agent", "A CrewAI-based autonomous agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if role := record.String(m["role"]); role != "" {
		rec.SetMeta("role", role)
		rec.AddCapabilityf("role:%s", role)
		rec.SetName("CrewAI " + role + " Agent")
	}

	if goal := record.String(m["goal"]); goal != "" {
		rec.SetMeta("goal", goal)
	}

	if backstory := record.String(m["backstory"]); backstory != "" {
		rec.SetMeta("backstory", backstory)
		rec.SetDescription(record.Summary(backstory, 200))
	}

	for _, tool := range record.Strings(m["tools"]) {
		rec.AddCapabilityf("tool:%s", tool)
	}

	if llm := record.String(m["llm"]); llm != "" {
		rec.SetMeta("llm", llm)
		rec.AddCapabilityf("llm:%s", llm)
	}

	if _, ok := m["memory"]; ok {
		rec.AddCapability("memory:enabled")
		rec.SetMeta("memory", m["memory"])
	}

	if _, ok := m["max_iter"]; ok {
		rec.SetMeta("maxIterations", m["max_iter"])
	}

	// A crew aggregates into counts and role lists instead of flattening
	// each member into the top-level record.
	if agents := record.List(m["agents"]); agents != nil {
		rec.SetMeta("agentCount", len(agents))
		rec.AddCapabilityf("agents:%d", len(agents))
		if roles := memberRoles(agents); len(roles) > 0 {
			rec.SetMeta("agentRoles", roles)
		}
	}
	if tasks := record.List(m["tasks"]); tasks != nil {
		rec.SetMeta("taskCount", len(tasks))
		rec.AddCapabilityf("tasks:%d", len(tasks))
	}
	if process := record.String(m["process"]); process != "" {
		rec.SetMeta("process", process)
		rec.AddCapabilityf("process:%s", process)
	}

	rec.MergeCapabilities(m["capabilities"])
	rec.CopyIdentity(m)
}

func memberRoles(agents []any) []string {
	roles := make([]string, 0, len(agents))
	for _, a := range agents {
		if role := record.String(record.Map(a)["role"]); role != "" {
			roles = append(roles, role)
		}
	}
	return roles
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("memory:enabled") {
		score += 5
	}
	if rec.MetaInt("agentCount") > 1 {
		score += 5
	}
	if rec.MetaString("role") != "" {
		score += 3
	}
	return score
}
