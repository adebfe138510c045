// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package babyagi normalizes BabyAGI autonomous task-management agent
// descriptions.
package babyagi

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "babyagi"

// Fingerprint reports whether m carries BabyAGI-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["objective"]; ok {
		return true
	}
	if _, ok := m["initial_task"]; ok {
		return true
	}
	if _, ok := m["first_task"]; ok {
		return true
	}
	_, hasCreation := m["task_creation_chain"]
	_, hasPriority := m["task_prioritization_chain"]
	return hasCreation || hasPriority
}

// Normalize maps a BabyAGI description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed BabyAGI Agent", "Autonomous task management AI system")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if objective := record.String(m["objective"]); objective != "" {
		rec.SetMeta("objective", objective)
		rec.SetDescription("BabyAGI pursuing: " + objective)
		rec.AddCapability("autonomous:enabled")
	}

	initial, ok := m["initial_task"]
	if !ok {
		initial, ok = m["first_task"]
	}
	if ok {
		rec.SetMeta("initialTask", initial)
	}

	tasks, ok := m["task_list"]
	if !ok {
		tasks, ok = m["tasks"]
	}
	if ok {
		if list := record.List(tasks); list != nil {
			rec.SetMeta("taskCount", len(list))
			rec.AddCapabilityf("tasks:%d", len(list))
			if len(list) > 0 && record.Map(list[0]) != nil {
				rec.SetMeta("taskStructure", "complex")
				rec.AddCapability("task_prioritization:enabled")
			}
		}
	}

	store, ok := m["vectorstore"]
	if !ok {
		store, ok = m["memory_backend"]
	}
	if ok {
		rec.AddCapability("memory:enabled")
		rec.AddCapability("vectorstore:enabled")
		if cfg := record.Map(store); cfg != nil {
			if kind := record.String(cfg["type"]); kind != "" {
				rec.SetMeta("vectorstoreType", kind)
			}
		}
	}

	model, ok := m["llm"]
	if !ok {
		model, ok = m["model"]
	}
	if ok {
		switch v := model.(type) {
		case string:
			rec.SetMeta("model", v)
			rec.AddCapabilityf("model:%s", v)
		case map[string]any:
			if name := record.String(v["model_name"]); name != "" {
				rec.SetMeta("model", name)
				rec.AddCapabilityf("model:%s", name)
			}
		}
	}

	if chain := record.Map(m["execution_chain"]); chain != nil {
		rec.AddCapability("execution_chain:enabled")
		kind := record.String(chain["type"])
		if kind == "" {
			kind = "default"
		}
		rec.SetMeta("executionChainType", kind)
	} else if _, ok := m["execution_chain"]; ok {
		rec.AddCapability("execution_chain:enabled")
	}

	if _, ok := m["max_iterations"]; ok {
		rec.SetMeta("maxIterations", m["max_iterations"])
	}

	if _, ok := m["task_creation_chain"]; ok {
		rec.AddCapability("task_creation:enabled")
	}
	if _, ok := m["task_prioritization_chain"]; ok {
		rec.AddCapability("task_prioritization:enabled")
	}

	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("autonomous:enabled") {
		score += 5
	}
	if rec.HasCapability("vectorstore:enabled") {
		score += 5
	}
	if rec.HasCapability("task_creation:enabled") {
		score += 5
	}
	if rec.HasCapability("task_prioritization:enabled") {
		score += 3
	}
	if rec.MetaInt("taskCount") > 5 {
		score += 3
	}
	return score
}
