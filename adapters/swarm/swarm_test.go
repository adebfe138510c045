// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package swarm

import "testing"

func TestNormalizeAgent(t *testing.T) {
	rec := Normalize(map[string]any{
		"name":         "Triage Agent",
		"instructions": "Route the user to the right specialist based on their request.",
		"functions":    []any{"transfer_to_sales", "transfer_to_support"},
		"model":        "gpt-4o-mini",
		"handoffs":     []any{"sales", "support"},
	})

	if rec.Name != "Triage Agent" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{
		"functions:2",
		"function:transfer_to_sales",
		"model:gpt-4o-mini",
		"handoffs:enabled",
	} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaInt("functionCount") != 2 {
		t.Errorf("functionCount = %d", rec.MetaInt("functionCount"))
	}
}

func TestNormalizeDynamicInstructions(t *testing.T) {
	rec := Normalize(map[string]any{
		"instructions": func() string { return "computed" },
		"functions":    []any{"f"},
	})

	if !rec.HasCapability("dynamic_instructions:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
	if rec.Description != "Swarm agent with dynamic instructions" {
		t.Errorf("Description = %q", rec.Description)
	}
}

func TestNormalizeMultiAgentSwarm(t *testing.T) {
	rec := Normalize(map[string]any{
		"agents":   []any{"triage", "sales", "support"},
		"routines": []any{map[string]any{}, map[string]any{}},
	})

	if rec.MetaInt("agentCount") != 3 {
		t.Errorf("agentCount = %d", rec.MetaInt("agentCount"))
	}
	if !rec.HasCapability("agents:3") || !rec.HasCapability("routines:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
	if rec.MetaInt("routineCount") != 2 {
		t.Errorf("routineCount = %d", rec.MetaInt("routineCount"))
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed Swarm Agent" || rec.Description == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
