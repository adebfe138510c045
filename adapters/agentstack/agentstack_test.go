// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package agentstack

import "testing"

func TestNormalizeSingleAgent(t *testing.T) {
	rec := Normalize(map[string]any{
		"agent_name":                  "Financial-Analyst",
		"system_prompt":               "Analyze quarterly filings and flag anomalies for review.",
		"model":                       "gpt-4o",
		"max_loops":                   3,
		"autosave":                    true,
		"dynamic_temperature_enabled": true,
		"context_length":              200000,
	})

	if rec.Name != "Financial-Analyst" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{"model:gpt-4o", "memory:enabled", "dynamic_temperature:enabled"} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaInt("maxLoops") != 3 || rec.MetaInt("contextLength") != 200000 {
		t.Errorf("metadata = %v", rec.Metadata)
	}
}

func TestNormalizeSwarm(t *testing.T) {
	rec := Normalize(map[string]any{
		"swarm_name": "Research Swarm",
		"agents": []any{
			map[string]any{"agent_name": "Collector", "system_prompt": "gather"},
			map[string]any{"agent_name": "Synthesizer", "system_prompt": "combine"},
		},
	})

	if rec.Name != "Research Swarm" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.MetaInt("agentCount") != 2 || !rec.HasCapability("agents:2") {
		t.Errorf("swarm extraction failed: %v / %v", rec.Metadata, rec.Capabilities)
	}
	if !rec.HasCapability("agent:Collector") || !rec.HasCapability("agent:Synthesizer") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
}

func TestNormalizeArchitecture(t *testing.T) {
	rec := Normalize(map[string]any{
		"swarm_architecture": map[string]any{
			"name":       "Pipeline",
			"swarm_type": "SequentialWorkflow",
			"task":       "process documents",
		},
	})

	if rec.Name != "Pipeline" {
		t.Errorf("Name = %q", rec.Name)
	}
	if rec.MetaString("swarmType") != "SequentialWorkflow" || !rec.HasCapability("swarm_type:SequentialWorkflow") {
		t.Errorf("architecture extraction failed: %v / %v", rec.Metadata, rec.Capabilities)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed AgentStack Agent" || rec.Owner == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
