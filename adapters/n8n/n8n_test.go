// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package n8n

import "testing"

func TestNormalizeWorkflow(t *testing.T) {
	rec := Normalize(map[string]any{
		"name": "Support Automation",
		"nodes": []any{
			map[string]any{
				"name": "AI Agent",
				"type": "@n8n/n8n-nodes-langchain.agent",
				"parameters": map[string]any{
					"systemPrompt": "Answer support tickets politely.",
					"model":        "gpt-4",
					"memory":       map[string]any{"type": "buffer"},
				},
			},
			map[string]any{"name": "HTTP Request", "type": "n8n-nodes-base.httpRequest"},
			map[string]any{"name": "Code", "type": "n8n-nodes-base.code"},
		},
		"connections": map[string]any{"AI Agent": map[string]any{}},
	})

	if rec.Name != "Support Automation" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{"agent:AI Agent", "tool:HTTP Request", "tool:Code", "model:gpt-4", "memory:enabled"} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaInt("agentNodeCount") != 1 || rec.MetaInt("toolNodeCount") != 2 || rec.MetaInt("totalNodeCount") != 3 {
		t.Errorf("node counts = %v", rec.Metadata)
	}
}

func TestNormalizeAgentNode(t *testing.T) {
	rec := Normalize(map[string]any{
		"name": "Classifier",
		"type": "@n8n/n8n-nodes-langchain.agent",
		"parameters": map[string]any{
			"systemPrompt":  "Classify incoming emails.",
			"model":         "gpt-4o-mini",
			"tools":         []any{"gmail"},
			"memory":        true,
			"agentType":     "toolsAgent",
			"outputParsing": map[string]any{"schema": "json"},
		},
	})

	if rec.Name != "Classifier" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{"model:gpt-4o-mini", "tool:gmail", "memory:enabled", "output_parsing:enabled"} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaString("n8nAgentType") != "toolsAgent" {
		t.Errorf("n8nAgentType = %q", rec.MetaString("n8nAgentType"))
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed n8n Agent" || rec.Description == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
