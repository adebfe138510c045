// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package llamastack

import "testing"

func TestNormalizeAgentConfig(t *testing.T) {
	rec := Normalize(map[string]any{
		"agent_config": map[string]any{
			"system_prompt": "You are a careful assistant that cites sources.",
			"model":         "llama-3-70b",
			"temperature":   0.1,
		},
		"tools": []any{
			"web_search",
			map[string]any{"name": "rag", "type": "memory"},
		},
		"safety": map[string]any{
			"shields": []any{"llama_guard", "prompt_guard"},
		},
		"multi_turn": map[string]any{"max_turns": 8},
	})

	for _, tag := range []string{
		"model:llama-3-70b",
		"tool:web_search",
		"web_search:enabled",
		"tool:rag",
		"tools:2",
		"safety:enabled",
		"shields:2",
		"multi_turn:enabled",
	} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaInt("maxTurns") != 8 {
		t.Errorf("maxTurns = %d", rec.MetaInt("maxTurns"))
	}
}

func TestNormalizeCodeInterpreterTool(t *testing.T) {
	rec := Normalize(map[string]any{
		"agent_config": map[string]any{"model": "llama-3-8b"},
		"tools":        []any{"code_interpreter"},
	})
	if !rec.HasCapability("code_execution:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed Llama Stack Agent" || rec.Description == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
