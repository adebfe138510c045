// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package babyagi

import (
	"strings"
	"testing"
)

func TestNormalizeObjective(t *testing.T) {
	rec := Normalize(map[string]any{
		"objective":    "organize the research backlog",
		"initial_task": "collect open questions",
		"task_list": []any{
			map[string]any{"task_name": "a", "priority": 1},
			map[string]any{"task_name": "b", "priority": 2},
		},
		"vectorstore":    map[string]any{"type": "faiss"},
		"llm":            map[string]any{"model_name": "gpt-3.5-turbo"},
		"max_iterations": 25,
	})

	if !strings.Contains(rec.Description, "organize the research backlog") {
		t.Errorf("Description = %q", rec.Description)
	}
	for _, tag := range []string{
		"autonomous:enabled",
		"tasks:2",
		"task_prioritization:enabled",
		"memory:enabled",
		"vectorstore:enabled",
		"model:gpt-3.5-turbo",
	} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaString("vectorstoreType") != "faiss" {
		t.Errorf("vectorstoreType = %q", rec.MetaString("vectorstoreType"))
	}
}

func TestNormalizeChains(t *testing.T) {
	rec := Normalize(map[string]any{
		"task_creation_chain":       map[string]any{},
		"task_prioritization_chain": map[string]any{},
		"execution_chain":           map[string]any{"type": "llm_chain"},
	})

	for _, tag := range []string{"task_creation:enabled", "task_prioritization:enabled", "execution_chain:enabled"} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaString("executionChainType") != "llm_chain" {
		t.Errorf("executionChainType = %q", rec.MetaString("executionChainType"))
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed BabyAGI Agent" || rec.Description == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
