// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package langchain

import "testing"

func TestNormalizeAgent(t *testing.T) {
	rec := Normalize(map[string]any{
		"agent_type": "zero-shot-react",
		"llm":        "gpt-4",
		"tools":      []any{"search", map[string]any{"name": "calculator"}},
		"memory":     map[string]any{"type": "buffer"},
	})

	if rec.Name != "LangChain zero-shot-react Agent" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{"llm:gpt-4", "tool:search", "tool:calculator", "memory:enabled"} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaString("agentType") != "zero-shot-react" {
		t.Errorf("agentType = %q", rec.MetaString("agentType"))
	}
}

func TestNormalizeLongPromptBecomesDescription(t *testing.T) {
	prompt := "You are an assistant that answers questions about internal documentation with citations."
	rec := Normalize(map[string]any{
		"llm":    "gpt-4",
		"prompt": prompt,
	})

	if rec.Description == "A LangChain-based AI agent" {
		t.Error("prompt should have become the description")
	}
	if got := rec.Metadata["hasPrompt"]; got != true {
		t.Errorf("hasPrompt = %v", got)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed LangChain Agent" || rec.Owner == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
