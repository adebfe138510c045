// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package semantickernel

import "testing"

func TestNormalizeKernel(t *testing.T) {
	rec := Normalize(map[string]any{
		"kernel_config": map[string]any{
			"ai_service": map[string]any{
				"model":        "gpt-4",
				"service_type": "AzureOpenAI",
			},
		},
		"plugins": []any{"MathPlugin", "TimePlugin"},
		"planner": "Sequential",
		"memory":  map[string]any{"type": "volatile"},
	})

	for _, tag := range []string{
		"model:gpt-4",
		"ai_service:AzureOpenAI",
		"plugins:2",
		"plugin:MathPlugin",
		"planner:sequential",
		"memory:enabled",
	} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaString("memoryType") != "volatile" {
		t.Errorf("memoryType = %q", rec.MetaString("memoryType"))
	}
}

func TestNormalizePluginMap(t *testing.T) {
	rec := Normalize(map[string]any{
		"plugins": map[string]any{"Mail": map[string]any{}, "Web": map[string]any{}},
	})
	if rec.MetaInt("pluginCount") != 2 || !rec.HasCapability("plugins:2") {
		t.Errorf("plugin extraction failed: %v / %v", rec.Metadata, rec.Capabilities)
	}
}

func TestNormalizeAgentInstructions(t *testing.T) {
	rec := Normalize(map[string]any{
		"kernel": map[string]any{},
		"agent": map[string]any{
			"instructions": "Summarize any document the user uploads into three bullet points.",
			"plugins":      []any{"SummarizePlugin"},
		},
		"process": map[string]any{"steps": []any{}},
	})

	if rec.Description == "Microsoft Semantic Kernel AI orchestration" {
		t.Error("instructions should have become the description")
	}
	if !rec.HasCapability("plugin:SummarizePlugin") || !rec.HasCapability("process:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed Semantic Kernel Agent" || rec.Owner == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
