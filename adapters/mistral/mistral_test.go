// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package mistral

import "testing"

func TestNormalizeAgent(t *testing.T) {
	rec := Normalize(map[string]any{
		"name":          "Data Extractor",
		"system_prompt": "Extract structured fields from invoices.",
		"model":         "mistral-large-latest",
		"functions": []any{
			map[string]any{"name": "parse_invoice"},
			"validate_vat",
		},
		"json_mode": true,
		"safe_mode": true,
		"stream":    true,
	})

	if rec.Name != "Data Extractor" {
		t.Errorf("Name = %q", rec.Name)
	}
	for _, tag := range []string{
		"model:mistral-large-latest",
		"function:parse_invoice",
		"function:validate_vat",
		"functions:2",
		"function_calling:enabled",
		"json_mode:enabled",
		"safe_mode:enabled",
		"streaming:enabled",
	} {
		if !rec.HasCapability(tag) {
			t.Errorf("missing %q in %v", tag, rec.Capabilities)
		}
	}
	if rec.MetaInt("functionCount") != 2 {
		t.Errorf("functionCount = %d", rec.MetaInt("functionCount"))
	}
}

func TestNormalizeMergesFunctionsAndTools(t *testing.T) {
	rec := Normalize(map[string]any{
		"functions": []any{"parse_invoice", "validate_vat"},
		"tools":     []any{map[string]any{"name": "lookup_rates"}},
	})

	if got := rec.MetaInt("functionCount"); got != 3 {
		t.Errorf("functionCount = %d, want 3", got)
	}
	if !rec.HasCapability("functions:3") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
	for _, tag := range []string{"functions:1", "functions:2"} {
		if rec.HasCapability(tag) {
			t.Errorf("stale count tag %q in %v", tag, rec.Capabilities)
		}
	}
}

func TestNormalizeResponseFormatJSONMode(t *testing.T) {
	rec := Normalize(map[string]any{
		"response_format": map[string]any{"type": "json_object"},
	})
	if !rec.HasCapability("json_mode:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
}

func TestNormalizeLeChatFeatures(t *testing.T) {
	rec := Normalize(map[string]any{
		"lechat_config": map[string]any{
			"web_search":       true,
			"code_interpreter": true,
		},
	})
	if !rec.HasCapability("web_search:enabled") || !rec.HasCapability("code_interpreter:enabled") {
		t.Errorf("capabilities = %v", rec.Capabilities)
	}
}

func TestNormalizeEmptyInput(t *testing.T) {
	rec := Normalize(map[string]any{})
	if rec.Name != "Unnamed Mistral Agent" || rec.Description == "" {
		t.Errorf("defaults not filled: %+v", rec)
	}
	if rec.TrustScore < 0 || rec.TrustScore > 100 {
		t.Errorf("TrustScore = %d", rec.TrustScore)
	}
}
