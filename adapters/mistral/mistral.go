// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package mistral normalizes Mistral AI agent descriptions: function
// calling, JSON mode, safety filtering, and Le Chat features.
package mistral

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "mistral_agents"

// Fingerprint reports whether m carries Mistral-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{"json_mode", "safe_mode", "safety_mode", "lechat_config", "le_chat", "response_format"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Normalize maps a Mistral description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Mistral Agent", "Mistral AI agent with advanced capabilities")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if prompt := record.String(m["system_prompt"]); prompt != "" {
		rec.SetMeta("systemPrompt", prompt)
		rec.SetDescription(record.Summary(prompt, 200))
	}

	if model := record.String(m["model"]); model != "" {
		rec.SetMeta("model", model)
		rec.AddCapabilityf("model:%s", model)
	}

	names := collectFunctions(m["functions"], rec)
	names = append(names, collectFunctions(m["tools"], rec)...)
	if len(names) > 0 {
		rec.SetMeta("functions", names)
		rec.SetMeta("functionCount", len(names))
		rec.AddCapabilityf("functions:%d", len(names))
		rec.AddCapability("function_calling:enabled")
	}

	if record.Bool(m["json_mode"]) {
		rec.AddCapability("json_mode:enabled")
	}

	if format := record.Map(m["response_format"]); format != nil {
		if record.String(format["type"]) == "json_object" {
			rec.AddCapability("json_mode:enabled")
		}
		rec.SetMeta("responseFormat", format)
	}

	if record.Bool(m["safe_mode"]) || record.Bool(m["safety_mode"]) {
		rec.AddCapability("safe_mode:enabled")
	}
	if safety := record.Map(m["safety_settings"]); safety != nil {
		rec.SetMeta("safetySettings", safety)
		if enabled, ok := safety["enabled"]; !ok || record.Bool(enabled) {
			rec.AddCapability("safe_mode:enabled")
		}
	}

	if _, ok := m["temperature"]; ok {
		rec.SetMeta("temperature", m["temperature"])
	}
	if _, ok := m["max_tokens"]; ok {
		rec.SetMeta("maxTokens", m["max_tokens"])
	}

	if record.Bool(m["stream"]) {
		rec.AddCapability("streaming:enabled")
	}

	lechat := record.Map(m["lechat_config"])
	if lechat == nil {
		lechat = record.Map(m["le_chat"])
	}
	if lechat != nil {
		if record.Bool(lechat["web_search"]) {
			rec.AddCapability("web_search:enabled")
		}
		if record.Bool(lechat["code_interpreter"]) {
			rec.AddCapability("code_interpreter:enabled")
		}
	}

	rec.CopyIdentity(m)
}

// collectFunctions reads one function or tool list, tagging each entry,
// and returns the names so the caller can aggregate across lists.
func collectFunctions(v any, rec *record.Agent) []string {
	functions := record.List(v)
	if functions == nil {
		return nil
	}
	names := make([]string, 0, len(functions))
	for _, f := range functions {
		switch fn := f.(type) {
		case string:
			names = append(names, fn)
			rec.AddCapabilityf("function:%s", fn)
		case map[string]any:
			name := record.String(fn["name"])
			if name == "" {
				name = record.String(fn["function"])
			}
			if name == "" {
				name = "unknown"
			}
			names = append(names, name)
			rec.AddCapabilityf("function:%s", name)
			switch record.String(fn["type"]) {
			case "code_interpreter":
				rec.AddCapability("code_interpreter:enabled")
			case "web_search":
				rec.AddCapability("web_search:enabled")
			}
		}
	}
	return names
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("function_calling:enabled") {
		score += 5
	}
	if rec.HasCapability("json_mode:enabled") {
		score += 5
	}
	if rec.HasCapability("safe_mode:enabled") {
		score += 5
	}
	if rec.MetaInt("functionCount") > 3 {
		score += 3
	}
	if rec.HasCapability("streaming:enabled") {
		score += 2
	}
	return score
}
