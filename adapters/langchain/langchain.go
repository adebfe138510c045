// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package langchain normalizes LangChain agent, chain, and tool
// descriptions.
package langchain

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "langchain"

// Fingerprint reports whether m carries LangChain-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["agent_type"]; ok {
		return true
	}
	_, hasLLM := m["llm"]
	_, hasTools := m["tools"]
	_, hasPrompt := m["prompt"]
	return hasLLM && (hasTools || hasPrompt)
}

// Normalize maps a LangChain description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed LangChain Agent", "A LangChain-based AI agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if agentType := record.String(m["agent_type"]); agentType != "" {
		rec.SetMeta("agentType", agentType)
		rec.SetName("LangChain " + agentType + " Agent")
	}

	if llm := record.String(m["llm"]); llm != "" {
		rec.SetMeta("llm", llm)
		rec.AddCapabilityf("llm:%s", llm)
	}

	for _, tool := range record.Strings(m["tools"]) {
		rec.AddCapabilityf("tool:%s", tool)
	}

	if _, ok := m["memory"]; ok {
		rec.AddCapability("memory:enabled")
		rec.SetMeta("memory", m["memory"])
	}

	if prompt := record.String(m["prompt"]); prompt != "" {
		rec.SetMeta("hasPrompt", true)
		if len(prompt) > 50 {
			rec.SetDescription(record.Summary(prompt, 100))
		}
	}

	rec.MergeCapabilities(m["capabilities"])
	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("memory:enabled") {
		score += 5
	}
	if rec.MetaString("agentType") != "" {
		score += 5
	}
	return score
}
