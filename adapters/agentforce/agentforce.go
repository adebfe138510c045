// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package agentforce normalizes Salesforce Agentforce agent exports:
// template metadata, topics, sample utterances, and system messages.
package agentforce

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "agentforce"

// Fingerprint reports whether m carries Agentforce-distinctive keys.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["agent_template_type"]; ok {
		return true
	}
	if _, ok := m["sample_utterances"]; ok {
		return true
	}
	if _, ok := m["company_name"]; ok {
		if _, ok := m["topics"]; ok {
			return true
		}
	}
	return false
}

// Normalize maps an Agentforce description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Agentforce Agent", "Salesforce Agentforce AI agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if tmpl := record.String(m["agent_template_type"]); tmpl != "" {
		rec.SetMeta("agentTemplateType", tmpl)
		rec.AddCapabilityf("template:%s", tmpl)
	}

	if at := record.String(m["agent_type"]); at != "" {
		rec.SetMeta("agentforceType", at)
	}

	if company := record.String(m["company_name"]); company != "" {
		rec.SetMeta("companyName", company)
		rec.SetOwner(company)
	}

	if domain := record.String(m["domain"]); domain != "" {
		rec.SetMeta("domain", domain)
		rec.AddCapabilityf("domain:%s", domain)
	}

	if utterances := record.List(m["sample_utterances"]); len(utterances) > 0 {
		rec.SetMeta("utteranceCount", len(utterances))
		rec.AddCapabilityf("utterances:%d", len(utterances))
	}

	if variables := record.List(m["variables"]); len(variables) > 0 {
		rec.SetMeta("variableCount", len(variables))
		rec.AddCapability("variables:configured")
	}

	if messages := record.List(m["system_messages"]); len(messages) > 0 {
		rec.SetMeta("systemMessageCount", len(messages))
		if rec.Description == "" {
			rec.SetDescription(record.Summary(record.String(messages[0]), 200))
		}
	}

	if topics := record.List(m["topics"]); len(topics) > 0 {
		rec.SetMeta("topicCount", len(topics))
		for _, t := range topics {
			switch topic := t.(type) {
			case string:
				rec.AddCapabilityf("topic:%s", topic)
			case map[string]any:
				if name := record.String(topic["name"]); name != "" {
					rec.AddCapabilityf("topic:%s", name)
				}
			}
		}
	}

	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.MetaInt("topicCount") > 0 {
		score += 5
	}
	if rec.MetaInt("utteranceCount") > 3 {
		score += 5
	}
	if rec.MetaInt("systemMessageCount") > 0 {
		score += 3
	}
	if rec.HasCapability("variables:configured") {
		score += 3
	}
	if rec.MetaString("agentforceType") == "External" {
		score += 2
	}
	return score
}
