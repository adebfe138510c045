// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package bedrock normalizes Amazon Bedrock managed-agent descriptions:
// action groups, knowledge bases, and guardrails.
package bedrock

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "bedrock_agents"

// Fingerprint reports whether m carries Bedrock-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{
		"action_groups",
		"foundation_model",
		"knowledge_bases",
		"agent_resource_role_arn",
		"prompt_override_configuration",
	} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Normalize maps a Bedrock description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Bedrock Agent", "AWS Bedrock managed AI agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	rec.SetName(record.String(m["agent_name"]))

	if instruction := record.String(m["instruction"]); instruction != "" {
		rec.SetMeta("instruction", instruction)
		rec.SetDescription(record.Summary(instruction, 200))
	}

	if model := record.String(m["foundation_model"]); model != "" {
		rec.SetMeta("foundationModel", model)
		rec.AddCapabilityf("model:%s", model)
	}

	if arn := record.String(m["agent_resource_role_arn"]); arn != "" {
		rec.SetMeta("agentResourceRoleArn", arn)
		rec.AddCapability("iam:configured")
	}

	extractActionGroups(m["action_groups"], rec)
	extractKnowledgeBases(m["knowledge_bases"], rec)

	if guardrails, ok := m["guardrails"]; ok && record.Bool(guardrails) {
		rec.AddCapability("guardrails:enabled")
		if cfg := record.Map(guardrails); cfg != nil {
			if id := record.String(cfg["guardrail_id"]); id != "" {
				rec.SetMeta("guardrailId", id)
			}
			if version := record.String(cfg["version"]); version != "" {
				rec.SetMeta("guardrailVersion", version)
			}
		}
	}

	if _, ok := m["prompt_override_configuration"]; ok {
		rec.AddCapability("prompt_override:enabled")
		rec.SetMeta("promptOverride", true)
	}

	if _, ok := m["idle_session_ttl"]; ok {
		rec.SetMeta("idleSessionTtl", m["idle_session_ttl"])
	}

	if key := record.String(m["customer_encryption_key_arn"]); key != "" {
		rec.SetMeta("customerEncryptionKeyArn", key)
		rec.AddCapability("encryption:custom")
	}

	if tags := record.Map(m["tags"]); tags != nil {
		rec.SetMeta("tags", tags)
	}

	rec.CopyIdentity(m)
}

func extractActionGroups(v any, rec *record.Agent) {
	groups := record.List(v)
	if groups == nil {
		return
	}
	names := make([]string, 0, len(groups))
	for _, g := range groups {
		switch ag := g.(type) {
		case string:
			names = append(names, ag)
			rec.AddCapabilityf("action_group:%s", ag)
		case map[string]any:
			name := record.String(ag["action_group_name"])
			if name == "" {
				name = record.String(ag["name"])
			}
			if name == "" {
				name = "unknown"
			}
			names = append(names, name)
			rec.AddCapabilityf("action_group:%s", name)

			if _, ok := ag["api_schema"]; ok {
				rec.AddCapability("api_schema:defined")
			} else if _, ok := ag["openapi_schema"]; ok {
				rec.AddCapability("api_schema:defined")
			}
			if executor := record.Map(ag["action_group_executor"]); executor != nil {
				if _, ok := executor["lambda"]; ok {
					rec.AddCapability("lambda:enabled")
				}
			}
		}
	}
	if len(names) > 0 {
		rec.SetMeta("actionGroups", names)
		rec.SetMeta("actionGroupCount", len(names))
		rec.AddCapability("action_groups:enabled")
	}
}

func extractKnowledgeBases(v any, rec *record.Agent) {
	bases := record.List(v)
	if bases == nil {
		return
	}
	names := make([]string, 0, len(bases))
	for _, b := range bases {
		switch kb := b.(type) {
		case string:
			names = append(names, kb)
			rec.AddCapabilityf("knowledge_base:%s", kb)
		case map[string]any:
			id := record.String(kb["knowledge_base_id"])
			if id == "" {
				id = record.String(kb["id"])
			}
			if id == "" {
				id = "unknown"
			}
			names = append(names, id)
			rec.AddCapabilityf("knowledge_base:%s", id)
		}
	}
	if len(names) > 0 {
		rec.SetMeta("knowledgeBases", names)
		rec.SetMeta("knowledgeBaseCount", len(names))
		rec.AddCapability("knowledge_bases:enabled")
		rec.AddCapability("rag:enabled")
	}
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("action_groups:enabled") {
		score += 5
	}
	if rec.HasCapability("knowledge_bases:enabled") {
		score += 5
	}
	if rec.HasCapability("guardrails:enabled") {
		score += 5
	}
	if rec.MetaInt("actionGroupCount") > 2 {
		score += 3
	}
	if rec.MetaInt("knowledgeBaseCount") > 0 {
		score += 3
	}
	if rec.HasCapability("iam:configured") {
		score += 2
	}
	return score
}
