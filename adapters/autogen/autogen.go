// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package autogen normalizes Microsoft AutoGen agent descriptions:
// assistants, user proxies, group chats, and function calling.
package autogen

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "autogen"

// Fingerprint reports whether m carries AutoGen-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{
		"llm_config",
		"system_message",
		"human_input_mode",
		"code_execution_config",
		"group_chat_config",
		"max_consecutive_auto_reply",
		"function_map",
	} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Normalize maps an AutoGen description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed AutoGen Agent", "Microsoft AutoGen agent for autonomous task completion")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	if msg := record.String(m["system_message"]); msg != "" {
		rec.SetDescription(record.Summary(msg, 200))
		rec.SetMeta("systemMessage", msg)
	}

	if llmConfig := record.Map(m["llm_config"]); llmConfig != nil {
		if model := record.String(llmConfig["model"]); model != "" {
			rec.SetMeta("model", model)
			rec.AddCapabilityf("model:%s", model)
		}
		if _, ok := llmConfig["temperature"]; ok {
			rec.SetMeta("temperature", llmConfig["temperature"])
		}
		if functions := record.List(llmConfig["functions"]); functions != nil {
			rec.AddCapability("function_calling:enabled")
			rec.SetMeta("functionCount", len(functions))
			rec.AddCapabilityf("functions:%d", len(functions))
		}
	}

	if record.Bool(m["code_execution_config"]) || record.Bool(m["code_execution"]) {
		rec.AddCapability("code_execution:enabled")
		rec.SetMeta("codeExecution", true)
	}

	if mode := record.String(m["human_input_mode"]); mode != "" {
		rec.SetMeta("humanInputMode", mode)
		if mode != "NEVER" {
			rec.AddCapability("human_input:enabled")
		}
	}

	if _, ok := m["max_consecutive_auto_reply"]; ok {
		rec.SetMeta("maxConsecutiveAutoReply", m["max_consecutive_auto_reply"])
	}

	switch {
	case record.String(m["agent_type"]) != "":
		rec.SetMeta("autogenAgentType", m["agent_type"])
	case record.Bool(m["is_assistant"]):
		rec.SetMeta("autogenAgentType", "AssistantAgent")
	case record.Bool(m["is_user_proxy"]):
		rec.SetMeta("autogenAgentType", "UserProxyAgent")
	}

	if groupConfig := record.Map(m["group_chat_config"]); groupConfig != nil {
		rec.AddCapability("group_chat:enabled")
		if agents := record.List(groupConfig["agents"]); agents != nil {
			rec.SetMeta("groupAgentCount", len(agents))
			rec.AddCapabilityf("agents:%d", len(agents))
		}
	}

	if agents := record.List(m["agents"]); agents != nil {
		rec.SetMeta("agentCount", len(agents))
		rec.AddCapabilityf("agents:%d", len(agents))
		rec.AddCapability("groupchat:enabled")
	}

	if _, ok := m["max_round"]; ok {
		rec.SetMeta("maxRounds", m["max_round"])
	}
	if method := record.String(m["speaker_selection_method"]); method != "" {
		rec.SetMeta("speakerSelectionMethod", method)
	}

	if record.Bool(m["conversable"]) {
		rec.AddCapability("conversable:enabled")
	}
	if functionMap := record.Map(m["function_map"]); functionMap != nil {
		rec.SetMeta("functionCount", len(functionMap))
		rec.AddCapabilityf("functions:%d", len(functionMap))
	}

	rec.CopyIdentity(m)
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("function_calling:enabled") {
		score += 5
	}
	if rec.HasCapability("code_execution:enabled") {
		score += 5
	}
	if rec.HasCapability("group_chat:enabled") {
		score += 5
	}
	if rec.MetaInt("groupAgentCount") > 2 {
		score += 3
	}
	return score
}
