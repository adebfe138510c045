// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package llamaindex normalizes llama-agents multi-agent microservice
// descriptions: agent services, orchestrators, and message queues.
package llamaindex

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "llamaindex_agents"

// Fingerprint reports whether m carries llama-agents-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{"agent_service", "orchestrator", "message_queue", "control_plane"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	return false
}

// Normalize maps a llama-agents description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed LlamaIndex Agent", "LlamaIndex multi-agent microservice")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	service := record.Map(m["agent_service"])
	if service == nil {
		service = record.Map(m["service"])
	}
	if service != nil {
		rec.AddCapability("microservice:enabled")
		if name := record.String(service["service_name"]); name != "" {
			rec.SetMeta("serviceName", name)
		}
		rec.SetDescription(record.String(service["description"]))
		if host := record.String(service["host"]); host != "" {
			rec.SetMeta("host", host)
		}
		if _, ok := service["port"]; ok {
			rec.SetMeta("port", service["port"])
		}
	}

	if agentConfig := record.Map(m["agent"]); agentConfig != nil {
		if prompt := record.String(agentConfig["system_prompt"]); prompt != "" {
			rec.SetMeta("systemPrompt", prompt)
		}
		extractTools(agentConfig["tools"], rec)
	}

	extractTools(m["tools"], rec)

	if _, ok := m["orchestrator"]; ok {
		rec.AddCapability("orchestrator:enabled")
		if orch := record.Map(m["orchestrator"]); orch != nil {
			if agents := record.List(orch["agents"]); agents != nil {
				rec.SetMeta("agentCount", len(agents))
				rec.AddCapabilityf("agents:%d", len(agents))
			}
		}
	}

	if _, ok := m["message_queue"]; ok {
		rec.AddCapability("message_queue:enabled")
		if mq := record.Map(m["message_queue"]); mq != nil {
			if kind := record.String(mq["type"]); kind != "" {
				rec.SetMeta("messageQueueType", kind)
			}
		}
	}

	if _, ok := m["control_plane"]; ok {
		rec.AddCapability("control_plane:enabled")
	}

	if record.Bool(m["human_in_loop"]) || record.Bool(m["human_approval"]) {
		rec.AddCapability("human_in_loop:enabled")
	}

	rec.CopyIdentity(m)
}

func extractTools(v any, rec *record.Agent) {
	tools := record.Strings(v)
	if len(tools) == 0 {
		return
	}
	for _, tool := range tools {
		rec.AddCapabilityf("tool:%s", tool)
	}
	rec.SetMeta("tools", tools)
	rec.SetMeta("toolCount", len(tools))
	rec.AddCapabilityf("tools:%d", len(tools))
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("microservice:enabled") {
		score += 5
	}
	if rec.HasCapability("orchestrator:enabled") {
		score += 5
	}
	if rec.HasCapability("message_queue:enabled") {
		score += 3
	}
	if rec.HasCapability("control_plane:enabled") {
		score += 3
	}
	if rec.MetaInt("agentCount") > 2 {
		score += 5
	}
	return score
}
