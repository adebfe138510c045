// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package googleadk normalizes Google Agent Development Kit agents.
// Its structured-output, orchestration, and session-service signals
// feed the base trust scorer directly via metadata.
package googleadk

import (
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "google-adk"

// Fingerprint reports whether m carries Google ADK-distinctive keys.
func Fingerprint(m map[string]any) bool {
	for _, key := range []string{"session_service", "output_schema", "sub_agents", "runner"} {
		if _, ok := m[key]; ok {
			return true
		}
	}
	if record.String(m["framework"]) == AgentType {
		return true
	}
	return false
}

// Normalize maps a Google ADK description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed Google ADK Agent", "Google Agent Development Kit agent")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + trust.CapabilityBonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	rec.SetMeta("framework", AgentType)

	if instruction := record.String(m["instruction"]); instruction != "" {
		rec.SetMeta("instruction", instruction)
		rec.SetDescription(record.Summary(instruction, 200))
	}

	if model := record.String(m["model"]); model != "" {
		rec.SetMeta("model", model)
		rec.AddCapabilityf("model:%s", model)
	}

	for _, t := range record.Strings(m["tools"]) {
		rec.AddCapabilityf("tool:%s", t)
	}

	if schema, ok := m["output_schema"]; ok && schema != nil {
		rec.SetMeta("structuredOutput", true)
		rec.AddCapability("structured_output:enabled")
	}

	if subs := record.List(m["sub_agents"]); len(subs) > 0 {
		rec.SetMeta("orchestrationCapable", true)
		rec.SetMeta("subAgentCount", len(subs))
		rec.AddCapabilityf("sub_agents:%d", len(subs))
	}

	if svc, ok := m["session_service"]; ok && svc != nil {
		rec.SetMeta("sessionService", record.String(svc))
		rec.AddCapability("sessions:enabled")
	}

	rec.CopyIdentity(m)
}
