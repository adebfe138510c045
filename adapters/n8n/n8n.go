// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package n8n normalizes n8n AI workflow and agent-node descriptions.
package n8n

import (
	"strings"

	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// AgentType is the canonical framework tag.
const AgentType = "n8n"

// Fingerprint reports whether m looks like an n8n workflow or agent node.
func Fingerprint(m map[string]any) bool {
	if _, ok := m["nodes"]; ok {
		return true
	}
	if _, ok := m["workflow"]; ok {
		return true
	}
	if _, ok := m["connections"]; ok {
		return true
	}
	kind := strings.ToLower(record.String(m["type"]))
	return strings.Contains(kind, "n8n") || strings.Contains(kind, "langchain.agent")
}

// Normalize maps an n8n description onto the canonical record.
func Normalize(input any) *record.Agent {
	rec := record.New(AgentType)

	if m := record.Fields(input); m != nil {
		extract(m, rec)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults("Unnamed n8n Agent", "n8n workflow automation with AI agents")
	rec.TrustScore = trust.Clamp(trust.Score(rec) + bonus(rec))
	return rec
}

func extract(m map[string]any, rec *record.Agent) {
	workflow := record.Map(m["workflow"])
	if workflow == nil {
		if _, ok := m["nodes"]; ok {
			workflow = m
		}
	}

	switch {
	case workflow != nil:
		extractWorkflow(workflow, rec)
	case isAgentNode(m):
		extractAgentNode(m, rec)
	}

	if settings := record.Map(m["settings"]); settings != nil {
		rec.SetMeta("settings", settings)
	}
	if _, ok := m["staticData"]; ok {
		rec.SetMeta("hasStaticData", true)
	}
	if connections := record.Map(m["connections"]); connections != nil {
		rec.SetMeta("connectionCount", len(connections))
	}

	rec.CopyIdentity(m)
}

func isAgentNode(m map[string]any) bool {
	kind := strings.ToLower(record.String(m["type"]))
	return strings.Contains(kind, "agent") || strings.Contains(kind, "langchain")
}

func extractWorkflow(workflow map[string]any, rec *record.Agent) {
	rec.SetName(record.String(workflow["name"]))
	rec.SetDescription(record.String(workflow["description"]))

	nodes := record.List(workflow["nodes"])
	agentNodes := 0
	toolNodes := 0
	for _, n := range nodes {
		node := record.Map(n)
		if node == nil {
			continue
		}
		kind := strings.ToLower(record.String(node["type"]))
		name := record.String(node["name"])

		switch {
		case strings.Contains(kind, "agent") || strings.Contains(kind, "langchain"):
			agentNodes++
			rec.AddCapabilityf("agent:%s", name)
			params := record.Map(node["parameters"])
			if prompt := record.String(params["systemPrompt"]); prompt != "" {
				rec.SetMeta("systemPrompt", prompt)
			}
			if model := record.String(params["model"]); model != "" {
				rec.SetMeta("model", model)
				rec.AddCapabilityf("model:%s", model)
			}
			if memory := record.Map(params["memory"]); memory != nil {
				rec.AddCapability("memory:enabled")
				kind := record.String(memory["type"])
				if kind == "" {
					kind = "unknown"
				}
				rec.SetMeta("memoryType", kind)
			}
		case containsAny(kind, "tool", "http", "code", "function"):
			toolNodes++
			rec.AddCapabilityf("tool:%s", name)
		}
	}

	rec.SetMeta("agentNodeCount", agentNodes)
	rec.SetMeta("toolNodeCount", toolNodes)
	rec.SetMeta("totalNodeCount", len(nodes))
}

func extractAgentNode(m map[string]any, rec *record.Agent) {
	rec.SetName(record.String(m["name"]))

	params := record.Map(m["parameters"])
	if prompt := record.String(params["systemPrompt"]); prompt != "" {
		rec.SetDescription(record.Summary(prompt, 200))
		rec.SetMeta("systemPrompt", prompt)
	}
	if model := record.String(params["model"]); model != "" {
		rec.SetMeta("model", model)
		rec.AddCapabilityf("model:%s", model)
	}
	for _, tool := range record.Strings(params["tools"]) {
		rec.AddCapabilityf("tool:%s", tool)
	}
	if memory, ok := params["memory"]; ok && record.Bool(memory) {
		rec.AddCapability("memory:enabled")
		if cfg := record.Map(memory); cfg != nil {
			kind := record.String(cfg["type"])
			if kind == "" {
				kind = "buffer"
			}
			rec.SetMeta("memoryType", kind)
		}
	}
	if kind := record.String(params["agentType"]); kind != "" {
		rec.SetMeta("n8nAgentType", kind)
	}
	if _, ok := params["outputParsing"]; ok {
		rec.AddCapability("output_parsing:enabled")
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func bonus(rec *record.Agent) int {
	score := trust.CapabilityBonus(rec)
	if rec.HasCapability("memory:enabled") {
		score += 5
	}
	if rec.MetaInt("agentNodeCount") > 1 {
		score += 5
	}
	if rec.HasCapability("output_parsing:enabled") {
		score += 3
	}
	return score
}
