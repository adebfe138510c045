// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package normalize detects which agent framework an input description
// belongs to and dispatches it to the matching adapter, producing the
// canonical agent record used for registration and scoring.
package normalize

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/astrasync/astrasync-go/adapters/agentforce"
	"github.com/astrasync/astrasync-go/adapters/agentstack"
	"github.com/astrasync/astrasync-go/adapters/autogen"
	"github.com/astrasync/astrasync-go/adapters/babyagi"
	"github.com/astrasync/astrasync-go/adapters/bedrock"
	"github.com/astrasync/astrasync-go/adapters/crewai"
	"github.com/astrasync/astrasync-go/adapters/googleadk"
	"github.com/astrasync/astrasync-go/adapters/langchain"
	"github.com/astrasync/astrasync-go/adapters/llamaindex"
	"github.com/astrasync/astrasync-go/adapters/llamastack"
	"github.com/astrasync/astrasync-go/adapters/mistral"
	"github.com/astrasync/astrasync-go/adapters/n8n"
	"github.com/astrasync/astrasync-go/adapters/semantickernel"
	"github.com/astrasync/astrasync-go/adapters/swarm"
	"github.com/astrasync/astrasync-go/pkg/record"
	"github.com/astrasync/astrasync-go/pkg/trust"
)

// FrameworkTag identifies a supported agent framework.
type FrameworkTag = string

// Supported framework tags, as they appear in the agentType field of
// the canonical record.
const (
	TagAgentforce     FrameworkTag = agentforce.AgentType
	TagAgentStack     FrameworkTag = agentstack.AgentType
	TagAutoGen        FrameworkTag = autogen.AgentType
	TagBabyAGI        FrameworkTag = babyagi.AgentType
	TagBedrock        FrameworkTag = bedrock.AgentType
	TagCrewAI         FrameworkTag = crewai.AgentType
	TagGoogleADK      FrameworkTag = googleadk.AgentType
	TagLangChain      FrameworkTag = langchain.AgentType
	TagLlamaIndex     FrameworkTag = llamaindex.AgentType
	TagLlamaStack     FrameworkTag = llamastack.AgentType
	TagMistral        FrameworkTag = mistral.AgentType
	TagN8N            FrameworkTag = n8n.AgentType
	TagSemanticKernel FrameworkTag = semantickernel.AgentType
	TagSwarm          FrameworkTag = swarm.AgentType
	TagUnknown        FrameworkTag = "unknown"
)

// adapter couples a structural fingerprint with its normalizer.
type adapter struct {
	tag         FrameworkTag
	fingerprint func(map[string]any) bool
	normalize   func(any) *record.Agent
}

// adapters is probed in order. Frameworks with the most distinctive
// key sets come first so that overlapping shapes (for example
// LangChain's llm+tools, which several frameworks also carry) do not
// shadow more specific matches.
var adapters = []adapter{
	{TagAgentforce, agentforce.Fingerprint, agentforce.Normalize},
	{TagBedrock, bedrock.Fingerprint, bedrock.Normalize},
	{TagGoogleADK, googleadk.Fingerprint, googleadk.Normalize},
	{TagSemanticKernel, semantickernel.Fingerprint, semantickernel.Normalize},
	{TagN8N, n8n.Fingerprint, n8n.Normalize},
	{TagLlamaStack, llamastack.Fingerprint, llamastack.Normalize},
	{TagLlamaIndex, llamaindex.Fingerprint, llamaindex.Normalize},
	{TagBabyAGI, babyagi.Fingerprint, babyagi.Normalize},
	{TagCrewAI, crewai.Fingerprint, crewai.Normalize},
	{TagAutoGen, autogen.Fingerprint, autogen.Normalize},
	{TagSwarm, swarm.Fingerprint, swarm.Normalize},
	{TagMistral, mistral.Fingerprint, mistral.Normalize},
	{TagAgentStack, agentstack.Fingerprint, agentstack.Normalize},
	{TagLangChain, langchain.Fingerprint, langchain.Normalize},
}

// byTag routes explicit framework declarations straight to an adapter
// without structural probing. All tags an input may carry, including
// historic aliases, map here.
var byTag = map[string]func(any) *record.Agent{
	TagAgentforce:     agentforce.Normalize,
	TagAgentStack:     agentstack.Normalize,
	"swarms":          agentstack.Normalize,
	TagAutoGen:        autogen.Normalize,
	TagBabyAGI:        babyagi.Normalize,
	TagBedrock:        bedrock.Normalize,
	"bedrock":         bedrock.Normalize,
	TagCrewAI:         crewai.Normalize,
	TagGoogleADK:      googleadk.Normalize,
	"google_adk":      googleadk.Normalize,
	TagLangChain:      langchain.Normalize,
	TagLlamaIndex:     llamaindex.Normalize,
	"llamaindex":      llamaindex.Normalize,
	TagLlamaStack:     llamastack.Normalize,
	"llama_stack":     llamastack.Normalize,
	TagMistral:        mistral.Normalize,
	"mistral":         mistral.Normalize,
	TagN8N:            n8n.Normalize,
	TagSemanticKernel: semantickernel.Normalize,
	"semantic-kernel": semantickernel.Normalize,
	TagSwarm:          swarm.Normalize,
	"openai_swarm":    swarm.Normalize,
}

// Detect returns the framework tag an input would be normalized as,
// without building the record. Unknown shapes return TagUnknown, which
// Normalize handles via the generic fallback.
func Detect(input any) FrameworkTag {
	switch v := input.(type) {
	case string:
		m, err := parseText(v)
		if err != nil {
			return TagUnknown
		}
		return detectMap(m)
	case nil:
		return TagUnknown
	}

	m := record.Fields(input)
	if m == nil {
		return TagUnknown
	}
	return detectMap(m)
}

func detectMap(m map[string]any) FrameworkTag {
	if tag := declaredTag(m); tag != "" {
		if _, ok := byTag[tag]; ok {
			return canonicalTag(tag)
		}
	}
	for _, a := range adapters {
		if a.fingerprint(m) {
			return a.tag
		}
	}
	return TagUnknown
}

// Normalize turns any supported input into a canonical agent record.
// Inputs are never rejected for shape: unsupported structures fall
// through to a generic normalizer, and unparseable strings become a
// minimal record carrying the text as description.
func Normalize(input any) *record.Agent {
	if s, ok := input.(string); ok {
		m, err := parseText(s)
		if err != nil {
			return textRecord(s)
		}
		return normalizeMap(m)
	}

	m := record.Fields(input)
	if m == nil {
		return generic(input)
	}
	return normalizeMap(m)
}

func normalizeMap(m map[string]any) *record.Agent {
	if tag := declaredTag(m); tag != "" {
		if fn, ok := byTag[tag]; ok {
			return fn(m)
		}
	}
	for _, a := range adapters {
		if a.fingerprint(m) {
			return a.normalize(m)
		}
	}
	return generic(m)
}

// declaredTag reads an explicit framework declaration from the input.
func declaredTag(m map[string]any) string {
	for _, key := range []string{"agentType", "agent_type", "framework"} {
		if tag := strings.ToLower(record.String(m[key])); tag != "" {
			if _, ok := byTag[tag]; ok {
				return tag
			}
		}
	}
	return ""
}

func canonicalTag(tag string) FrameworkTag {
	switch tag {
	case "swarms":
		return TagAgentStack
	case "bedrock":
		return TagBedrock
	case "google_adk":
		return TagGoogleADK
	case "llamaindex":
		return TagLlamaIndex
	case "llama_stack":
		return TagLlamaStack
	case "mistral":
		return TagMistral
	case "semantic-kernel":
		return TagSemanticKernel
	case "openai_swarm":
		return TagSwarm
	}
	return tag
}

// parseText decodes a JSON or YAML document into a generic map. YAML
// is a superset of JSON, so one decoder covers both.
func parseText(s string) (map[string]any, error) {
	var m map[string]any
	if err := yaml.Unmarshal([]byte(s), &m); err != nil {
		return nil, err
	}
	return m, nil
}

// Fallback defaults. Records always leave normalization with a
// non-empty name and description, whatever the input looked like.
const (
	fallbackName        = "Unnamed Agent"
	fallbackDescription = "Unrecognized agent configuration"
)

// textRecord produces the minimal record for free-form text that did
// not parse as a structured document. The text is kept verbatim as the
// description.
func textRecord(s string) *record.Agent {
	rec := record.New(TagUnknown)
	rec.SetDescription(s)
	rec.Dedupe()
	rec.FillDefaults(fallbackName, fallbackDescription)
	rec.TrustScore = trust.Clamp(trust.Score(rec))
	return rec
}

// generic normalizes inputs no fingerprint claimed: universal identity
// fields and capabilities only, no framework bonuses.
func generic(input any) *record.Agent {
	rec := record.New(TagUnknown)

	if m := record.Fields(input); m != nil {
		rec.MergeCapabilities(m["capabilities"])
		rec.CopyIdentity(m)
	} else if input != nil {
		rec.SetName(record.TypeName(input) + " Instance")
	}

	rec.Dedupe()
	rec.FillDefaults(fallbackName, fallbackDescription)
	rec.TrustScore = trust.Clamp(trust.Score(rec) + trust.CapabilityBonus(rec))
	return rec
}
