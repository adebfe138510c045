// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package record defines the canonical agent record that every adapter
// converges on, together with the builder rules shared by all adapters:
// identity fields are first-write-wins, metadata keys always overwrite,
// capabilities are deduplicated and sorted before the record is scored.
package record

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultVersion is used when the source material carries no version tag.
const DefaultVersion = "1.0"

// DefaultOwner is used when no owner is supplied or derivable.
const DefaultOwner = "Unknown"

// Agent is the canonical, framework-independent representation of an
// agent's identity and capabilities.
type Agent struct {
	AgentType    string         `json:"agentType"`
	Version      string         `json:"version"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	Owner        string         `json:"owner"`
	Capabilities []string       `json:"capabilities"`
	Metadata     map[string]any `json:"metadata"`
	TrustScore   int            `json:"trustScore"`
}

// New seeds a record for the given framework tag.
func New(agentType string) *Agent {
	return &Agent{
		AgentType:    agentType,
		Version:      DefaultVersion,
		Capabilities: []string{},
		Metadata:     map[string]any{},
	}
}

// SetName sets the name unless one is already present.
func (a *Agent) SetName(name string) {
	if a.Name == "" && name != "" {
		a.Name = name
	}
}

// SetDescription sets the description unless one is already present.
func (a *Agent) SetDescription(desc string) {
	if a.Description == "" && desc != "" {
		a.Description = desc
	}
}

// SetOwner sets the owner unless one is already present.
func (a *Agent) SetOwner(owner string) {
	if a.Owner == "" && owner != "" {
		a.Owner = owner
	}
}

// SetVersion replaces the seeded default version. Like the other identity
// fields it is first-write-wins: only the default can be overwritten.
func (a *Agent) SetVersion(version string) {
	if version != "" && (a.Version == "" || a.Version == DefaultVersion) {
		a.Version = version
	}
}

// SetMeta stores a metadata entry, replacing any previous value.
func (a *Agent) SetMeta(key string, value any) {
	if a.Metadata == nil {
		a.Metadata = map[string]any{}
	}
	a.Metadata[key] = value
}

// MetaInt reads a numeric metadata entry, tolerating the types a YAML or
// JSON decode may have produced.
func (a *Agent) MetaInt(key string) int {
	return Int(a.Metadata[key])
}

// MetaString reads a string metadata entry.
func (a *Agent) MetaString(key string) string {
	return String(a.Metadata[key])
}

// AddCapability appends a raw capability tag.
func (a *Agent) AddCapability(tag string) {
	if tag != "" {
		a.Capabilities = append(a.Capabilities, tag)
	}
}

// AddCapabilityf appends a formatted "facet:value" capability tag.
func (a *Agent) AddCapabilityf(format string, args ...any) {
	a.AddCapability(fmt.Sprintf(format, args...))
}

// HasCapability reports whether the exact tag is present.
func (a *Agent) HasCapability(tag string) bool {
	for _, c := range a.Capabilities {
		if c == tag {
			return true
		}
	}
	return false
}

// HasCapabilityFacet reports whether any tag carries the given facet,
// e.g. HasCapabilityFacet("planner") matches "planner:sequential".
func (a *Agent) HasCapabilityFacet(facet string) bool {
	prefix := facet + ":"
	for _, c := range a.Capabilities {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// CopyIdentity applies the universal pass-through for the four identity
// fields. Framework-specific extraction runs first, so values it already
// set win over the generic copy.
func (a *Agent) CopyIdentity(m map[string]any) {
	a.SetName(String(m["name"]))
	a.SetDescription(String(m["description"]))
	a.SetOwner(String(m["owner"]))
	a.SetVersion(String(m["version"]))
}

// MergeCapabilities folds a caller-provided capability list into the
// record. Non-string entries are ignored.
func (a *Agent) MergeCapabilities(v any) {
	for _, item := range List(v) {
		if s, ok := item.(string); ok {
			a.AddCapability(s)
		}
	}
}

// Dedupe removes duplicate capability tags. The result is sorted so equal
// sets compare equal regardless of insertion order.
func (a *Agent) Dedupe() {
	if len(a.Capabilities) < 2 {
		return
	}
	seen := make(map[string]struct{}, len(a.Capabilities))
	out := a.Capabilities[:0]
	for _, c := range a.Capabilities {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	a.Capabilities = out
}

// FillDefaults backfills any identity field still unset with the
// framework's default strings.
func (a *Agent) FillDefaults(name, description string) {
	a.SetName(name)
	a.SetDescription(description)
	a.SetOwner(DefaultOwner)
	if a.Version == "" {
		a.Version = DefaultVersion
	}
}

// Summary truncates s to max characters, appending an ellipsis when it
// was cut. Used to derive descriptions from prompts and instructions.
func Summary(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
