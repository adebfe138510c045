// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"reflect"
	"testing"
)

func TestIdentityFieldsFirstWriteWins(t *testing.T) {
	a := New("crewai")

	a.SetName("Researcher Agent")
	a.SetName("Other Name")
	if a.Name != "Researcher Agent" {
		t.Errorf("Name = %q, want first write kept", a.Name)
	}

	a.SetDescription("first")
	a.SetDescription("second")
	if a.Description != "first" {
		t.Errorf("Description = %q, want %q", a.Description, "first")
	}

	a.SetOwner("alice")
	a.SetOwner("bob")
	if a.Owner != "alice" {
		t.Errorf("Owner = %q, want %q", a.Owner, "alice")
	}
}

func TestSetVersionOnlyReplacesDefault(t *testing.T) {
	a := New("langchain")
	if a.Version != DefaultVersion {
		t.Fatalf("seed version = %q, want %q", a.Version, DefaultVersion)
	}

	a.SetVersion("2.1")
	if a.Version != "2.1" {
		t.Errorf("Version = %q, want %q", a.Version, "2.1")
	}

	a.SetVersion("3.0")
	if a.Version != "2.1" {
		t.Errorf("Version = %q, explicit version must not be overwritten", a.Version)
	}
}

func TestSetMetaOverwrites(t *testing.T) {
	a := New("swarm")
	a.SetMeta("model", "gpt-4o")
	a.SetMeta("model", "gpt-4o-mini")
	if got := a.MetaString("model"); got != "gpt-4o-mini" {
		t.Errorf("MetaString(model) = %q, want last write", got)
	}
}

func TestDedupeSortsAndRemovesDuplicates(t *testing.T) {
	a := New("crewai")
	a.AddCapability("tool:search")
	a.AddCapability("memory:enabled")
	a.AddCapability("tool:search")
	a.AddCapability("role:Researcher")
	a.Dedupe()

	want := []string{"memory:enabled", "role:Researcher", "tool:search"}
	if !reflect.DeepEqual(a.Capabilities, want) {
		t.Errorf("Capabilities = %v, want %v", a.Capabilities, want)
	}
}

func TestFillDefaults(t *testing.T) {
	a := New("autogen")
	a.FillDefaults("Unnamed AutoGen Agent", "default description")

	if a.Name != "Unnamed AutoGen Agent" {
		t.Errorf("Name = %q", a.Name)
	}
	if a.Description != "default description" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Owner != DefaultOwner {
		t.Errorf("Owner = %q, want %q", a.Owner, DefaultOwner)
	}
	if a.Version != DefaultVersion {
		t.Errorf("Version = %q, want %q", a.Version, DefaultVersion)
	}
}

func TestFillDefaultsKeepsExtractedValues(t *testing.T) {
	a := New("autogen")
	a.SetName("Coder")
	a.SetOwner("acme")
	a.FillDefaults("Unnamed AutoGen Agent", "default description")

	if a.Name != "Coder" {
		t.Errorf("Name = %q, extracted name must survive defaults", a.Name)
	}
	if a.Owner != "acme" {
		t.Errorf("Owner = %q, extracted owner must survive defaults", a.Owner)
	}
}

func TestCopyIdentityRunsAfterExtraction(t *testing.T) {
	a := New("crewai")
	a.SetName("CrewAI Researcher Agent")
	a.CopyIdentity(map[string]any{
		"name":        "raw name",
		"description": "raw description",
		"owner":       "carol",
		"version":     "4.2",
	})

	if a.Name != "CrewAI Researcher Agent" {
		t.Errorf("Name = %q, derived name must win over pass-through", a.Name)
	}
	if a.Description != "raw description" {
		t.Errorf("Description = %q", a.Description)
	}
	if a.Owner != "carol" {
		t.Errorf("Owner = %q", a.Owner)
	}
	if a.Version != "4.2" {
		t.Errorf("Version = %q", a.Version)
	}
}

func TestHasCapabilityFacet(t *testing.T) {
	a := New("semantic_kernel")
	a.AddCapability("planner:sequential")

	if !a.HasCapabilityFacet("planner") {
		t.Error("HasCapabilityFacet(planner) = false")
	}
	if a.HasCapabilityFacet("plan") {
		t.Error("HasCapabilityFacet(plan) = true, facet match must be exact")
	}
}

func TestSummary(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 7, "this is..."},
	}
	for _, tt := range tests {
		if got := Summary(tt.in, tt.max); got != tt.want {
			t.Errorf("Summary(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want bool
	}{
		{"true", true, true},
		{"false", false, false},
		{"nil", nil, false},
		{"empty map", map[string]any{}, false},
		{"populated map", map[string]any{"use_docker": true}, true},
		{"empty list", []any{}, false},
		{"populated list", []any{"x"}, true},
		{"zero", 0, false},
		{"nonzero", 3, true},
		{"string false", "false", false},
		{"string value", "yes", true},
	}
	for _, tt := range tests {
		if got := Bool(tt.in); got != tt.want {
			t.Errorf("Bool(%s) = %t, want %t", tt.name, got, tt.want)
		}
	}
}

func TestCoerceInt(t *testing.T) {
	tests := []struct {
		in   any
		want int
	}{
		{5, 5},
		{int64(7), 7},
		{float64(9), 9},
		{"12", 12},
		{"not a number", 0},
		{nil, 0},
	}
	for _, tt := range tests {
		if got := Int(tt.in); got != tt.want {
			t.Errorf("Int(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestCoerceStrings(t *testing.T) {
	in := []any{
		"search",
		map[string]any{"name": "calculator"},
		map[string]any{"kind": "nameless"},
		42,
	}
	want := []string{"search", "calculator"}
	if got := Strings(in); !reflect.DeepEqual(got, want) {
		t.Errorf("Strings = %v, want %v", got, want)
	}
}
