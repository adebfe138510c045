// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

// Package trust computes the heuristic completeness score for a canonical
// agent record. The base score is framework-independent; adapters stack
// their own bonuses on top and clamp the total.
package trust

import (
	"github.com/astrasync/astrasync-go/pkg/record"
)

// BaseScore is the floor every record starts from. All bonuses are
// positive, so scores never fall below it.
const BaseScore = 70

// MaxScore caps the final trust score.
const MaxScore = 100

// GenericPlaceholder is the name that earns no naming bonus.
const GenericPlaceholder = "Unnamed Agent"

// Score computes the framework-independent base score for a record.
// It is deterministic and depends only on the record's pre-score state;
// capability ordering does not affect the result.
func Score(a *record.Agent) int {
	score := BaseScore

	if a.Name != "" && a.Name != GenericPlaceholder {
		score += 5
	}

	if len(a.Description) > 50 {
		score += 5
	}
	if len(a.Description) > 100 {
		score += 5
	}

	if len(a.Capabilities) > 0 {
		score += 5
	}
	if len(a.Capabilities) > 3 {
		score += 5
	}

	if a.Version != "" {
		score += 5
	}

	// google-adk descriptions carry sophistication signals the base layer
	// recognizes directly; there is no separate bonus pass for them.
	if a.AgentType == "google-adk" || a.MetaString("framework") == "google-adk" {
		if record.Bool(a.Metadata["structuredOutput"]) {
			score += 5
		}
		if record.Bool(a.Metadata["orchestrationCapable"]) {
			score += 3
		}
		if _, ok := a.Metadata["sessionService"]; ok {
			score += 2
		}
	}

	return Clamp(score)
}

// CapabilityBonus is the shared adapter bonus: one point per capability
// tag, at most five. Every adapter applies it before its own bonuses.
func CapabilityBonus(a *record.Agent) int {
	if n := len(a.Capabilities); n < 5 {
		return n
	}
	return 5
}

// Clamp bounds a score to [0, MaxScore].
func Clamp(score int) int {
	if score > MaxScore {
		return MaxScore
	}
	if score < 0 {
		return 0
	}
	return score
}
