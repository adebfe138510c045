// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package record

import (
	"fmt"
	"strings"
)

// Describer is implemented by in-process agent values that can describe
// themselves. It replaces the attribute probing the original SDK did with
// runtime reflection: a value exposes exactly the fields it wants read,
// and adapters extract from that map like any other structured input.
type Describer interface {
	AgentFields() map[string]any
}

// Fields extracts a structured description from an arbitrary value.
// Maps pass through, Describers are asked, everything else yields nil.
// A nil map is still structured input (an empty YAML or JSON document
// decodes to one), so it comes back as an empty map rather than nil.
func Fields(v any) map[string]any {
	switch d := v.(type) {
	case map[string]any:
		if d == nil {
			return map[string]any{}
		}
		return d
	case Describer:
		return d.AgentFields()
	default:
		return nil
	}
}

// TypeName returns the bare type name of v, without package path or
// pointer markers. Used to derive default names for opaque values.
func TypeName(v any) string {
	name := strings.TrimLeft(fmt.Sprintf("%T", v), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
