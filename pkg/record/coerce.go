// Copyright 2026 © The AstraSync Authors
// SPDX-License-Identifier: Apache-2.0

package record

import "strconv"

// Loose readers over decoded YAML/JSON values. Agent descriptions arrive
// as map[string]any with whatever scalar types the decoder picked, so the
// adapters read through these instead of type-asserting inline.

// String returns v as a string, or "" when it is not one.
func String(v any) string {
	s, _ := v.(string)
	return s
}

// Int returns v as an int across the numeric types YAML and JSON produce.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case uint64:
		return int(n)
	case string:
		parsed, err := strconv.Atoi(n)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}

// Bool returns v as a bool. Non-bool values are truthy when present and
// non-empty, matching how the source configurations treat flags.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		return b != "" && b != "false" && b != "0"
	case nil:
		return false
	case int:
		return b != 0
	case float64:
		return b != 0
	case map[string]any:
		return len(b) > 0
	case []any:
		return len(b) > 0
	default:
		return true
	}
}

// Map returns v as a string-keyed map, or nil.
func Map(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// List returns v as a slice, or nil.
func List(v any) []any {
	l, _ := v.([]any)
	return l
}

// Strings converts a decoded list into its string entries, reading the
// "name" key out of map entries. Used for tool and agent name lists.
func Strings(v any) []string {
	items := List(v)
	if items == nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch e := item.(type) {
		case string:
			out = append(out, e)
		case map[string]any:
			if name := String(e["name"]); name != "" {
				out = append(out, name)
			}
		}
	}
	return out
}
