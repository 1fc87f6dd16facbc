// Package adapt rewrites provider field conventions into the internal
// underscore convention and runs each family's ordered extraction
// strategies. Everything here is purely syntactic; semantic
// interpretation belongs to the mapper.
package adapt

import "agentrelay/internal/wire"

// tagAliases maps every known provider spelling of a subtype tag to the
// internal tag. Hyphenated spellings come from the enveloped-generic
// families; underscore spellings from the native and legacy families.
// The native family additionally tags whole messages with the SDK
// envelope types (assistant, user, system) and closes turns with result.
var tagAliases = map[string]wire.Subtype{
	"message":              wire.SubtypeMessage,
	"assistant":            wire.SubtypeMessage,
	"user":                 wire.SubtypeMessage,
	"system":               wire.SubtypeMessage,
	"reasoning":            wire.SubtypeReasoning,
	"thinking":             wire.SubtypeThinking,
	"tool-call":            wire.SubtypeToolUse,
	"tool_use":             wire.SubtypeToolUse,
	"function_call":        wire.SubtypeToolUse,
	"tool-result":          wire.SubtypeToolResult,
	"tool-call-result":     wire.SubtypeToolResult,
	"tool_result":          wire.SubtypeToolResult,
	"function_call_output": wire.SubtypeToolResult,
	"file-edit":            wire.SubtypeFileEdit,
	"file_edit":            wire.SubtypeFileEdit,
	"terminal-output":      wire.SubtypeTerminalOutput,
	"terminal_output":      wire.SubtypeTerminalOutput,
	"permission-request":   wire.SubtypePermissionRequest,
	"permission_request":   wire.SubtypePermissionRequest,
	"task_started":         wire.SubtypeTaskStarted,
	"task_complete":        wire.SubtypeTaskComplete,
	"result":               wire.SubtypeTaskComplete,
	"turn_aborted":         wire.SubtypeTurnAborted,
	"token_count":          wire.SubtypeTokenCount,
}

// CanonicalTag rewrites a provider subtype tag to the internal tag. An
// unknown tag yields the catch-all, never an error.
func CanonicalTag(tag string) wire.Subtype {
	if canonical, ok := tagAliases[tag]; ok {
		return canonical
	}
	return wire.SubtypeOther
}

// Adapt converts a validated record into the internal payload shape. A
// family's strategies run in fixed order; the first structurally complete
// extraction wins. When no strategy succeeds for a known subtype, the
// payload keeps its subtype but carries only the raw data, so the mapper
// can degrade it to catch-all content instead of dropping the record.
// Families registered without strategies have no semantic mapping: all
// their records adapt to the catch-all subtype.
func Adapt(f wire.Family, v wire.Validated) wire.Payload {
	tag := CanonicalTag(v.Subtype)
	if tag == wire.SubtypeOther || len(f.Strategies) == 0 {
		return fallback(v, wire.SubtypeOther)
	}

	for _, strategy := range f.Strategies {
		payload, ok := strategy(v)
		if !ok {
			continue
		}
		payload.Provider = v.Provider
		payload.Subtype = tag
		if payload.Role == "" {
			payload.Role = v.Role
		}
		if payload.Extra == nil {
			payload.Extra = v.Extra
		}
		if payload.Raw == nil {
			payload.Raw = v.Data
		}
		return payload
	}

	return fallback(v, tag)
}

func fallback(v wire.Validated, tag wire.Subtype) wire.Payload {
	return wire.Payload{
		Provider: v.Provider,
		Subtype:  tag,
		Role:     v.Role,
		Extra:    v.Extra,
		Raw:      v.Data,
	}
}
