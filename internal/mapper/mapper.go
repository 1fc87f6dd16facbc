// Package mapper holds the central state-free transform from adapted
// payloads to canonical content. The mapping is a pure function: the same
// payload always yields the same outcome, so re-running it for redelivery
// or dedup is safe.
package mapper

import (
	"encoding/json"
	"fmt"

	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

// Synthesized tool names for subtypes that have no tool name on the wire.
const (
	FileEditToolName   = "Edit"
	PermissionToolName = "RequestPermission"
)

// Result is a mapped canonical outcome before the façade attaches message
// identity. Degraded marks a mapping that fell back to catch-all content
// because an expected field was missing; it is not an error, but it is
// counted for operational monitoring.
type Result struct {
	Role     canon.Role
	Blocks   []canon.Block
	Degraded bool
}

// Map produces zero or one canonical outcome for an adapted payload. It
// is total over the closed subtype set: lifecycle subtypes and the
// catch-all yield nil, and a payload missing an expected field downgrades
// to catch-all text carrying the raw payload for diagnosis, never an
// error.
func Map(p wire.Payload) *Result {
	switch p.Subtype {
	case wire.SubtypeMessage:
		if len(p.Blocks) > 0 {
			return &Result{Role: roleFor(p), Blocks: p.Blocks}
		}
		if p.Text == "" {
			return degraded(p)
		}
		return &Result{Role: roleFor(p), Blocks: []canon.Block{canon.TextBlock{Text: p.Text}}}

	case wire.SubtypeReasoning:
		// Reasoning surfaces as text, not a distinct block type.
		if p.Text == "" {
			return degraded(p)
		}
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{canon.TextBlock{Text: p.Text}}}

	case wire.SubtypeThinking:
		if p.Text == "" {
			return degraded(p)
		}
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{canon.ThinkingBlock{Text: p.Text}}}

	case wire.SubtypeToolUse:
		if p.Name == "" {
			return degraded(p)
		}
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{
			canon.ToolCallBlock{ID: p.ID, Name: p.Name, Input: p.Input},
		}}

	case wire.SubtypeToolResult:
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{
			canon.ToolResultBlock{ID: p.ID, Output: p.Output, IsError: p.IsError},
		}}

	case wire.SubtypeFileEdit:
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{
			canon.ToolCallBlock{ID: p.ID, Name: FileEditToolName, Input: p.Input},
		}}

	case wire.SubtypeTerminalOutput:
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{
			canon.ToolResultBlock{ID: p.ID, Output: p.Output, IsError: p.IsError},
		}}

	case wire.SubtypePermissionRequest:
		name := p.Name
		if name == "" {
			name = PermissionToolName
		}
		return &Result{Role: canon.RoleAgent, Blocks: []canon.Block{
			canon.ToolCallBlock{ID: p.ID, Name: name, Input: p.Input},
		}}

	case wire.SubtypeTaskStarted, wire.SubtypeTaskComplete, wire.SubtypeTurnAborted, wire.SubtypeTokenCount:
		// Lifecycle noise: no canonical message.
		return nil

	case wire.SubtypeOther:
		// Unrecognized subtypes are a forward-compatible no-op.
		return nil

	default:
		return nil
	}
}

// roleFor preserves the user role for user-authored messages; every other
// subtype is agent-authored.
func roleFor(p wire.Payload) canon.Role {
	if p.Subtype == wire.SubtypeMessage && p.Role == wire.RoleUser {
		return canon.RoleUser
	}
	return canon.RoleAgent
}

// degraded wraps the raw payload as opaque text so a record with missing
// fields still delivers, just with reduced fidelity.
func degraded(p wire.Payload) *Result {
	return &Result{
		Role:     roleFor(p),
		Blocks:   []canon.Block{canon.TextBlock{Text: rawText(p)}},
		Degraded: true,
	}
}

func rawText(p wire.Payload) string {
	if len(p.Raw) == 0 {
		return fmt.Sprintf("[%s]", p.Subtype)
	}
	encoded, err := json.Marshal(p.Raw)
	if err != nil {
		return fmt.Sprintf("%v", p.Raw)
	}
	return string(encoded)
}
