package wire

import "agentrelay/internal/canon"

// Subtype is the internal, underscore-convention subtype tag. Provider
// tags (hyphenated or otherwise) are rewritten to these values by the
// adapter; no provider spelling survives past adaptation.
type Subtype string

const (
	SubtypeMessage           Subtype = "message"
	SubtypeReasoning         Subtype = "reasoning"
	SubtypeThinking          Subtype = "thinking"
	SubtypeToolUse           Subtype = "tool_use"
	SubtypeToolResult        Subtype = "tool_result"
	SubtypeFileEdit          Subtype = "file_edit"
	SubtypeTerminalOutput    Subtype = "terminal_output"
	SubtypePermissionRequest Subtype = "permission_request"
	SubtypeTaskStarted       Subtype = "task_started"
	SubtypeTaskComplete      Subtype = "task_complete"
	SubtypeTurnAborted       Subtype = "turn_aborted"
	SubtypeTokenCount        Subtype = "token_count"

	// SubtypeOther is the catch-all for unrecognized tags and payloads
	// whose expected fields could not be extracted. It never causes
	// rejection of the record.
	SubtypeOther Subtype = "other"
)

// Payload is the adapted record: one internal shape regardless of which
// family produced it. Every field already follows the internal naming
// convention when the mapper sees it.
type Payload struct {
	Provider Provider
	Subtype  Subtype
	Role     Role

	// Tool fields. ID is the provider's call identifier after renaming.
	ID      string
	Name    string
	Input   map[string]any
	Output  string
	IsError bool

	// Text for message, reasoning and thinking subtypes.
	Text string

	// Blocks carries pre-translated content for families whose message
	// payload is already a block list (the native SDK shape). When set,
	// the mapper emits it as-is instead of building a single block from
	// the flat fields above.
	Blocks []canon.Block

	// Usage accompanies token_count records.
	Usage *canon.TokenUsage

	// Extra holds unknown keys carried through validation; Raw holds the
	// original subtype payload for catch-all diagnosis.
	Extra map[string]any
	Raw   map[string]any
}
