// Package acp implements the enveloped-generic wire format shared by the
// codex and gemini backends (and reserved for cursor). The envelope tags
// its payload with hyphen-separated subtype names and nests the real
// payload under up to three different wrapper shapes.
package acp

// EnvelopeType is the content "type" value marking this family.
const EnvelopeType = "acp"

// DataType captures the "data.type" subtype tags observed on the wire.
// The set is closed for mapping purposes; unknown tags flow through as
// catch-all content and are never rejected.
type DataType string

const (
	DataTypeMessage           DataType = "message"
	DataTypeReasoning         DataType = "reasoning"
	DataTypeThinking          DataType = "thinking"
	DataTypeToolCall          DataType = "tool-call"
	DataTypeToolResult        DataType = "tool-result"
	DataTypeToolCallResult    DataType = "tool-call-result"
	DataTypeFileEdit          DataType = "file-edit"
	DataTypeTerminalOutput    DataType = "terminal-output"
	DataTypePermissionRequest DataType = "permission-request"
	DataTypeTaskStarted       DataType = "task_started"
	DataTypeTaskComplete      DataType = "task_complete"
	DataTypeTurnAborted       DataType = "turn_aborted"
	DataTypeTokenCount        DataType = "token_count"
)

// envelope is the validated shape of the content field for this family.
// Data stays loosely typed: its shape varies per subtype and unknown keys
// must survive validation.
type envelope struct {
	Type     string         `json:"type"     validate:"required,eq=acp"`
	Provider string         `json:"provider" validate:"required"`
	Data     map[string]any `json:"data"     validate:"required"`
}

// dataHeader enforces the one key every subtype payload must carry.
type dataHeader struct {
	Type string `json:"type" validate:"required"`
}
