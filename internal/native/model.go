// Package native implements the claude backend's nested wire format. The
// envelope wraps an SDK-style message under content.data: the data "type"
// is the envelope tag (assistant, user, system, result), and the message
// wrapper carries the role plus a content block list. Field names already
// follow the internal underscore convention.
package native

// EnvelopeType is the content "type" value marking this family.
const EnvelopeType = "output"

// DataType captures the "data.type" tags for this family. The SDK tags
// mark whole messages; the underscore tags appear on older flat records.
type DataType string

const (
	DataTypeAssistant    DataType = "assistant"
	DataTypeUser         DataType = "user"
	DataTypeSystem       DataType = "system"
	DataTypeResult       DataType = "result"
	DataTypeMessage      DataType = "message"
	DataTypeThinking     DataType = "thinking"
	DataTypeToolUse      DataType = "tool_use"
	DataTypeToolResult   DataType = "tool_result"
	DataTypeTaskStarted  DataType = "task_started"
	DataTypeTaskComplete DataType = "task_complete"
	DataTypeTurnAborted  DataType = "turn_aborted"
	DataTypeTokenCount   DataType = "token_count"
)

// envelope is the validated shape of the content field for this family.
type envelope struct {
	Type string         `json:"type" validate:"required,eq=output"`
	Data map[string]any `json:"data" validate:"required"`
}

// dataHeader enforces the subtype tag. Message stays loosely typed so
// unknown payload keys survive validation.
type dataHeader struct {
	Type    string         `json:"type" validate:"required"`
	Message map[string]any `json:"message"`
}
