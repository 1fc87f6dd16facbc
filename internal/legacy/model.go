// Package legacy implements the codex backend's legacy flat wire format.
// There is no payload wrapper: the content envelope carries the subtype
// tag and every payload field at the same level. Tool invocations use the
// function_call spelling with stringified JSON arguments.
package legacy

// EntryType captures the content "type" values for this family.
type EntryType string

const (
	EntryTypeMessage            EntryType = "message"
	EntryTypeReasoning          EntryType = "reasoning"
	EntryTypeFunctionCall       EntryType = "function_call"
	EntryTypeFunctionCallOutput EntryType = "function_call_output"
	EntryTypeTaskStarted        EntryType = "task_started"
	EntryTypeTaskComplete       EntryType = "task_complete"
	EntryTypeTurnAborted        EntryType = "turn_aborted"
	EntryTypeTokenCount         EntryType = "token_count"
)

// knownEntryTypes is the closed detection set. The tag doubles as the
// family discriminant because there is no wrapper key to test for.
var knownEntryTypes = map[string]struct{}{
	string(EntryTypeMessage):            {},
	string(EntryTypeReasoning):          {},
	string(EntryTypeFunctionCall):       {},
	string(EntryTypeFunctionCallOutput): {},
	string(EntryTypeTaskStarted):        {},
	string(EntryTypeTaskComplete):       {},
	string(EntryTypeTurnAborted):        {},
	string(EntryTypeTokenCount):         {},
}

// envelope is the validated shape of the content field for this family.
type envelope struct {
	Type string `json:"type" validate:"required"`
}
