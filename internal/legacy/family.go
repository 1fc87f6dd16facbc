package legacy

import (
	"encoding/json"

	"agentrelay/internal/adapt"
	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

func init() {
	wire.Register(wire.Family{
		Provider:   wire.ProviderCodexLegacy,
		Precedence: 20,
		Detect:     detect,
		Validate:   validateRecord,
		Strategies: []wire.Strategy{strategyFlat},
		// The legacy backend predates permission modes; it accepts the
		// same token set as its enveloped successor.
		PermissionModes: []string{
			"default",
			"acceptEdits",
			"plan",
			"bypassPermissions",
			"read-only",
			"safe-yolo",
			"yolo",
		},
	})
}

func detect(content map[string]any) bool {
	tag := adapt.Str(content, "type")
	if _, ok := knownEntryTypes[tag]; !ok {
		return false
	}
	// Wrapper keys mean one of the more specific families.
	if adapt.Map(content, "data") != nil {
		return false
	}
	return adapt.Str(content, "provider") == ""
}

func validateRecord(rec wire.Record) (wire.Validated, *wire.ValidationError) {
	var env envelope
	extra, verr := wire.Decode(wire.ProviderCodexLegacy, rec.Content, &env)
	if verr != nil {
		return wire.Validated{}, verr
	}

	return wire.Validated{
		Provider: wire.ProviderCodexLegacy,
		Role:     rec.Role,
		Subtype:  env.Type,
		Data:     rec.Content,
		Extra:    extra,
	}, nil
}

// strategyFlat is the only extraction shape this family has. Arguments
// arrive as stringified JSON and are rewritten into a structured input
// map here, before the mapper sees them.
func strategyFlat(v wire.Validated) (wire.Payload, bool) {
	payload := wire.Payload{
		ID:      adapt.Str(v.Data, "call_id", "id"),
		Name:    adapt.Str(v.Data, "name"),
		Text:    adapt.Str(v.Data, "text", "content"),
		Output:  adapt.Str(v.Data, "output"),
		IsError: adapt.Bool(v.Data, "is_error"),
		Input:   parseArguments(adapt.Str(v.Data, "arguments")),
	}
	if usage := adapt.Map(v.Data, "usage", "info"); usage != nil {
		payload.Usage = &canon.TokenUsage{
			InputTokens:       adapt.Int(usage, "input_tokens"),
			CachedInputTokens: adapt.Int(usage, "cached_input_tokens"),
			OutputTokens:      adapt.Int(usage, "output_tokens"),
			ReasoningTokens:   adapt.Int(usage, "reasoning_output_tokens", "reasoning_tokens"),
			TotalTokens:       adapt.Int(usage, "total_tokens"),
		}
	}

	if payload.ID == "" && payload.Name == "" && payload.Text == "" &&
		payload.Output == "" && payload.Usage == nil && !lifecycleTag(v.Subtype) {
		return wire.Payload{}, false
	}
	return payload, true
}

func parseArguments(raw string) map[string]any {
	if raw == "" {
		return nil
	}
	var input map[string]any
	if err := json.Unmarshal([]byte(raw), &input); err != nil {
		return nil
	}
	return input
}

func lifecycleTag(tag string) bool {
	switch adapt.CanonicalTag(tag) {
	case wire.SubtypeTaskStarted, wire.SubtypeTaskComplete, wire.SubtypeTurnAborted, wire.SubtypeTokenCount:
		return true
	default:
		return false
	}
}
