package acp

import (
	"strings"

	"agentrelay/internal/adapt"
	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

// PermissionModes is the token set shared by the enveloped-generic
// families. It is a superset of the native family's set; validation is
// still strictly per-family.
var PermissionModes = []string{
	"default",
	"acceptEdits",
	"plan",
	"bypassPermissions",
	"read-only",
	"safe-yolo",
	"yolo",
}

func init() {
	wire.Register(wire.Family{
		Provider:        wire.ProviderCodex,
		Precedence:      30,
		Detect:          detectFor(wire.ProviderCodex),
		Validate:        validateFor(wire.ProviderCodex),
		Strategies:      strategies,
		PermissionModes: PermissionModes,
	})
	wire.Register(wire.Family{
		Provider:        wire.ProviderGemini,
		Precedence:      31,
		Detect:          detectFor(wire.ProviderGemini),
		Validate:        validateFor(wire.ProviderGemini),
		Strategies:      strategies,
		PermissionModes: PermissionModes,
	})
	// Reserved slot: validates against the same envelope schema but has
	// no extraction strategies, so every record degrades to catch-all.
	wire.Register(wire.Family{
		Provider:        wire.ProviderCursor,
		Precedence:      32,
		Detect:          detectFor(wire.ProviderCursor),
		Validate:        validateFor(wire.ProviderCursor),
		PermissionModes: PermissionModes,
	})
}

func detectFor(provider wire.Provider) func(content map[string]any) bool {
	return func(content map[string]any) bool {
		if adapt.Str(content, "type") != EnvelopeType {
			return false
		}
		return adapt.Str(content, "provider") == string(provider)
	}
}

func validateFor(provider wire.Provider) func(rec wire.Record) (wire.Validated, *wire.ValidationError) {
	return func(rec wire.Record) (wire.Validated, *wire.ValidationError) {
		var env envelope
		extra, verr := wire.Decode(provider, rec.Content, &env)
		if verr != nil {
			return wire.Validated{}, verr
		}

		var header dataHeader
		if _, verr := wire.Decode(provider, env.Data, &header); verr != nil {
			return wire.Validated{}, wire.PrefixIssues(verr, "data")
		}

		return wire.Validated{
			Provider: provider,
			Role:     rec.Role,
			Subtype:  header.Type,
			Data:     env.Data,
			Extra:    extra,
		}, nil
	}
}

// strategies is the fixed-order extraction list for this family:
// list-of-content-items wrapper first, then the nested input wrapper,
// then flat fields on the envelope.
var strategies = []wire.Strategy{
	strategyContentItems,
	strategyInputWrapper,
	strategyFlat,
}

func strategyContentItems(v wire.Validated) (wire.Payload, bool) {
	items := adapt.Slice(v.Data, "content")
	if len(items) == 0 {
		return wire.Payload{}, false
	}

	text := joinItems(items)
	if text == "" {
		return wire.Payload{}, false
	}

	return wire.Payload{
		ID:      adapt.Str(v.Data, "callId", "id"),
		Name:    adapt.Str(v.Data, "name"),
		Text:    text,
		Output:  text,
		IsError: adapt.Bool(v.Data, "isError", "is_error"),
	}, true
}

func strategyInputWrapper(v wire.Validated) (wire.Payload, bool) {
	input := adapt.Map(v.Data, "input")
	if input == nil {
		return wire.Payload{}, false
	}

	return wire.Payload{
		ID:      adapt.Str(v.Data, "callId", "id"),
		Name:    adapt.Str(v.Data, "name"),
		Input:   input,
		Text:    adapt.Str(v.Data, "text", "message"),
		IsError: adapt.Bool(v.Data, "isError", "is_error"),
	}, true
}

func strategyFlat(v wire.Validated) (wire.Payload, bool) {
	payload := wire.Payload{
		ID:      adapt.Str(v.Data, "callId", "id"),
		Name:    adapt.Str(v.Data, "name"),
		Text:    adapt.Str(v.Data, "text", "message", "thinking"),
		Output:  adapt.Str(v.Data, "output"),
		IsError: adapt.Bool(v.Data, "isError", "is_error"),
	}
	if usage := adapt.Map(v.Data, "usage"); usage != nil {
		payload.Usage = usageFrom(usage)
	}

	if payload.ID == "" && payload.Name == "" && payload.Text == "" &&
		payload.Output == "" && payload.Usage == nil && !lifecycleTag(v.Subtype) {
		return wire.Payload{}, false
	}
	return payload, true
}

// lifecycleTag reports whether a subtype carries no payload fields of its
// own, so an empty flat extraction still counts as complete.
func lifecycleTag(tag string) bool {
	switch adapt.CanonicalTag(tag) {
	case wire.SubtypeTaskStarted, wire.SubtypeTaskComplete, wire.SubtypeTurnAborted, wire.SubtypeTokenCount:
		return true
	default:
		return false
	}
}

func joinItems(items []any) string {
	var parts []string
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if text := adapt.Str(entry, "text"); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}

// usageFrom accepts both underscore and camel spellings of the counters.
func usageFrom(m map[string]any) *canon.TokenUsage {
	return &canon.TokenUsage{
		InputTokens:       adapt.Int(m, "input_tokens", "inputTokens"),
		CachedInputTokens: adapt.Int(m, "cached_input_tokens", "cachedInputTokens"),
		OutputTokens:      adapt.Int(m, "output_tokens", "outputTokens"),
		ReasoningTokens:   adapt.Int(m, "reasoning_tokens", "reasoningTokens"),
		TotalTokens:       adapt.Int(m, "total_tokens", "totalTokens"),
	}
}
