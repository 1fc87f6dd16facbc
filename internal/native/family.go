package native

import (
	"encoding/json"
	"fmt"
	"strings"

	"agentrelay/internal/adapt"
	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

// PermissionModes is the native family's closed token set.
var PermissionModes = []string{
	"default",
	"acceptEdits",
	"plan",
	"bypassPermissions",
}

func init() {
	wire.Register(wire.Family{
		Provider:        wire.ProviderClaude,
		Precedence:      10,
		Detect:          detect,
		Validate:        validateRecord,
		Strategies:      strategies,
		PermissionModes: PermissionModes,
	})
}

func detect(content map[string]any) bool {
	if adapt.Str(content, "type") != EnvelopeType {
		return false
	}
	return adapt.Map(content, "data") != nil
}

func validateRecord(rec wire.Record) (wire.Validated, *wire.ValidationError) {
	var env envelope
	extra, verr := wire.Decode(wire.ProviderClaude, rec.Content, &env)
	if verr != nil {
		return wire.Validated{}, verr
	}

	var header dataHeader
	if _, verr := wire.Decode(wire.ProviderClaude, env.Data, &header); verr != nil {
		return wire.Validated{}, wire.PrefixIssues(verr, "data")
	}

	return wire.Validated{
		Provider: wire.ProviderClaude,
		Role:     rec.Role,
		Subtype:  header.Type,
		Data:     env.Data,
		Extra:    extra,
	}, nil
}

// strategies: the SDK block-list shape first, then flat fields on the
// message wrapper, then flat fields on the data envelope for older
// emitters that skip the wrapper.
var strategies = []wire.Strategy{
	strategyMessageBlocks,
	strategyMessageWrapper,
	strategyFlat,
}

// strategyMessageBlocks extracts the SDK message shape: a role plus a
// content block list (or a bare string) under the message wrapper.
func strategyMessageBlocks(v wire.Validated) (wire.Payload, bool) {
	message := adapt.Map(v.Data, "message")
	if message == nil {
		return wire.Payload{}, false
	}

	blocks := blocksFrom(message["content"])
	if blocks == nil {
		return wire.Payload{}, false
	}

	payload := wire.Payload{Blocks: blocks}
	if role := adapt.Str(message, "role"); role != "" {
		payload.Role = wire.Role(role)
	}
	if usage := adapt.Map(message, "usage"); usage != nil {
		payload.Usage = usageFrom(usage)
	}
	return payload, true
}

func strategyMessageWrapper(v wire.Validated) (wire.Payload, bool) {
	message := adapt.Map(v.Data, "message")
	if message == nil {
		return wire.Payload{}, false
	}
	return payloadFrom(message), true
}

func strategyFlat(v wire.Validated) (wire.Payload, bool) {
	payload := payloadFrom(v.Data)
	if payload.ID == "" && payload.Name == "" && payload.Text == "" &&
		payload.Output == "" && payload.Usage == nil && !lifecycleTag(v.Subtype) {
		return wire.Payload{}, false
	}
	return payload, true
}

// blocksFrom translates an SDK content value: a bare string becomes one
// text block, a block list translates block by block, and anything else
// means this is not the block-list shape.
func blocksFrom(content any) []canon.Block {
	if text, ok := content.(string); ok {
		return []canon.Block{canon.TextBlock{Text: text}}
	}
	items, ok := content.([]any)
	if !ok || len(items) == 0 {
		return nil
	}

	blocks := make([]canon.Block, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		switch adapt.Str(entry, "type") {
		case "text":
			blocks = append(blocks, canon.TextBlock{Text: adapt.Str(entry, "text")})
		case "thinking":
			blocks = append(blocks, canon.ThinkingBlock{Text: adapt.Str(entry, "thinking", "text")})
		case "tool_use":
			blocks = append(blocks, canon.ToolCallBlock{
				ID:    adapt.Str(entry, "id"),
				Name:  adapt.Str(entry, "name"),
				Input: adapt.Map(entry, "input"),
			})
		case "tool_result":
			blocks = append(blocks, canon.ToolResultBlock{
				ID:      adapt.Str(entry, "tool_use_id"),
				Output:  resultOutput(entry["content"]),
				IsError: adapt.Bool(entry, "is_error"),
			})
		default:
			// Unknown block type: keep the payload as opaque text.
			blocks = append(blocks, canon.TextBlock{Text: rawJSON(entry)})
		}
	}
	if len(blocks) == 0 {
		return nil
	}
	return blocks
}

// resultOutput flattens a tool_result content value, which may be a bare
// string or a nested list of text items.
func resultOutput(content any) string {
	if text, ok := content.(string); ok {
		return text
	}
	items, ok := content.([]any)
	if !ok {
		return ""
	}
	var parts []string
	for _, item := range items {
		if entry, ok := item.(map[string]any); ok {
			if text := adapt.Str(entry, "text"); text != "" {
				parts = append(parts, text)
			}
		}
	}
	return strings.Join(parts, "\n")
}

func rawJSON(value map[string]any) string {
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}

func payloadFrom(m map[string]any) wire.Payload {
	payload := wire.Payload{
		ID:      adapt.Str(m, "id", "tool_use_id"),
		Name:    adapt.Str(m, "name"),
		Input:   adapt.Map(m, "input"),
		Text:    adapt.Str(m, "text", "thinking"),
		Output:  adapt.Str(m, "output", "content"),
		IsError: adapt.Bool(m, "is_error"),
	}
	if role := adapt.Str(m, "role"); role != "" {
		payload.Role = wire.Role(role)
	}
	if usage := adapt.Map(m, "usage"); usage != nil {
		payload.Usage = usageFrom(usage)
	}
	return payload
}

func usageFrom(m map[string]any) *canon.TokenUsage {
	return &canon.TokenUsage{
		InputTokens:       adapt.Int(m, "input_tokens"),
		CachedInputTokens: adapt.Int(m, "cached_input_tokens", "cache_read_input_tokens"),
		OutputTokens:      adapt.Int(m, "output_tokens"),
		ReasoningTokens:   adapt.Int(m, "reasoning_tokens"),
		TotalTokens:       adapt.Int(m, "total_tokens"),
	}
}

func lifecycleTag(tag string) bool {
	switch adapt.CanonicalTag(tag) {
	case wire.SubtypeTaskStarted, wire.SubtypeTaskComplete, wire.SubtypeTurnAborted, wire.SubtypeTokenCount:
		return true
	default:
		return false
	}
}
