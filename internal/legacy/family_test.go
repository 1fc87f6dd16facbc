package legacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentrelay/internal/adapt"
	"agentrelay/internal/wire"
)

func family(t *testing.T) wire.Family {
	t.Helper()
	f, ok := wire.Lookup(wire.ProviderCodexLegacy)
	require.True(t, ok)
	return f
}

func TestDetectClosedTagSet(t *testing.T) {
	f := family(t)

	assert.True(t, f.Detect(map[string]any{"type": "message", "text": "hi"}))
	assert.True(t, f.Detect(map[string]any{"type": "function_call", "name": "shell"}))
	assert.False(t, f.Detect(map[string]any{"type": "wizard-step"}))

	// Wrapper keys belong to the more specific families.
	assert.False(t, f.Detect(map[string]any{"type": "message", "data": map[string]any{}}))
	assert.False(t, f.Detect(map[string]any{"type": "message", "provider": "codex"}))
}

func TestFunctionCallArgumentsParsed(t *testing.T) {
	f := family(t)

	validated, verr := f.Validate(wire.Record{
		Role: wire.RoleAgent,
		Content: map[string]any{
			"type":      "function_call",
			"call_id":   "call_7",
			"name":      "shell",
			"arguments": `{"command":["ls","-la"]}`,
		},
	})
	require.Nil(t, verr)

	payload := adapt.Adapt(f, validated)
	assert.Equal(t, wire.SubtypeToolUse, payload.Subtype)
	assert.Equal(t, "call_7", payload.ID)
	assert.Equal(t, "shell", payload.Name)
	assert.Equal(t, map[string]any{"command": []any{"ls", "-la"}}, payload.Input)
}

func TestMalformedArgumentsDropToNil(t *testing.T) {
	f := family(t)

	payload := adapt.Adapt(f, wire.Validated{
		Provider: wire.ProviderCodexLegacy,
		Subtype:  "function_call",
		Data: map[string]any{
			"type":      "function_call",
			"name":      "shell",
			"arguments": "{not json",
		},
	})

	assert.Equal(t, "shell", payload.Name)
	assert.Nil(t, payload.Input)
}

func TestFunctionCallOutput(t *testing.T) {
	f := family(t)

	payload := adapt.Adapt(f, wire.Validated{
		Provider: wire.ProviderCodexLegacy,
		Subtype:  "function_call_output",
		Data: map[string]any{
			"type":    "function_call_output",
			"call_id": "call_7",
			"output":  "total 0",
		},
	})

	assert.Equal(t, wire.SubtypeToolResult, payload.Subtype)
	assert.Equal(t, "call_7", payload.ID)
	assert.Equal(t, "total 0", payload.Output)
}

func TestUserMessagePreservesRole(t *testing.T) {
	f := family(t)

	validated, verr := f.Validate(wire.Record{
		Role:    wire.RoleUser,
		Content: map[string]any{"type": "message", "text": "run the tests"},
	})
	require.Nil(t, verr)

	payload := adapt.Adapt(f, validated)
	assert.Equal(t, wire.RoleUser, payload.Role)
	assert.Equal(t, "run the tests", payload.Text)
}

func TestLegacyTokenCountInfoKey(t *testing.T) {
	f := family(t)

	payload := adapt.Adapt(f, wire.Validated{
		Provider: wire.ProviderCodexLegacy,
		Subtype:  "token_count",
		Data: map[string]any{
			"type": "token_count",
			"info": map[string]any{
				"input_tokens":            float64(30),
				"reasoning_output_tokens": float64(12),
			},
		},
	})

	require.NotNil(t, payload.Usage)
	assert.Equal(t, 30, payload.Usage.InputTokens)
	assert.Equal(t, 12, payload.Usage.ReasoningTokens)
}
