package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

func TestMessageMapsToText(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeMessage, Role: wire.RoleAgent, Text: "done"})

	require.NotNil(t, result)
	assert.False(t, result.Degraded)
	assert.Equal(t, canon.RoleAgent, result.Role)
	assert.Equal(t, []canon.Block{canon.TextBlock{Text: "done"}}, result.Blocks)
}

func TestMessageBlockListPassesThrough(t *testing.T) {
	blocks := []canon.Block{
		canon.TextBlock{Text: "reading"},
		canon.ToolCallBlock{ID: "toolu_01", Name: "Read"},
	}
	result := Map(wire.Payload{Subtype: wire.SubtypeMessage, Role: wire.RoleAgent, Blocks: blocks})

	require.NotNil(t, result)
	assert.False(t, result.Degraded)
	assert.Equal(t, blocks, result.Blocks)
}

func TestUserMessagePreservesRole(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeMessage, Role: wire.RoleUser, Text: "hi"})

	require.NotNil(t, result)
	assert.Equal(t, canon.RoleUser, result.Role)
}

func TestReasoningCollapsesToText(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeReasoning, Role: wire.RoleAgent, Text: "because"})

	require.NotNil(t, result)
	assert.Equal(t, []canon.Block{canon.TextBlock{Text: "because"}}, result.Blocks)
}

func TestThinkingBlock(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeThinking, Text: "mull it over"})

	require.NotNil(t, result)
	assert.Equal(t, []canon.Block{canon.ThinkingBlock{Text: "mull it over"}}, result.Blocks)
}

func TestToolUse(t *testing.T) {
	input := map[string]any{"command": []any{"ls"}}
	result := Map(wire.Payload{Subtype: wire.SubtypeToolUse, ID: "abc123", Name: "Bash", Input: input})

	require.NotNil(t, result)
	assert.Equal(t, []canon.Block{canon.ToolCallBlock{ID: "abc123", Name: "Bash", Input: input}}, result.Blocks)
}

func TestToolUseMissingNameDegrades(t *testing.T) {
	raw := map[string]any{"type": "tool-call", "callId": "abc123"}
	result := Map(wire.Payload{Subtype: wire.SubtypeToolUse, ID: "abc123", Raw: raw})

	require.NotNil(t, result)
	assert.True(t, result.Degraded)
	require.Len(t, result.Blocks, 1)

	text, ok := result.Blocks[0].(canon.TextBlock)
	require.True(t, ok)
	assert.Contains(t, text.Text, "abc123")
}

func TestToolResult(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeToolResult, ID: "abc123", Output: "ok", IsError: true})

	require.NotNil(t, result)
	assert.Equal(t, []canon.Block{canon.ToolResultBlock{ID: "abc123", Output: "ok", IsError: true}}, result.Blocks)
}

func TestFileEditSynthesizesToolCall(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeFileEdit, ID: "e1", Input: map[string]any{"path": "main.go"}})

	require.NotNil(t, result)
	require.Len(t, result.Blocks, 1)

	call, ok := result.Blocks[0].(canon.ToolCallBlock)
	require.True(t, ok)
	assert.Equal(t, FileEditToolName, call.Name)
}

func TestTerminalOutputMapsToToolResult(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypeTerminalOutput, ID: "t1", Output: "hello"})

	require.NotNil(t, result)
	assert.Equal(t, []canon.Block{canon.ToolResultBlock{ID: "t1", Output: "hello"}}, result.Blocks)
}

func TestPermissionRequestSynthesizesName(t *testing.T) {
	result := Map(wire.Payload{Subtype: wire.SubtypePermissionRequest, ID: "p1"})

	require.NotNil(t, result)
	call, ok := result.Blocks[0].(canon.ToolCallBlock)
	require.True(t, ok)
	assert.Equal(t, PermissionToolName, call.Name)

	named := Map(wire.Payload{Subtype: wire.SubtypePermissionRequest, Name: "Bash"})
	call, ok = named.Blocks[0].(canon.ToolCallBlock)
	require.True(t, ok)
	assert.Equal(t, "Bash", call.Name)
}

func TestLifecycleSubtypesYieldNoMessage(t *testing.T) {
	for _, subtype := range []wire.Subtype{
		wire.SubtypeTaskStarted,
		wire.SubtypeTaskComplete,
		wire.SubtypeTurnAborted,
		wire.SubtypeTokenCount,
	} {
		assert.Nil(t, Map(wire.Payload{Subtype: subtype}), "subtype %s", subtype)
	}
}

func TestCatchAllYieldsNoMessage(t *testing.T) {
	assert.Nil(t, Map(wire.Payload{Subtype: wire.SubtypeOther}))
	assert.Nil(t, Map(wire.Payload{Subtype: wire.Subtype("never-registered")}))
}

func TestMapIsIdempotent(t *testing.T) {
	payload := wire.Payload{Subtype: wire.SubtypeToolUse, ID: "abc123", Name: "Bash"}

	first := Map(payload)
	second := Map(payload)
	assert.Equal(t, first, second)
}
