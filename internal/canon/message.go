// Package canon defines the canonical message model shared by every
// provider family. Field names and block tags in this package never vary
// by provider; translating each backend's wire shape into these types is
// the whole job of the normalization layer.
package canon

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies the author of a canonical message.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
)

// BlockKind enumerates the closed set of canonical content block tags.
type BlockKind string

const (
	BlockText       BlockKind = "text"
	BlockThinking   BlockKind = "thinking"
	BlockToolCall   BlockKind = "tool-call"
	BlockToolResult BlockKind = "tool-result"
)

// Block is one element of a message's content sequence. The set of
// implementations is closed: TextBlock, ThinkingBlock, ToolCallBlock and
// ToolResultBlock.
type Block interface {
	Kind() BlockKind
	block()
}

// TextBlock carries plain renderable text.
type TextBlock struct {
	Text string
}

// ThinkingBlock carries intermediate reasoning text.
type ThinkingBlock struct {
	Text string
}

// ToolCallBlock represents a tool invocation, including one synthesized
// for file edits and pending permission approvals.
type ToolCallBlock struct {
	ID    string
	Name  string
	Input map[string]any
}

// ToolResultBlock carries the output of a completed tool invocation.
type ToolResultBlock struct {
	ID      string
	Output  string
	IsError bool
}

func (TextBlock) Kind() BlockKind       { return BlockText }
func (ThinkingBlock) Kind() BlockKind   { return BlockThinking }
func (ToolCallBlock) Kind() BlockKind   { return BlockToolCall }
func (ToolResultBlock) Kind() BlockKind { return BlockToolResult }

func (TextBlock) block()       {}
func (ThinkingBlock) block()   {}
func (ToolCallBlock) block()   {}
func (ToolResultBlock) block() {}

// MarshalJSON emits the canonical wire form with the block tag in "type".
func (b TextBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		Text string    `json:"text"`
	}{BlockText, b.Text})
}

// MarshalJSON emits the canonical wire form with the block tag in "type".
func (b ThinkingBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type BlockKind `json:"type"`
		Text string    `json:"text"`
	}{BlockThinking, b.Text})
}

// MarshalJSON emits the canonical wire form with the block tag in "type".
func (b ToolCallBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  BlockKind      `json:"type"`
		ID    string         `json:"id"`
		Name  string         `json:"name"`
		Input map[string]any `json:"input,omitempty"`
	}{BlockToolCall, b.ID, b.Name, b.Input})
}

// MarshalJSON emits the canonical wire form with the block tag in "type".
func (b ToolResultBlock) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type    BlockKind `json:"type"`
		ID      string    `json:"id"`
		Output  string    `json:"output"`
		IsError bool      `json:"isError"`
	}{BlockToolResult, b.ID, b.Output, b.IsError})
}

// Message is the stable normalized representation of one chat/agent turn
// fragment. A Message is an immutable value once produced; it is handed
// off to the session log and never mutated in place.
type Message struct {
	ID        string    `json:"id"`
	LocalID   string    `json:"localId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	Role      Role      `json:"role"`
	Content   []Block   `json:"content"`
}

// Summary returns a short single-line description of the message, used by
// transcript listings.
func (m *Message) Summary() string {
	for _, b := range m.Content {
		switch v := b.(type) {
		case TextBlock:
			return v.Text
		case ThinkingBlock:
			return v.Text
		case ToolCallBlock:
			return fmt.Sprintf("tool %s", v.Name)
		case ToolResultBlock:
			return fmt.Sprintf("result for %s", v.ID)
		}
	}
	return ""
}
