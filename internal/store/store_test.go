package store

import (
	"testing"
	"time"

	"agentrelay/internal/canon"
)

func msg(id, localID string, role canon.Role, blocks ...canon.Block) *canon.Message {
	return &canon.Message{
		ID:        id,
		LocalID:   localID,
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Role:      role,
		Content:   blocks,
	}
}

func TestAppendDedupsOnID(t *testing.T) {
	log := NewSessionLog()

	if !log.Append(msg("m1", "l1", canon.RoleAgent, canon.TextBlock{Text: "hi"})) {
		t.Fatal("first append should succeed")
	}
	if log.Append(msg("m1", "l2", canon.RoleAgent, canon.TextBlock{Text: "again"})) {
		t.Error("duplicate id should be rejected")
	}
	if log.Append(msg("m2", "l1", canon.RoleAgent, canon.TextBlock{Text: "again"})) {
		t.Error("duplicate localId should be rejected")
	}

	if got := len(log.Messages()); got != 1 {
		t.Errorf("messages = %d, want 1", got)
	}
	if got := log.Stats().Duplicates; got != 2 {
		t.Errorf("duplicates = %d, want 2", got)
	}
}

func TestAppendNilIsNoop(t *testing.T) {
	log := NewSessionLog()
	if log.Append(nil) {
		t.Error("nil message should not be appended")
	}
	if got := len(log.Messages()); got != 0 {
		t.Errorf("messages = %d, want 0", got)
	}
}

func TestThinkingLifecycle(t *testing.T) {
	log := NewSessionLog()

	if log.Thinking() {
		t.Fatal("fresh log should not be thinking")
	}

	log.Append(msg("m1", "", canon.RoleUser, canon.TextBlock{Text: "do it"}))
	if !log.Thinking() {
		t.Fatal("user message should start a turn")
	}

	log.Append(msg("m2", "", canon.RoleAgent, canon.TextBlock{Text: "working"}))
	if !log.Thinking() {
		t.Fatal("agent message should not end the turn")
	}

	log.ApplySignal(&canon.Signal{Kind: canon.SignalTurnComplete})
	if log.Thinking() {
		t.Fatal("turnComplete should end the turn")
	}

	log.Append(msg("m3", "", canon.RoleUser, canon.TextBlock{Text: "more"}))
	log.ApplySignal(&canon.Signal{Kind: canon.SignalTurnAborted})
	if log.Thinking() {
		t.Fatal("turnAborted should end the turn")
	}

	stats := log.Stats()
	if stats.TurnsCompleted != 1 {
		t.Errorf("turns completed = %d, want 1", stats.TurnsCompleted)
	}
	if stats.TurnsAborted != 1 {
		t.Errorf("turns aborted = %d, want 1", stats.TurnsAborted)
	}
}

func TestUsageAccumulates(t *testing.T) {
	log := NewSessionLog()

	log.ApplySignal(&canon.Signal{
		Kind:  canon.SignalTokenUsage,
		Usage: &canon.TokenUsage{InputTokens: 100, OutputTokens: 20, TotalTokens: 120},
	})
	log.ApplySignal(&canon.Signal{
		Kind:  canon.SignalTokenUsage,
		Usage: &canon.TokenUsage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80},
	})
	log.ApplySignal(&canon.Signal{Kind: canon.SignalTokenUsage})
	log.ApplySignal(nil)
	log.ApplySignal(&canon.Signal{
		Kind:  canon.SignalTurnComplete,
		Usage: &canon.TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15},
	})

	usage := log.Stats().Usage
	if usage.InputTokens != 160 {
		t.Errorf("input tokens = %d, want 160", usage.InputTokens)
	}
	if usage.OutputTokens != 55 {
		t.Errorf("output tokens = %d, want 55", usage.OutputTokens)
	}
	if usage.TotalTokens != 215 {
		t.Errorf("total tokens = %d, want 215", usage.TotalTokens)
	}
}

func TestStatsCountsRolesAndBlocks(t *testing.T) {
	log := NewSessionLog()

	log.Append(msg("m1", "", canon.RoleUser, canon.TextBlock{Text: "run ls"}))
	log.Append(msg("m2", "", canon.RoleAgent,
		canon.ThinkingBlock{Text: "listing"},
		canon.ToolCallBlock{ID: "t1", Name: "Bash"},
	))
	log.Append(msg("m3", "", canon.RoleAgent, canon.ToolResultBlock{ID: "t1", Output: "ok"}))

	stats := log.Stats()
	if stats.Messages != 3 {
		t.Errorf("messages = %d, want 3", stats.Messages)
	}
	if stats.ByRole[canon.RoleUser] != 1 || stats.ByRole[canon.RoleAgent] != 2 {
		t.Errorf("by role = %v", stats.ByRole)
	}
	want := map[canon.BlockKind]int{
		canon.BlockText:       1,
		canon.BlockThinking:   1,
		canon.BlockToolCall:   1,
		canon.BlockToolResult: 1,
	}
	for kind, n := range want {
		if stats.Blocks[kind] != n {
			t.Errorf("blocks[%s] = %d, want %d", kind, stats.Blocks[kind], n)
		}
	}
}
