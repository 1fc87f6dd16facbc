// Package store provides the in-memory per-session ordered log that
// consumes normalized output: canonical messages appended in arrival
// order with id/localId dedup, and lifecycle signals driving the
// session's thinking flag and usage accounting.
package store

import (
	"sync"

	"agentrelay/internal/canon"
)

// Stats summarizes one session log.
type Stats struct {
	Messages       int                     `json:"messages"`
	Duplicates     int                     `json:"duplicates"`
	ByRole         map[canon.Role]int      `json:"by_role"`
	Blocks         map[canon.BlockKind]int `json:"blocks"`
	TurnsCompleted int                     `json:"turns_completed"`
	TurnsAborted   int                     `json:"turns_aborted"`
	Usage          canon.TokenUsage        `json:"usage"`
}

// SessionLog is safe for concurrent use; normalization itself is
// stateless, so callers may parallelize records and funnel results here.
type SessionLog struct {
	mu             sync.Mutex
	seen           map[string]struct{}
	messages       []*canon.Message
	duplicates     int
	thinking       bool
	turnsCompleted int
	turnsAborted   int
	usage          canon.TokenUsage
}

// NewSessionLog returns an empty session log.
func NewSessionLog() *SessionLog {
	return &SessionLog{seen: make(map[string]struct{})}
}

// Append adds a message unless its id or localId was seen before. It
// reports whether the message was actually appended. An agent turn is
// considered active from the first appended user message until a
// lifecycle signal ends it.
func (l *SessionLog) Append(msg *canon.Message) bool {
	if msg == nil {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, key := range []string{msg.ID, msg.LocalID} {
		if key == "" {
			continue
		}
		if _, dup := l.seen[key]; dup {
			l.duplicates++
			return false
		}
	}
	if msg.ID != "" {
		l.seen[msg.ID] = struct{}{}
	}
	if msg.LocalID != "" {
		l.seen[msg.LocalID] = struct{}{}
	}

	l.messages = append(l.messages, msg)
	if msg.Role == canon.RoleUser {
		l.thinking = true
	}
	return true
}

// ApplySignal feeds one lifecycle signal into the session state machine.
func (l *SessionLog) ApplySignal(sig *canon.Signal) {
	if sig == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch sig.Kind {
	case canon.SignalTurnComplete:
		l.thinking = false
		l.turnsCompleted++
	case canon.SignalTurnAborted:
		l.thinking = false
		l.turnsAborted++
	}
	// Any signal kind may carry usage counters.
	if sig.Usage != nil {
		l.usage.Add(*sig.Usage)
	}
}

// Messages returns the appended messages in arrival order.
func (l *SessionLog) Messages() []*canon.Message {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*canon.Message, len(l.messages))
	copy(out, l.messages)
	return out
}

// Thinking reports whether an agent turn is currently active.
func (l *SessionLog) Thinking() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.thinking
}

// Stats summarizes the log contents.
func (l *SessionLog) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	stats := Stats{
		Messages:       len(l.messages),
		Duplicates:     l.duplicates,
		ByRole:         make(map[canon.Role]int),
		Blocks:         make(map[canon.BlockKind]int),
		TurnsCompleted: l.turnsCompleted,
		TurnsAborted:   l.turnsAborted,
		Usage:          l.usage,
	}
	for _, msg := range l.messages {
		stats.ByRole[msg.Role]++
		for _, block := range msg.Content {
			stats.Blocks[block.Kind()]++
		}
	}
	return stats
}
