// Package lifecycle extracts session-level signals from adapted payloads.
// Extraction is independent of message mapping: the same record can yield
// a signal, a message, both, or neither.
package lifecycle

import (
	"agentrelay/internal/canon"
	"agentrelay/internal/wire"
)

// Extract returns the lifecycle signal for a payload, or nil for the
// subtypes it does not care about.
func Extract(p wire.Payload) *canon.Signal {
	switch p.Subtype {
	case wire.SubtypeTaskComplete:
		// Turn-closing records may carry final usage counters (the native
		// result record does); they ride along on the signal.
		return &canon.Signal{Kind: canon.SignalTurnComplete, Usage: p.Usage}
	case wire.SubtypeTurnAborted:
		return &canon.Signal{Kind: canon.SignalTurnAborted}
	case wire.SubtypeTokenCount:
		usage := p.Usage
		if usage == nil {
			usage = &canon.TokenUsage{}
		}
		return &canon.Signal{Kind: canon.SignalTokenUsage, Usage: usage}
	default:
		return nil
	}
}
