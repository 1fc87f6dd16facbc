package normalize

import "sync/atomic"

// Metrics counts pipeline outcomes. Degraded mappings are not errors but
// must stay countable for operational monitoring.
type Metrics struct {
	messages     atomic.Uint64
	signals      atomic.Uint64
	degraded     atomic.Uint64
	rejected     atomic.Uint64
	unrecognized atomic.Uint64
}

// MetricsSnapshot is a point-in-time copy of the counters.
type MetricsSnapshot struct {
	Messages     uint64 `json:"messages"`
	Signals      uint64 `json:"signals"`
	Degraded     uint64 `json:"degraded"`
	Rejected     uint64 `json:"rejected"`
	Unrecognized uint64 `json:"unrecognized"`
}

func (m *Metrics) snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Messages:     m.messages.Load(),
		Signals:      m.signals.Load(),
		Degraded:     m.degraded.Load(),
		Rejected:     m.rejected.Load(),
		Unrecognized: m.unrecognized.Load(),
	}
}
