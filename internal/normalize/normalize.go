// Package normalize is the façade over the normalization pipeline:
// detect, validate, adapt, then map and extract in one pass. It is the
// only entry point other components call; every sub-step is internal.
package normalize

import (
	"time"

	"agentrelay/internal/adapt"
	"agentrelay/internal/canon"
	"agentrelay/internal/lifecycle"
	"agentrelay/internal/logger"
	"agentrelay/internal/mapper"
	"agentrelay/internal/wire"
)

// Result is the façade output for one record. Either field may be nil: a
// pure lifecycle ping has no message, a renderable record has no signal,
// and a dropped record has neither.
type Result struct {
	Message *canon.Message
	Signal  *canon.Signal
}

// Normalizer runs records through the pipeline. It holds no per-record
// state; the counters make drop and degradation rates observable and are
// safe under concurrent use.
type Normalizer struct {
	log     logger.Logger
	metrics Metrics
}

// New returns a Normalizer logging rejections through log.
func New(log logger.Logger) *Normalizer {
	if log == nil {
		log = logger.Nop()
	}
	return &Normalizer{log: log}
}

// Normalize converts one raw record into its canonical outcome. It never
// returns an error: a malformed record is dropped with a logged reason
// and the caller continues with the next record.
func (n *Normalizer) Normalize(id, localID string, createdAt time.Time, rec wire.Record) Result {
	family, ok := wire.Detect(rec.Content)
	if !ok {
		n.metrics.unrecognized.Add(1)
		n.log.Debug("unrecognized record format", "role", rec.Role)
		return Result{}
	}

	validated, verr := family.Validate(rec)
	if verr != nil {
		n.metrics.rejected.Add(1)
		n.log.Warn("record rejected",
			"provider", verr.Provider,
			"issues", len(verr.Issues),
			"detail", verr.Error(),
		)
		return Result{}
	}

	payload := adapt.Adapt(family, validated)

	// Mapping and signal extraction are independent reads over the same
	// payload; neither depends on the other's outcome.
	mapped := mapper.Map(payload)
	signal := lifecycle.Extract(payload)

	var result Result
	if mapped != nil {
		if mapped.Degraded {
			n.metrics.degraded.Add(1)
			n.log.Debug("degraded mapping",
				"provider", payload.Provider,
				"subtype", payload.Subtype,
			)
		}
		n.metrics.messages.Add(1)
		result.Message = &canon.Message{
			ID:        id,
			LocalID:   localID,
			CreatedAt: createdAt,
			Role:      mapped.Role,
			Content:   mapped.Blocks,
		}
	}
	if signal != nil {
		n.metrics.signals.Add(1)
		result.Signal = signal
	}
	return result
}

// Metrics returns a snapshot of the pipeline counters.
func (n *Normalizer) Metrics() MetricsSnapshot {
	return n.metrics.snapshot()
}
