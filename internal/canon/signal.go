package canon

// SignalKind enumerates the session lifecycle events recognized across
// provider families.
type SignalKind string

const (
	SignalTurnComplete SignalKind = "turnComplete"
	SignalTurnAborted  SignalKind = "turnAborted"
	SignalTokenUsage   SignalKind = "tokenUsage"
)

// TokenUsage carries token accounting counters verbatim from the wire.
type TokenUsage struct {
	InputTokens       int `json:"input_tokens"`
	CachedInputTokens int `json:"cached_input_tokens"`
	OutputTokens      int `json:"output_tokens"`
	ReasoningTokens   int `json:"reasoning_tokens"`
	TotalTokens       int `json:"total_tokens"`
}

// Add accumulates counters from another usage sample.
func (u *TokenUsage) Add(other TokenUsage) {
	u.InputTokens += other.InputTokens
	u.CachedInputTokens += other.CachedInputTokens
	u.OutputTokens += other.OutputTokens
	u.ReasoningTokens += other.ReasoningTokens
	u.TotalTokens += other.TotalTokens
}

// Signal is a session-level event extracted alongside (and independent of)
// message normalization. It is consumed by the session state machine, not
// by message storage.
type Signal struct {
	Kind  SignalKind  `json:"kind"`
	Usage *TokenUsage `json:"usage,omitempty"`
}
