package provider

import "time"

// Outcome of a single provider attempt as recorded in the attempt log.
const (
	OutcomeSuccess     = "success"
	OutcomeSoftFailure = "soft_failure"
)

// Attempt is one entry in a pipeline's attempt log: which stage called which
// provider, what happened, and how long it took.
type Attempt struct {
	Stage    string        `json:"stage"`
	Provider string        `json:"provider"`
	Outcome  string        `json:"outcome"`
	Reason   Reason        `json:"reason,omitempty"`
	Detail   string        `json:"detail,omitempty"`
	Latency  time.Duration `json:"latency_ns"`
}

// AttemptSink receives attempt records as the gateway makes calls.
type AttemptSink interface {
	Record(Attempt)
}

// NopSink discards attempts. Used when no log is wanted.
type NopSink struct{}

// Record implements AttemptSink.
func (NopSink) Record(Attempt) {}
