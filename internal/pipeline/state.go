// Package pipeline orchestrates the screening stages: extract, structure,
// match. A run always resolves to a Verdict; stage failures degrade to
// absent data instead of aborting.
package pipeline

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-screener/internal/provider"
)

// Phase names, in order of progression.
const (
	PhaseStart       = "start"
	PhaseExtracting  = "extracting"
	PhaseStructuring = "structuring"
	PhaseMatching    = "matching"
	PhaseDone        = "done"
)

// State tracks one run's phase and attempt log. It implements
// provider.AttemptSink; once the run finishes the log is frozen and late
// records are dropped.
type State struct {
	ID      string
	Started time.Time

	mu       sync.Mutex
	phase    string
	attempts []provider.Attempt
	finished time.Time
	terminal bool
}

// NewState creates a run state with a fresh ID.
func NewState() *State {
	return &State{
		ID:      uuid.NewString(),
		Started: time.Now(),
		phase:   PhaseStart,
	}
}

// Record implements provider.AttemptSink.
func (s *State) Record(a provider.Attempt) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.attempts = append(s.attempts, a)
}

// Attempts returns a copy of the attempt log.
func (s *State) Attempts() []provider.Attempt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]provider.Attempt, len(s.attempts))
	copy(out, s.attempts)
	return out
}

// Phase returns the current phase.
func (s *State) Phase() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

func (s *State) setPhase(phase string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.phase = phase
}

// finish moves the state to done and freezes the attempt log. Idempotent.
func (s *State) finish() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.terminal {
		return
	}
	s.phase = PhaseDone
	s.finished = time.Now()
	s.terminal = true
}

// Finished returns when the run completed, zero if still running.
func (s *State) Finished() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}
