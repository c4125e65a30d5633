package pipeline

import (
	"context"
	"log"
	"time"

	"github.com/jonathan/resume-screener/internal/extract"
	"github.com/jonathan/resume-screener/internal/matching"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/structuring"
	"github.com/jonathan/resume-screener/internal/types"
)

// Request describes one screening run. Exactly one of File or ResumeText
// should be set; when both are present the pre-extracted text wins and the
// extraction stage is skipped.
type Request struct {
	File       *extract.FileRef
	ResumeText string
	JobText    string
	Timeout    time.Duration
}

// Result is the complete outcome of a run. Verdict is always non-nil.
type Result struct {
	ID         string                   `json:"id"`
	Verdict    *types.Verdict           `json:"verdict"`
	Resume     *types.StructuredResume  `json:"resume,omitempty"`
	Job        *types.StructuredJob     `json:"job,omitempty"`
	ResumeText string                   `json:"-"`
	FileName   string                   `json:"file_name,omitempty"`
	Attempts   []provider.Attempt       `json:"attempts"`
	Started    time.Time                `json:"started"`
	Finished   time.Time                `json:"finished"`
}

// Runner executes screening pipelines against a provider gateway.
type Runner struct {
	gw     *provider.Gateway
	policy matching.Policy
}

// NewRunner creates a pipeline runner.
func NewRunner(gw *provider.Gateway, policy matching.Policy) *Runner {
	return &Runner{gw: gw, policy: policy}
}

// Run executes the full pipeline. It never returns an error: every failure
// mode resolves to a Verdict, worst case the zero-score manual-review one.
// Input validation (file type, size, job description length) is the
// caller's concern and happens before a run starts.
func (r *Runner) Run(ctx context.Context, req Request) *Result {
	state := NewState()
	result := &Result{ID: state.ID, Started: state.Started}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	if req.File != nil {
		result.FileName = req.File.Name
	}

	// Extraction. Pre-extracted text skips the stage entirely.
	state.setPhase(PhaseExtracting)
	resumeText := req.ResumeText
	if resumeText == "" && req.File != nil {
		text, err := extract.Extract(ctx, r.gw, req.File, state)
		if err != nil {
			log.Printf("pipeline %s: extraction failed: %v", state.ID, err)
		} else {
			resumeText = text
		}
	}
	result.ResumeText = resumeText

	// No text at all: nothing downstream can run.
	if resumeText == "" {
		result.Verdict = matching.UpstreamFailureVerdict("the resume document could not be read by any provider or local parser")
		state.finish()
		result.Attempts = state.Attempts()
		result.Finished = state.Finished()
		return result
	}

	// Structuring. The two sides fail independently; a dead resume
	// structuring does not stop the job side.
	state.setPhase(PhaseStructuring)
	result.Resume = r.structureResume(ctx, state, resumeText)
	result.Job = r.structureJob(ctx, state, req.JobText)

	// Matching never fails.
	state.setPhase(PhaseMatching)
	result.Verdict = matching.Match(ctx, r.gw, result.Resume, result.Job, r.policy, state)

	state.finish()
	result.Attempts = state.Attempts()
	result.Finished = state.Finished()
	return result
}

func (r *Runner) structureResume(ctx context.Context, state *State, text string) *types.StructuredResume {
	resume, err := structuring.StructureResume(ctx, r.gw, text, state)
	if err != nil {
		log.Printf("pipeline %s: resume structuring failed: %v", state.ID, err)
		return nil
	}
	return resume
}

func (r *Runner) structureJob(ctx context.Context, state *State, text string) *types.StructuredJob {
	if text == "" {
		return nil
	}
	job, err := structuring.StructureJob(ctx, r.gw, text, state)
	if err != nil {
		log.Printf("pipeline %s: job structuring failed: %v", state.ID, err)
		return nil
	}
	return job
}
