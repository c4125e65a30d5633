// Package matching scores a structured resume against a structured job and
// produces the final Verdict. This stage never fails: when no provider can
// score, a deterministic skill-overlap heuristic takes over.
package matching

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-screener/internal/prompts"
	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/schemas"
	"github.com/jonathan/resume-screener/internal/skills"
	"github.com/jonathan/resume-screener/internal/types"
)

// StageName identifies matching attempts in the attempt log.
const StageName = "match"

//go:embed scoring_schema.json
var scoringSchema string

// scoringResult is the provider's answer; the recommendation is never taken
// from it.
type scoringResult struct {
	MatchScore       float64  `json:"match_score"`
	Confidence       float64  `json:"confidence"`
	ReasoningSummary string   `json:"reasoning_summary"`
	MatchingSkills   []string `json:"matching_skills"`
	MissingSkills    []string `json:"missing_skills"`
}

// Match produces a Verdict for the candidate. Both structures may be nil;
// a nil structure on either side sends the stage straight to the heuristic.
func Match(ctx context.Context, gw *provider.Gateway, resume *types.StructuredResume, job *types.StructuredJob, pol Policy, sink provider.AttemptSink) *types.Verdict {
	if resume == nil || job == nil {
		return heuristicVerdict(resume, job, pol)
	}

	result := scoreWithProviders(ctx, gw, resume, job, sink)
	if result == nil {
		return heuristicVerdict(resume, job, pol)
	}

	requiresHuman := result.Confidence < pol.ConfidenceFloor || resume.Partial() || job.Partial()
	v := &types.Verdict{
		MatchScore:       result.MatchScore,
		RequiresHuman:    requiresHuman,
		Confidence:       result.Confidence,
		ReasoningSummary: result.ReasoningSummary,
		MatchingSkills:   skills.NormalizeSet(result.MatchingSkills),
		MissingSkills:    skills.NormalizeSet(result.MissingSkills),
	}
	v.ClampScores()
	v.Recommendation = Recommend(v.MatchScore, v.RequiresHuman, pol)
	return v
}

// Recommend applies the decision rule: a forced human review always yields
// manual review, regardless of score.
func Recommend(score float64, requiresHuman bool, pol Policy) string {
	if requiresHuman {
		return types.RecommendManualReview
	}
	switch {
	case score >= pol.ProceedThreshold:
		return types.RecommendProceed
	case score < pol.RejectThreshold:
		return types.RecommendReject
	default:
		return types.RecommendManualReview
	}
}

// UpstreamFailureVerdict is the terminal verdict when no resume signal at
// all reached the matcher.
func UpstreamFailureVerdict(reason string) *types.Verdict {
	return &types.Verdict{
		MatchScore:       0,
		Recommendation:   types.RecommendManualReview,
		RequiresHuman:    true,
		Confidence:       0,
		ReasoningSummary: fmt.Sprintf("Automated screening could not complete: %s. A human reviewer must assess this candidate.", reason),
	}
}

func scoreWithProviders(ctx context.Context, gw *provider.Gateway, resume *types.StructuredResume, job *types.StructuredJob, sink provider.AttemptSink) *scoringResult {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return nil
	}
	jobJSON, err := json.Marshal(job)
	if err != nil {
		return nil
	}

	prompt := prompts.Format(prompts.MustGet("matching.json", "score-candidate"), map[string]string{
		"ResumeAnalysis": string(resumeJSON),
		"JobAnalysis":    string(jobJSON),
	})

	payload := provider.Payload{
		Prompt: prompt,
		Validate: func(text string) error {
			return schemas.ValidateJSONString(scoringSchema, text)
		},
	}

	for _, spec := range gw.Ranked(provider.KindScoring) {
		text, err := gw.Invoke(ctx, StageName, spec, provider.KindScoring, payload, sink)
		if err != nil {
			continue
		}

		var result scoringResult
		if err := json.Unmarshal([]byte(text), &result); err != nil {
			continue
		}
		return &result
	}
	return nil
}

// heuristicVerdict scores by required-skill overlap. It always requires
// human review and carries a fixed low confidence.
func heuristicVerdict(resume *types.StructuredResume, job *types.StructuredJob, pol Policy) *types.Verdict {
	v := &types.Verdict{
		RequiresHuman: true,
		Confidence:    pol.HeuristicConfidence,
	}

	switch {
	case resume == nil && job == nil:
		v.MatchScore = 0
		v.Confidence = 0
		v.ReasoningSummary = "Neither the resume nor the job description could be analyzed. A human reviewer must assess this candidate."
	case job == nil || len(job.RequiredSkills) == 0:
		v.MatchScore = pol.NeutralOverlapScore
		v.ReasoningSummary = "No required skills were available to compare against; assigned a neutral score."
	case resume == nil || len(resume.Skills) == 0:
		v.MatchScore = 0
		v.MissingSkills = skills.NormalizeSet(job.RequiredSkills)
		v.ReasoningSummary = "No candidate skills were available to compare; all required skills are unverified."
	default:
		matching, missing := skills.Overlap(job.RequiredSkills, resume.Skills)
		total := len(matching) + len(missing)
		v.MatchScore = float64(len(matching)) / float64(total)
		v.MatchingSkills = matching
		v.MissingSkills = missing
		v.ReasoningSummary = fmt.Sprintf(
			"Skill overlap heuristic: candidate covers %d of %d required skills (%s).",
			len(matching), total, summarizeSkills(matching))
	}

	v.ClampScores()
	v.Recommendation = Recommend(v.MatchScore, v.RequiresHuman, pol)
	return v
}

func summarizeSkills(list []string) string {
	if len(list) == 0 {
		return "none matched"
	}
	const maxShown = 5
	if len(list) > maxShown {
		return strings.Join(list[:maxShown], ", ") + ", ..."
	}
	return strings.Join(list, ", ")
}
