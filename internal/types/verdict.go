// Package types provides type definitions for structured data used throughout the resume-screener system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Recommendation values a Verdict may carry. The recommendation is always
// computed by the orchestrator from the score and the requires_human flag,
// never taken from a provider response.
const (
	RecommendProceed      = "Proceed to interview"
	RecommendReject       = "Reject"
	RecommendManualReview = "Needs manual review"
)

// Verdict is the final screening result returned to the caller.
type Verdict struct {
	MatchScore       float64  `json:"match_score"`
	Recommendation   string   `json:"recommendation"`
	RequiresHuman    bool     `json:"requires_human"`
	Confidence       float64  `json:"confidence"`
	ReasoningSummary string   `json:"reasoning_summary"`
	MatchingSkills   []string `json:"matching_skills,omitempty"`
	MissingSkills    []string `json:"missing_skills,omitempty"`
}

// ClampScores forces match_score and confidence into [0, 1].
// Provider responses occasionally return 0-100 style scores or small
// negative rounding artifacts; the contract is a unit interval.
func (v *Verdict) ClampScores() {
	v.MatchScore = clampUnit(v.MatchScore)
	v.Confidence = clampUnit(v.Confidence)
}

func clampUnit(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
