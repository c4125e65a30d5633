package matching

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-screener/internal/provider"
	"github.com/jonathan/resume-screener/internal/types"
)

type scriptedBackend struct {
	text string
	err  error
}

func (s *scriptedBackend) Generate(_ context.Context, _ string, _ provider.Kind, _ provider.Payload) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.text, nil
}

func (s *scriptedBackend) Close() error { return nil }

func scoringGateway(backend provider.Backend) *provider.Gateway {
	gw := provider.NewGateway()
	gw.Register(provider.Spec{ID: "m", Model: "m", Kinds: []provider.Kind{provider.KindScoring}}, backend)
	return gw
}

func fullResume() *types.StructuredResume {
	years := 6.0
	return &types.StructuredResume{
		Skills:               []string{"go", "sql", "kubernetes"},
		Experience:           []types.ExperienceEntry{{Title: "Engineer", Organization: "Acme", Duration: "2018-2024"}},
		Education:            []string{"BSc"},
		TotalYearsExperience: &years,
		Summary:              "Backend engineer.",
	}
}

func fullJob() *types.StructuredJob {
	return &types.StructuredJob{
		RequiredSkills:  []string{"go", "sql", "terraform"},
		PreferredSkills: []string{"kubernetes"},
		Seniority:       types.SenioritySenior,
		RoleTitle:       "Backend Engineer",
	}
}

func TestRecommendRule(t *testing.T) {
	pol := DefaultPolicy()
	tests := []struct {
		name          string
		score         float64
		requiresHuman bool
		want          string
	}{
		{"high score proceeds", 0.85, false, types.RecommendProceed},
		{"boundary proceeds", 0.70, false, types.RecommendProceed},
		{"low score rejects", 0.30, false, types.RecommendReject},
		{"just below reject boundary", 0.399, false, types.RecommendReject},
		{"reject boundary is manual", 0.40, false, types.RecommendManualReview},
		{"middle is manual", 0.55, false, types.RecommendManualReview},
		{"human flag overrides high score", 0.95, true, types.RecommendManualReview},
		{"human flag overrides low score", 0.05, true, types.RecommendManualReview},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recommend(tt.score, tt.requiresHuman, pol))
		})
	}
}

func TestMatchProviderSuccess(t *testing.T) {
	raw := `{
		"match_score": 0.82,
		"confidence": 0.9,
		"reasoning_summary": "Strong overlap on core skills.",
		"matching_skills": ["Go", "SQL"],
		"missing_skills": ["Terraform"]
	}`
	gw := scoringGateway(&scriptedBackend{text: raw})

	v := Match(context.Background(), gw, fullResume(), fullJob(), DefaultPolicy(), nil)
	require.NotNil(t, v)
	assert.Equal(t, 0.82, v.MatchScore)
	assert.False(t, v.RequiresHuman)
	assert.Equal(t, types.RecommendProceed, v.Recommendation)
	assert.Equal(t, []string{"go", "sql"}, v.MatchingSkills)
	assert.Equal(t, []string{"terraform"}, v.MissingSkills)
}

func TestMatchLowConfidenceForcesHumanReview(t *testing.T) {
	raw := `{
		"match_score": 0.9,
		"confidence": 0.5,
		"reasoning_summary": "Unsure.",
		"matching_skills": [],
		"missing_skills": []
	}`
	gw := scoringGateway(&scriptedBackend{text: raw})

	v := Match(context.Background(), gw, fullResume(), fullJob(), DefaultPolicy(), nil)
	assert.True(t, v.RequiresHuman)
	assert.Equal(t, types.RecommendManualReview, v.Recommendation)
}

func TestMatchPartialResumeForcesHumanReview(t *testing.T) {
	raw := `{
		"match_score": 0.9,
		"confidence": 0.95,
		"reasoning_summary": "Looks great.",
		"matching_skills": [],
		"missing_skills": []
	}`
	gw := scoringGateway(&scriptedBackend{text: raw})

	partial := &types.StructuredResume{Skills: []string{"go"}}
	v := Match(context.Background(), gw, partial, fullJob(), DefaultPolicy(), nil)
	assert.True(t, v.RequiresHuman)
	assert.Equal(t, types.RecommendManualReview, v.Recommendation)
}

func TestMatchOutOfRangeScoresClamped(t *testing.T) {
	// Schema rejects out-of-range values, so a provider sneaking past would
	// need a range-free schema; the verdict still clamps defensively via a
	// direct heuristic path here.
	v := heuristicVerdict(fullResume(), fullJob(), DefaultPolicy())
	assert.GreaterOrEqual(t, v.MatchScore, 0.0)
	assert.LessOrEqual(t, v.MatchScore, 1.0)
}

func TestMatchFallsBackToHeuristicWhenProvidersFail(t *testing.T) {
	gw := scoringGateway(&scriptedBackend{err: &provider.GatewayError{Provider: "m", Reason: provider.ReasonUnavailable}})
	pol := DefaultPolicy()

	v := Match(context.Background(), gw, fullResume(), fullJob(), pol, nil)
	require.NotNil(t, v)

	// 2 of 3 required skills present.
	assert.InDelta(t, 0.667, v.MatchScore, 0.001)
	assert.True(t, v.RequiresHuman)
	assert.Equal(t, pol.HeuristicConfidence, v.Confidence)
	assert.Equal(t, types.RecommendManualReview, v.Recommendation)
	assert.Equal(t, []string{"go", "sql"}, v.MatchingSkills)
	assert.Equal(t, []string{"terraform"}, v.MissingSkills)
}

func TestHeuristicNeutralScoreWithoutRequiredSkills(t *testing.T) {
	pol := DefaultPolicy()
	job := &types.StructuredJob{RoleTitle: "Engineer"}

	v := Match(context.Background(), provider.NewGateway(), fullResume(), job, pol, nil)
	assert.Equal(t, pol.NeutralOverlapScore, v.MatchScore)
	assert.True(t, v.RequiresHuman)
}

func TestMatchNilJobUsesHeuristic(t *testing.T) {
	pol := DefaultPolicy()
	v := Match(context.Background(), provider.NewGateway(), fullResume(), nil, pol, nil)
	require.NotNil(t, v)
	assert.Equal(t, pol.NeutralOverlapScore, v.MatchScore)
	assert.True(t, v.RequiresHuman)
}

func TestMatchNilResumeScoresZero(t *testing.T) {
	v := Match(context.Background(), provider.NewGateway(), nil, fullJob(), DefaultPolicy(), nil)
	assert.Zero(t, v.MatchScore)
	assert.True(t, v.RequiresHuman)
	assert.Equal(t, []string{"go", "sql", "terraform"}, v.MissingSkills)
}

func TestUpstreamFailureVerdict(t *testing.T) {
	v := UpstreamFailureVerdict("document could not be read")
	assert.Zero(t, v.MatchScore)
	assert.Zero(t, v.Confidence)
	assert.True(t, v.RequiresHuman)
	assert.Equal(t, types.RecommendManualReview, v.Recommendation)
	assert.Contains(t, v.ReasoningSummary, "document could not be read")
}
