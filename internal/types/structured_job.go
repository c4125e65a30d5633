package types

import "strings"

// Seniority levels a job posting may declare.
const (
	SeniorityJunior      = "junior"
	SeniorityMid         = "mid"
	SenioritySenior      = "senior"
	SeniorityLead        = "lead"
	SeniorityUnspecified = "unspecified"
)

// StructuredJob is the normalized representation of a job description.
type StructuredJob struct {
	RequiredSkills     []string `json:"required_skills"`
	PreferredSkills    []string `json:"preferred_skills"`
	MinYearsExperience *float64 `json:"min_years_experience"`
	Seniority          string   `json:"seniority"`
	RoleTitle          string   `json:"role_title"`
	Responsibilities   []string `json:"responsibilities"`
}

// Partial reports whether the structure lacks the fields the matcher
// depends on most.
func (j *StructuredJob) Partial() bool {
	return len(j.RequiredSkills) == 0
}

// NormalizeSeniority maps free-form seniority text onto the known levels.
// Unknown values collapse to "unspecified".
func NormalizeSeniority(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case SeniorityJunior, "entry", "entry-level", "intern":
		return SeniorityJunior
	case SeniorityMid, "mid-level", "intermediate":
		return SeniorityMid
	case SenioritySenior:
		return SenioritySenior
	case SeniorityLead, "staff", "principal":
		return SeniorityLead
	default:
		return SeniorityUnspecified
	}
}
