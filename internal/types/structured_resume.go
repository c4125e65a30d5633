package types

// ExperienceEntry is a single position extracted from a resume.
type ExperienceEntry struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Duration     string `json:"duration"`
}

// StructuredResume is the normalized representation of a candidate resume.
// Fields that a provider could not determine are left nil/empty rather than
// guessed; recognized fields are always serialized so absence is explicit.
type StructuredResume struct {
	Skills               []string          `json:"skills"`
	Experience           []ExperienceEntry `json:"experience"`
	Education            []string          `json:"education"`
	TotalYearsExperience *float64          `json:"total_years_experience"`
	Summary              string            `json:"summary"`
}

// Partial reports whether the structure is missing enough signal that a
// downstream score should not be trusted on its own.
func (r *StructuredResume) Partial() bool {
	return len(r.Skills) == 0 || len(r.Experience) == 0
}
