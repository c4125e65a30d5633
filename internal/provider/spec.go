// Package provider implements the ranked provider gateway: a registry of
// model backends ordered by preference, a per-provider quota book, and the
// soft-failure taxonomy the pipeline stages degrade through.
package provider

// Kind identifies a capability a provider may offer. Stages request a kind
// and the gateway only yields providers that support it.
type Kind string

const (
	// KindMultimodal reads document bytes (PDF, DOCX, images) directly.
	KindMultimodal Kind = "multimodal-extraction"
	// KindStructured produces schema-constrained JSON from text.
	KindStructured Kind = "structured-extraction"
	// KindScoring produces a candidate-vs-job score.
	KindScoring Kind = "scoring"
)

// Spec describes one registered provider model: its identity, rank in the
// fallback order (lower is tried first), and the kinds it supports.
type Spec struct {
	ID             string
	Model          string
	Rank           int
	Kinds          []Kind
	CallsPerMinute int
}

// Supports reports whether the provider offers the given kind.
func (s Spec) Supports(kind Kind) bool {
	for _, k := range s.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
