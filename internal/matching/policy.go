package matching

// Policy holds the decision thresholds for the matching stage.
type Policy struct {
	// ProceedThreshold is the minimum score for "Proceed to interview".
	ProceedThreshold float64 `json:"proceed_threshold"`
	// RejectThreshold is the score below which the recommendation is
	// "Reject".
	RejectThreshold float64 `json:"reject_threshold"`
	// ConfidenceFloor forces human review when a provider's confidence
	// falls below it.
	ConfidenceFloor float64 `json:"confidence_floor"`
	// NeutralOverlapScore is the heuristic score when the job lists no
	// required skills.
	NeutralOverlapScore float64 `json:"neutral_overlap_score"`
	// HeuristicConfidence is the fixed confidence of heuristic verdicts.
	HeuristicConfidence float64 `json:"heuristic_confidence"`
}

// DefaultPolicy returns the standard thresholds.
func DefaultPolicy() Policy {
	return Policy{
		ProceedThreshold:    0.70,
		RejectThreshold:     0.40,
		ConfidenceFloor:     0.70,
		NeutralOverlapScore: 0.50,
		HeuristicConfidence: 0.30,
	}
}
