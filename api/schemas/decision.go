package schemas

// -- Decision Schemas --

// DecisionSource records how a decision was reached.
type DecisionSource string

const (
	// SourceCorrective marks a lifecycle correction issued by the state machine.
	SourceCorrective DecisionSource = "corrective"
	// SourceModel marks an index extracted from the model's reply.
	SourceModel DecisionSource = "model"
	// SourceForcedFallback marks a random pick because the reply held no usable index.
	SourceForcedFallback DecisionSource = "forced_fallback"
	// SourceFailureFallback marks a random pick because the inference call failed.
	SourceFailureFallback DecisionSource = "failure_fallback"
	// SourceNoActions marks the navigate-back returned when a step has no actions.
	SourceNoActions DecisionSource = "no_actions"
)

// IsRandom reports whether the decision was made by a random fallback.
func (s DecisionSource) IsRandom() bool {
	return s == SourceForcedFallback || s == SourceFailureFallback
}

// DecisionResult is the single action chosen for one step.
type DecisionResult struct {
	Step   int            `json:"step"`
	Action Action         `json:"action"`
	Index  int            `json:"index"` // -1 when the action is not a member of the step's action set.
	Total  int            `json:"total"`
	Source DecisionSource `json:"source"`
	// Description is the rendered action phrase, for logs and the executor.
	Description string      `json:"description,omitempty"`
	Failure     FailureKind `json:"failure,omitempty"`
	Raw         string      `json:"raw,omitempty"`
}

// EngineStats holds the counters a decision engine accumulates over one
// exploration session.
type EngineStats struct {
	ConsecutiveBackground int `json:"consecutive_background"`
	Restarts              int `json:"restarts"`
	SuccessfulQueries     int `json:"successful_queries"`
	FailedQueries         int `json:"failed_queries"`
	RandomFallbacks       int `json:"random_fallbacks"`
	ForcedFallbacks       int `json:"forced_fallbacks"`
	CorrectiveActions     int `json:"corrective_actions"`
}

// Summary is the shutdown report of one session.
type Summary struct {
	SessionID    string  `json:"session_id"`
	TotalQueries int     `json:"total_queries"`
	Successful   int     `json:"successful"`
	SuccessRate  float64 `json:"success_rate"` // Percentage in [0, 100].
	Failed       int     `json:"failed"`
	Fallbacks    int     `json:"fallbacks"`
}
