package models

// Outcome is the user's answer to a presented review.
type Outcome int

const (
	OutcomeIncorrect Outcome = iota
	OutcomeCorrect
)

func (o Outcome) String() string {
	if o == OutcomeCorrect {
		return "correct"
	}
	return "incorrect"
}

// DecisionResult is what the gate tells the launch interceptor to do.
type DecisionResult int

const (
	ResultAllow DecisionResult = iota
	ResultPresentReview
	ResultDeny
)

func (r DecisionResult) String() string {
	switch r {
	case ResultAllow:
		return "allow"
	case ResultPresentReview:
		return "present_review"
	case ResultDeny:
		return "deny"
	}
	return "unknown"
}

// DecisionReason distinguishes otherwise identical results for logging and
// metrics; the escape valve in particular must stay auditable.
type DecisionReason int

const (
	ReasonNotBlocked DecisionReason = iota
	ReasonSessionActive
	ReasonEscapeValve
	ReasonReviewRequired
	ReasonReviewCompleted
	ReasonAbandoned
)

func (r DecisionReason) String() string {
	switch r {
	case ReasonNotBlocked:
		return "not_blocked"
	case ReasonSessionActive:
		return "session_active"
	case ReasonEscapeValve:
		return "escape_valve"
	case ReasonReviewRequired:
		return "review_required"
	case ReasonReviewCompleted:
		return "review_completed"
	case ReasonAbandoned:
		return "abandoned"
	}
	return "unknown"
}

// Decision is the gate's answer to a single event. Item is set only when the
// result is ResultPresentReview.
type Decision struct {
	Result DecisionResult `json:"result"`
	Reason DecisionReason `json:"reason"`
	Item   *Card          `json:"item,omitempty"`
}
