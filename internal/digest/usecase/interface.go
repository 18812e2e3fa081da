package usecase

import "time"

// Outcome is the per-café result of one digest invocation.
type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Skip reason codes recorded for observability.
const (
	ReasonDisabled      = "disabled"
	ReasonAlreadySent   = "already_sent"
	ReasonMissingEmail  = "missing_email"
	ReasonRecipientSent = "recipient_sent"
)

// CafeResult reports what happened to one café in a batch run.
type CafeResult struct {
	CafeID  string  `json:"cafe_id"`
	Outcome Outcome `json:"outcome"`
	Reason  string  `json:"reason,omitempty"`
	Error   string  `json:"error,omitempty"`
}

// DigestUsecase runs the weekly digest batch. Re-invoking for an
// already-sent (café, period) is a no-op; one café's failure never aborts
// the batch.
type DigestUsecase interface {
	RunWeekly(now time.Time) []CafeResult
}
