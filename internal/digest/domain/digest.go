package domain

import "time"

// RunStatus is the digest run state machine: pending → sent | failed. A
// failed run may be retried by re-running the job for the same period.
type RunStatus string

const (
	RunStatusPending RunStatus = "pending"
	RunStatusSent    RunStatus = "sent"
	RunStatusFailed  RunStatus = "failed"
)

// RecipientStatus tracks delivery to one owner: queued → sent | failed.
type RecipientStatus string

const (
	RecipientStatusQueued RecipientStatus = "queued"
	RecipientStatusSent   RecipientStatus = "sent"
	RecipientStatusFailed RecipientStatus = "failed"
)

// DigestRun is one weekly computation for one café and one 7-day period.
// The unique index on (cafe_id, period_start, period_end) enforces the
// at-most-one-run-per-period invariant at the database level.
type DigestRun struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	CafeID      string     `json:"cafe_id" gorm:"uniqueIndex:idx_runs_cafe_period;not null"`
	PeriodStart time.Time  `json:"period_start" gorm:"uniqueIndex:idx_runs_cafe_period"`
	PeriodEnd   time.Time  `json:"period_end" gorm:"uniqueIndex:idx_runs_cafe_period"`
	PeriodLabel string     `json:"period_label"`
	Status      RunStatus  `json:"status" gorm:"default:pending"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CTAURL      string     `json:"cta_url,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (DigestRun) TableName() string {
	return "digest_runs"
}

// DigestRecipient is one (run × owner) delivery record. A recipient already
// in sent status is never re-sent; the orchestrator treats it as a no-op.
type DigestRecipient struct {
	ID          string          `json:"id" gorm:"primaryKey"`
	RunID       string          `json:"run_id" gorm:"uniqueIndex:idx_recipients_run_user;not null"`
	UserID      string          `json:"user_id" gorm:"uniqueIndex:idx_recipients_run_user;not null"`
	Email       string          `json:"email" gorm:"not null"`
	Status      RecipientStatus `json:"status" gorm:"default:queued"`
	SentAt      *time.Time      `json:"sent_at,omitempty"`
	ErrorDetail string          `json:"error_detail,omitempty"`
	MessageID   string          `json:"message_id,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (DigestRecipient) TableName() string {
	return "digest_recipients"
}

// DigestInsight is a persisted copy of a ranked candidate, linked to a run.
// IDs are deterministic per (run, type) so re-persisting after a retry
// upserts instead of duplicating rows.
type DigestInsight struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	RunID       string     `json:"run_id" gorm:"index;not null"`
	Type        string     `json:"type" gorm:"not null"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary" gorm:"type:text"`
	Severity    string     `json:"severity"`
	Score       float64    `json:"score"`
	Rank        int        `json:"rank"`
	DeepLink    string     `json:"deep_link"`
	PeriodStart time.Time  `json:"period_start"`
	PeriodEnd   time.Time  `json:"period_end"`
	ClickedAt   *time.Time `json:"clicked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func (DigestInsight) TableName() string {
	return "digest_insights"
}
