package domain

// Severity is the coarse urgency/tone tag attached to a candidate.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarn    Severity = "warn"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// SeverityWeight drives ranking: severity dominates the score, magnitude and
// volume only break ties within a severity band.
func SeverityWeight(s Severity) int {
	switch s {
	case SeverityError:
		return 4
	case SeverityWarn:
		return 3
	case SeveritySuccess:
		return 2
	default:
		return 1
	}
}

// CandidateType tags a candidate with the rule that produced it.
type CandidateType string

const (
	TypeNoReviews               CandidateType = "no_reviews"
	TypeReviewsSummary          CandidateType = "reviews_summary"
	TypeRecurringComplaint      CandidateType = "recurring_complaint"
	TypeReviewVelocityDrop      CandidateType = "review_velocity_drop"
	TypeReviewVelocitySpike     CandidateType = "review_velocity_spike"
	TypeRatingGap               CandidateType = "rating_gap"
	TypeRatingSentimentMismatch CandidateType = "rating_sentiment_mismatch"
	TypeLowReviewVolume         CandidateType = "low_review_volume"
	TypeBenchmarkReady          CandidateType = "competitor_benchmark_ready"
)

// CandidateKind groups candidates for dashboard rendering.
type CandidateKind string

const (
	KindSignal      CandidateKind = "signal"
	KindOpportunity CandidateKind = "opportunity"
)

// Candidate is a derived, scored observation about a café's review or
// competitor data. The overview path returns candidates as-is; the digest
// path persists the top-ranked subset.
type Candidate struct {
	ID          string        `json:"id"`
	Type        CandidateType `json:"type"`
	Kind        CandidateKind `json:"kind"`
	Title       string        `json:"title"`
	Summary     string        `json:"summary"`
	Severity    Severity      `json:"severity"`
	MetricLabel string        `json:"metric_label,omitempty"`
	MetricValue string        `json:"metric_value,omitempty"`
	Actions     []string      `json:"actions"`
	Score       float64       `json:"score"`
	Magnitude   float64       `json:"-"`
	Volume      int           `json:"-"`
}

// Thresholds parameterizes the rule table per consumer. The digest and
// overview paths historically diverged; both configurations are kept as
// explicit named values rather than merged.
type Thresholds struct {
	// MinReviewsForThemes is the minimum window total before praise and
	// complaint theme rules may fire.
	MinReviewsForThemes int
	// LowVolumeCutoff is the exclusive upper bound for the low-volume rule.
	LowVolumeCutoff int
	// NoReviewsSeverity is the severity of the no-reviews rule.
	NoReviewsSeverity Severity
	// LowVolumeSeverity is the severity of the low-volume rule.
	LowVolumeSeverity Severity
}

var (
	DigestThresholds   = Thresholds{MinReviewsForThemes: 3, LowVolumeCutoff: 10, NoReviewsSeverity: SeverityWarn, LowVolumeSeverity: SeverityWarn}
	OverviewThresholds = Thresholds{MinReviewsForThemes: 1, LowVolumeCutoff: 5, NoReviewsSeverity: SeverityInfo, LowVolumeSeverity: SeverityInfo}
)

// ReviewStats is the output of the time-window aggregator. Averages are nil
// when no qualifying review exists; delta percentages are nil when both
// buckets are empty.
type ReviewStats struct {
	Total        int      `json:"total"`
	AvgRating    *float64 `json:"avg_rating,omitempty"`
	AvgSentiment *float64 `json:"avg_sentiment,omitempty"`
	Last7        int      `json:"last_7"`
	Prev7        int      `json:"prev_7"`
	DeltaPct     *float64 `json:"delta_pct,omitempty"`
	Last30       int      `json:"last_30"`
	Prev30       int      `json:"prev_30"`
	Delta30Pct   *float64 `json:"delta_30_pct,omitempty"`
}

// PhraseCount is one entry in a theme frequency table.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// Themes holds the praise and complaint frequency tables, each ordered by
// count descending and, at equal counts, by first-seen order.
type Themes struct {
	Praise    []PhraseCount `json:"praise"`
	Complaint []PhraseCount `json:"complaint"`
}

// TopPraise returns the highest-count praise phrase, or nil.
func (t Themes) TopPraise() *PhraseCount {
	if len(t.Praise) == 0 {
		return nil
	}
	return &t.Praise[0]
}

// TopComplaint returns the highest-count complaint phrase, or nil.
func (t Themes) TopComplaint() *PhraseCount {
	if len(t.Complaint) == 0 {
		return nil
	}
	return &t.Complaint[0]
}
