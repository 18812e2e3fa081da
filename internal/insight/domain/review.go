package domain

import "time"

// SentimentLabel is the coarse label assigned by the external sentiment scorer.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "positive"
	SentimentNeutral  SentimentLabel = "neutral"
	SentimentNegative SentimentLabel = "negative"
)

// Review is one customer review synced from the review platform. Rows are
// written by the external sync process and read-only here. A review without a
// numeric rating is excluded from every aggregate.
type Review struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	CafeID         string         `json:"cafe_id" gorm:"index:idx_reviews_cafe_posted;not null"`
	Rating         *int           `json:"rating,omitempty"`
	Text           string         `json:"text,omitempty" gorm:"type:text"`
	PostedAt       time.Time      `json:"posted_at" gorm:"index:idx_reviews_cafe_posted"`
	SentimentScore *float64       `json:"sentiment_score,omitempty"`
	SentimentLabel SentimentLabel `json:"sentiment_label,omitempty"`
	// SentimentTopics holds the scorer output as raw JSON: either a plain
	// array of strings, an object with a "topics" array, or an arbitrary
	// object whose keys are the topics.
	SentimentTopics string    `json:"sentiment_topics,omitempty" gorm:"type:jsonb"`
	CreatedAt       time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}
