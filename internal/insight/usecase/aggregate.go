package usecase

import (
	"time"

	"cafesight-backend/internal/insight/domain"
)

// AggregateReviews computes window statistics over a café's reviews. The
// primary window is windowDays long; the 7/7 and 30/30 velocity buckets are
// always measured regardless of the primary window. Day boundaries are
// computed by truncating now to the start of its calendar day. Reviews
// without a numeric rating are excluded from every aggregate.
func AggregateReviews(reviews []domain.Review, now time.Time, windowDays int) domain.ReviewStats {
	dayStart := startOfDay(now)
	windowFrom := dayStart.AddDate(0, 0, -windowDays)
	cut7 := dayStart.AddDate(0, 0, -7)
	cut14 := dayStart.AddDate(0, 0, -14)
	cut30 := dayStart.AddDate(0, 0, -30)
	cut60 := dayStart.AddDate(0, 0, -60)

	var stats domain.ReviewStats
	var ratingSum, ratingCount int
	var sentimentSum float64
	var sentimentCount int

	for _, review := range reviews {
		if review.Rating == nil {
			continue
		}
		postedAt := review.PostedAt

		if !postedAt.Before(windowFrom) {
			stats.Total++
			ratingSum += *review.Rating
			ratingCount++
			if review.SentimentScore != nil {
				sentimentSum += *review.SentimentScore
				sentimentCount++
			}
		}

		if !postedAt.Before(cut7) {
			stats.Last7++
		} else if !postedAt.Before(cut14) {
			stats.Prev7++
		}

		if !postedAt.Before(cut30) {
			stats.Last30++
		} else if !postedAt.Before(cut60) {
			stats.Prev30++
		}
	}

	if ratingCount > 0 {
		avg := float64(ratingSum) / float64(ratingCount)
		stats.AvgRating = &avg
	}
	if sentimentCount > 0 {
		avg := sentimentSum / float64(sentimentCount)
		stats.AvgSentiment = &avg
	}

	stats.DeltaPct = velocityDelta(stats.Last7, stats.Prev7)
	stats.Delta30Pct = velocityDelta(stats.Last30, stats.Prev30)

	return stats
}

// velocityDelta is the percentage change between two adjacent buckets. A
// bucket appearing from zero is reported as exactly 100, not infinity; two
// empty buckets yield nil.
func velocityDelta(last, prev int) *float64 {
	switch {
	case prev > 0:
		delta := float64(last-prev) / float64(prev) * 100
		return &delta
	case last > 0:
		delta := 100.0
		return &delta
	default:
		return nil
	}
}

// FilterWindow returns the reviews inside the primary window, rated or not.
func FilterWindow(reviews []domain.Review, now time.Time, windowDays int) []domain.Review {
	windowFrom := startOfDay(now).AddDate(0, 0, -windowDays)
	var out []domain.Review
	for _, review := range reviews {
		if !review.PostedAt.Before(windowFrom) {
			out = append(out, review)
		}
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
