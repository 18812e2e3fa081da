package usecase

import (
	"testing"
	"time"

	"cafesight-backend/internal/insight/domain"
)

var testNow = time.Date(2026, 8, 31, 15, 30, 0, 0, time.UTC)

func ratedReview(rating int, postedAt time.Time) domain.Review {
	return domain.Review{Rating: &rating, PostedAt: postedAt}
}

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func TestAvgRatingIsMeanOfRatedReviews(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		ratedReview(5, daysAgo(1)),
		ratedReview(5, daysAgo(2)),
		ratedReview(5, daysAgo(3)),
		ratedReview(1, daysAgo(4)),
	}

	stats := AggregateReviews(reviews, testNow, 7)

	if stats.Total != 4 {
		t.Fatalf("expected total 4, got %d", stats.Total)
	}
	if stats.AvgRating == nil || *stats.AvgRating != 4.0 {
		t.Fatalf("expected avg rating 4.0, got %v", stats.AvgRating)
	}
}

func TestReviewsWithoutRatingAreExcludedEverywhere(t *testing.T) {
	t.Parallel()

	score := 0.9
	reviews := []domain.Review{
		{PostedAt: daysAgo(1), SentimentScore: &score},
		{PostedAt: daysAgo(2), Text: "unrated"},
	}

	stats := AggregateReviews(reviews, testNow, 7)

	if stats.Total != 0 {
		t.Fatalf("unrated reviews must not count, got total %d", stats.Total)
	}
	if stats.AvgRating != nil {
		t.Fatalf("expected nil avg rating, got %v", *stats.AvgRating)
	}
	if stats.AvgSentiment != nil {
		t.Fatalf("expected nil avg sentiment, got %v", *stats.AvgSentiment)
	}
	if stats.Last7 != 0 {
		t.Fatalf("unrated reviews must not count toward velocity, got %d", stats.Last7)
	}
}

func TestAvgSentimentOverScoredSubset(t *testing.T) {
	t.Parallel()

	s1, s2 := 0.5, -0.1
	r1 := ratedReview(5, daysAgo(1))
	r1.SentimentScore = &s1
	r2 := ratedReview(4, daysAgo(2))
	r2.SentimentScore = &s2
	r3 := ratedReview(3, daysAgo(3)) // no score

	stats := AggregateReviews([]domain.Review{r1, r2, r3}, testNow, 7)

	if stats.AvgSentiment == nil {
		t.Fatal("expected avg sentiment")
	}
	if got := *stats.AvgSentiment; got < 0.199 || got > 0.201 {
		t.Fatalf("expected avg sentiment 0.2, got %v", got)
	}
}

func TestVelocityDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		last7 int
		prev7 int
		want  *float64
	}{
		{"both empty", 0, 0, nil},
		{"new activity", 3, 0, floatPtr(100)},
		{"drop", 7, 10, floatPtr(-30)},
		{"flat", 5, 5, floatPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []domain.Review
			for i := 0; i < tt.last7; i++ {
				reviews = append(reviews, ratedReview(4, daysAgo(2)))
			}
			for i := 0; i < tt.prev7; i++ {
				reviews = append(reviews, ratedReview(4, daysAgo(10)))
			}

			stats := AggregateReviews(reviews, testNow, 14)

			if tt.want == nil {
				if stats.DeltaPct != nil {
					t.Fatalf("expected nil delta, got %v", *stats.DeltaPct)
				}
				return
			}
			if stats.DeltaPct == nil {
				t.Fatal("expected a delta")
			}
			if *stats.DeltaPct != *tt.want {
				t.Fatalf("expected delta %v, got %v", *tt.want, *stats.DeltaPct)
			}
		})
	}
}

func TestDayLevelBoundaries(t *testing.T) {
	t.Parallel()

	dayStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	onBoundary := ratedReview(4, dayStart.AddDate(0, 0, -7))                    // first instant of the last-7 bucket
	justBefore := ratedReview(4, dayStart.AddDate(0, 0, -7).Add(-time.Second)) // last instant of the prev-7 bucket

	stats := AggregateReviews([]domain.Review{onBoundary, justBefore}, testNow, 14)

	if stats.Last7 != 1 {
		t.Fatalf("expected 1 review in last7, got %d", stats.Last7)
	}
	if stats.Prev7 != 1 {
		t.Fatalf("expected 1 review in prev7, got %d", stats.Prev7)
	}
}

func TestThirtyDayBuckets(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		ratedReview(4, daysAgo(5)),
		ratedReview(4, daysAgo(25)),
		ratedReview(4, daysAgo(45)),
	}

	stats := AggregateReviews(reviews, testNow, 60)

	if stats.Last30 != 2 {
		t.Fatalf("expected last30 = 2, got %d", stats.Last30)
	}
	if stats.Prev30 != 1 {
		t.Fatalf("expected prev30 = 1, got %d", stats.Prev30)
	}
	if stats.Delta30Pct == nil || *stats.Delta30Pct != 100 {
		t.Fatalf("expected 30-day delta 100, got %v", stats.Delta30Pct)
	}
}

func TestPrimaryWindowExcludesOlderReviews(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		ratedReview(5, daysAgo(3)),
		ratedReview(1, daysAgo(20)), // outside the 7-day window
	}

	stats := AggregateReviews(reviews, testNow, 7)

	if stats.Total != 1 {
		t.Fatalf("expected total 1, got %d", stats.Total)
	}
	if stats.AvgRating == nil || *stats.AvgRating != 5.0 {
		t.Fatalf("expected avg 5.0, got %v", stats.AvgRating)
	}
}

func floatPtr(f float64) *float64 {
	return &f
}
