package usecase

import (
	"testing"
	"time"

	"cafesight-backend/internal/insight/domain"
)

func snapshot(rating float64, totalReviews int, date time.Time) domain.CompetitorSnapshot {
	return domain.CompetitorSnapshot{Rating: &rating, TotalReviews: &totalReviews, SnapshotDate: date}
}

func TestBenchmarkUsesOnlyLatestBatch(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	lastWeek := today.AddDate(0, 0, -7)

	snaps := []domain.CompetitorSnapshot{
		snapshot(4.0, 100, today),
		snapshot(4.4, 200, today),
		snapshot(1.0, 5, lastWeek), // historical, must be ignored
	}

	bench := BenchmarkCompetitors(snaps)

	if bench.Count != 2 {
		t.Fatalf("expected 2 snapshots in latest batch, got %d", bench.Count)
	}
	if bench.SnapshotAt == nil || !bench.SnapshotAt.Equal(today) {
		t.Fatalf("expected snapshot date %v, got %v", today, bench.SnapshotAt)
	}
	if bench.AvgRating == nil || *bench.AvgRating != 4.2 {
		t.Fatalf("expected avg rating 4.2, got %v", bench.AvgRating)
	}
	if bench.AvgReviewCount == nil || *bench.AvgReviewCount != 150 {
		t.Fatalf("expected avg review count 150, got %v", bench.AvgReviewCount)
	}
}

func TestBenchmarkEmptyYieldsZeroValue(t *testing.T) {
	t.Parallel()

	bench := BenchmarkCompetitors(nil)

	if bench.Count != 0 || bench.SnapshotAt != nil || bench.AvgRating != nil || bench.AvgReviewCount != nil {
		t.Fatalf("expected zero benchmark, got %+v", bench)
	}
}

func TestBenchmarkSkipsNilMetrics(t *testing.T) {
	t.Parallel()

	today := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	rating := 4.5
	snaps := []domain.CompetitorSnapshot{
		{Rating: &rating, SnapshotDate: today},
		{SnapshotDate: today}, // no rating, no review count
	}

	bench := BenchmarkCompetitors(snaps)

	if bench.Count != 2 {
		t.Fatalf("expected count 2, got %d", bench.Count)
	}
	if bench.AvgRating == nil || *bench.AvgRating != 4.5 {
		t.Fatalf("expected avg rating over the rated subset, got %v", bench.AvgRating)
	}
	if bench.AvgReviewCount != nil {
		t.Fatalf("expected nil avg review count, got %v", *bench.AvgReviewCount)
	}
}
