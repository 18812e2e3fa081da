package usecase

import (
	"cafesight-backend/internal/insight/domain"
)

// BenchmarkCompetitors averages the snapshots sharing the café's most recent
// snapshot date. Older batches are historical and ignored. No snapshots
// yields the zero Benchmark, which suppresses every benchmark-dependent rule.
func BenchmarkCompetitors(snapshots []domain.CompetitorSnapshot) domain.Benchmark {
	if len(snapshots) == 0 {
		return domain.Benchmark{}
	}

	latest := snapshots[0].SnapshotDate
	for _, snap := range snapshots[1:] {
		if snap.SnapshotDate.After(latest) {
			latest = snap.SnapshotDate
		}
	}

	bench := domain.Benchmark{SnapshotAt: &latest}
	var ratingSum float64
	var ratingCount int
	var reviewSum float64
	var reviewCount int

	for _, snap := range snapshots {
		if !snap.SnapshotDate.Equal(latest) {
			continue
		}
		bench.Count++
		if snap.Rating != nil {
			ratingSum += *snap.Rating
			ratingCount++
		}
		if snap.TotalReviews != nil {
			reviewSum += float64(*snap.TotalReviews)
			reviewCount++
		}
	}

	if ratingCount > 0 {
		avg := ratingSum / float64(ratingCount)
		bench.AvgRating = &avg
	}
	if reviewCount > 0 {
		avg := reviewSum / float64(reviewCount)
		bench.AvgReviewCount = &avg
	}

	return bench
}
