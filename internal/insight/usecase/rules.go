package usecase

import (
	"fmt"
	"math"

	"cafesight-backend/internal/insight/domain"
)

// GenerateCandidates evaluates the fixed rule table in declaration order.
// Every rule fires at most once and a fired candidate is fully populated:
// ratings formatted to one decimal, percentages to zero decimals, never a
// nil-backed value in title or summary text.
func GenerateCandidates(stats domain.ReviewStats, themes domain.Themes, bench domain.Benchmark, th domain.Thresholds) []domain.Candidate {
	var candidates []domain.Candidate

	emit := func(c domain.Candidate) {
		c.ID = string(c.Type)
		c.Volume = stats.Total
		c.Score = scoreCandidate(c.Severity, c.Magnitude, c.Volume)
		candidates = append(candidates, c)
	}

	// no_reviews
	if stats.Total == 0 {
		emit(domain.Candidate{
			Type:     domain.TypeNoReviews,
			Kind:     domain.KindSignal,
			Severity: th.NoReviewsSeverity,
			Title:    "No new reviews this period",
			Summary:  "You didn't receive any reviews in this window, so there is nothing to benchmark yet.",
			Actions: []string{
				"Ask happy regulars to leave a Google review",
				"Put a review QR code at the counter",
			},
		})
	}

	// reviews_summary
	if top := themes.TopPraise(); top != nil && stats.Total >= th.MinReviewsForThemes {
		emit(domain.Candidate{
			Type:        domain.TypeReviewsSummary,
			Kind:        domain.KindSignal,
			Severity:    domain.SeveritySuccess,
			Title:       fmt.Sprintf("Customers keep praising %q", top.Phrase),
			Summary:     fmt.Sprintf("%q came up in %d recent reviews.", top.Phrase, top.Count),
			MetricLabel: "mentions",
			MetricValue: fmt.Sprintf("%d", top.Count),
			Magnitude:   float64(top.Count),
			Actions: []string{
				fmt.Sprintf("Feature %q in your next social post", top.Phrase),
				"Thank reviewers who mention it by name",
			},
		})
	}

	// recurring_complaint
	if top := themes.TopComplaint(); top != nil && stats.Total >= th.MinReviewsForThemes {
		emit(domain.Candidate{
			Type:        domain.TypeRecurringComplaint,
			Kind:        domain.KindOpportunity,
			Severity:    domain.SeverityWarn,
			Title:       fmt.Sprintf("Recurring complaint: %q", top.Phrase),
			Summary:     fmt.Sprintf("%q was raised in %d recent reviews.", top.Phrase, top.Count),
			MetricLabel: "mentions",
			MetricValue: fmt.Sprintf("%d", top.Count),
			Magnitude:   float64(top.Count),
			Actions: []string{
				fmt.Sprintf("Review your %s process with the team", top.Phrase),
				"Reply to the affected reviews with a fix",
			},
		})
	}

	// review_velocity_drop
	if stats.DeltaPct != nil && *stats.DeltaPct <= -30 {
		emit(domain.Candidate{
			Type:        domain.TypeReviewVelocityDrop,
			Kind:        domain.KindSignal,
			Severity:    domain.SeverityWarn,
			Title:       "Review volume is slowing down",
			Summary:     fmt.Sprintf("%d reviews in the last 7 days, down %.0f%% from the week before.", stats.Last7, math.Abs(*stats.DeltaPct)),
			MetricLabel: "weekly change",
			MetricValue: fmt.Sprintf("%.0f%%", *stats.DeltaPct),
			Magnitude:   *stats.DeltaPct,
			Actions: []string{
				"Remind staff to invite reviews at checkout",
				"Re-share your Google review link",
			},
		})
	}

	// review_velocity_spike
	if stats.DeltaPct != nil && *stats.DeltaPct >= 30 {
		emit(domain.Candidate{
			Type:        domain.TypeReviewVelocitySpike,
			Kind:        domain.KindSignal,
			Severity:    domain.SeveritySuccess,
			Title:       "Review volume is picking up",
			Summary:     fmt.Sprintf("%d reviews in the last 7 days, up %.0f%% from the week before.", stats.Last7, *stats.DeltaPct),
			MetricLabel: "weekly change",
			MetricValue: fmt.Sprintf("+%.0f%%", *stats.DeltaPct),
			Magnitude:   *stats.DeltaPct,
			Actions: []string{
				"Keep the momentum: reply to every new review",
			},
		})
	}

	// rating_gap
	if stats.AvgRating != nil && bench.AvgRating != nil {
		gap := *stats.AvgRating - *bench.AvgRating
		candidate := domain.Candidate{
			Type:        domain.TypeRatingGap,
			Kind:        domain.KindOpportunity,
			MetricLabel: "rating gap",
			MetricValue: fmt.Sprintf("%+.1f", gap),
			Magnitude:   gap * 10,
		}
		if gap >= 0 {
			candidate.Severity = domain.SeveritySuccess
			candidate.Title = "You're rated ahead of nearby competitors"
			candidate.Summary = fmt.Sprintf("Your average is %.1f vs a competitor average of %.1f across %d nearby businesses.", *stats.AvgRating, *bench.AvgRating, bench.Count)
			candidate.Actions = []string{
				"Mention your rating lead in your window display",
			}
		} else {
			candidate.Severity = domain.SeverityWarn
			candidate.Title = "Competitors are rated higher than you"
			candidate.Summary = fmt.Sprintf("Your average is %.1f vs a competitor average of %.1f across %d nearby businesses.", *stats.AvgRating, *bench.AvgRating, bench.Count)
			candidate.Actions = []string{
				"Read competitors' best reviews for ideas",
				"Focus on your most-complained-about theme first",
			}
		}
		emit(candidate)
	}

	// rating_sentiment_mismatch
	if stats.AvgRating != nil && *stats.AvgRating >= 4 && stats.AvgSentiment != nil && *stats.AvgSentiment < 0 {
		emit(domain.Candidate{
			Type:        domain.TypeRatingSentimentMismatch,
			Kind:        domain.KindSignal,
			Severity:    domain.SeverityWarn,
			Title:       "Star ratings and review text disagree",
			Summary:     fmt.Sprintf("Average rating is %.1f but the text of recent reviews reads negative.", *stats.AvgRating),
			MetricLabel: "avg sentiment",
			MetricValue: fmt.Sprintf("%.2f", *stats.AvgSentiment),
			Magnitude:   math.Abs(*stats.AvgSentiment) * 10,
			Actions: []string{
				"Read the text of recent 4-5 star reviews for buried complaints",
			},
		})
	}

	// low_review_volume
	if stats.Total > 0 && stats.Total < th.LowVolumeCutoff {
		emit(domain.Candidate{
			Type:        domain.TypeLowReviewVolume,
			Kind:        domain.KindOpportunity,
			Severity:    th.LowVolumeSeverity,
			Title:       "Only a few recent reviews",
			Summary:     fmt.Sprintf("You have %d reviews in this window. More volume makes your averages sturdier.", stats.Total),
			MetricLabel: "reviews",
			MetricValue: fmt.Sprintf("%d", stats.Total),
			Magnitude:   float64(th.LowVolumeCutoff - stats.Total),
			Actions: []string{
				"Add a review prompt to printed receipts",
				"Follow up with loyalty-program members",
			},
		})
	}

	// competitor_benchmark_ready: avoid an empty digest when the café has a
	// benchmark but no reviews of its own yet.
	if stats.Total == 0 && bench.Count > 0 && bench.AvgRating != nil {
		emit(domain.Candidate{
			Type:        domain.TypeBenchmarkReady,
			Kind:        domain.KindOpportunity,
			Severity:    domain.SeverityInfo,
			Title:       "Competitor benchmark is ready",
			Summary:     fmt.Sprintf("Nearby competitors average %.1f stars across %d tracked businesses.", *bench.AvgRating, bench.Count),
			MetricLabel: "competitor avg",
			MetricValue: fmt.Sprintf("%.1f", *bench.AvgRating),
			Actions: []string{
				"Collect your first reviews to see how you compare",
			},
		})
	}

	return candidates
}

// scoreCandidate implements the fixed weighting: severity dominates, with
// magnitude and volume capped so they only break ties inside a severity band.
func scoreCandidate(severity domain.Severity, magnitude float64, volume int) float64 {
	return float64(domain.SeverityWeight(severity)*10) +
		math.Min(10, math.Abs(magnitude)) +
		math.Min(6, float64(volume))
}
