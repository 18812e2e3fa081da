package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	caferepo "cafesight-backend/internal/cafe/repository"
	"cafesight-backend/internal/insight/domain"
	"cafesight-backend/internal/insight/dto"
	"cafesight-backend/internal/insight/repository"
	"cafesight-backend/pkg/cache"
)

const (
	defaultWindowDays = 180
	minWindowDays     = 7
	maxWindowDays     = 365

	// velocity needs 14 days of data, the 30/30 delta needs 60
	minLookbackDays = 60
)

var ErrCafeNotFound = errors.New("cafe not found")

type insightUsecase struct {
	cafeRepo       caferepo.CafeRepository
	reviewRepo     repository.ReviewRepository
	competitorRepo repository.CompetitorRepository
	responseCache  *cache.TTLCache
	log            *logrus.Logger
}

// NewInsightUsecase creates the overview usecase. The cache is optional; a
// nil cache disables response caching.
func NewInsightUsecase(
	cafeRepo caferepo.CafeRepository,
	reviewRepo repository.ReviewRepository,
	competitorRepo repository.CompetitorRepository,
	responseCache *cache.TTLCache,
	log *logrus.Logger,
) InsightUsecase {
	return &insightUsecase{
		cafeRepo:       cafeRepo,
		reviewRepo:     reviewRepo,
		competitorRepo: competitorRepo,
		responseCache:  responseCache,
		log:            log,
	}
}

func (u *insightUsecase) Overview(cafeID string, windowDays int, now time.Time) (*dto.OverviewResponse, error) {
	if windowDays == 0 {
		windowDays = defaultWindowDays
	}
	if windowDays < minWindowDays {
		windowDays = minWindowDays
	}
	if windowDays > maxWindowDays {
		windowDays = maxWindowDays
	}

	cacheKey := fmt.Sprintf("overview:%s:%d", cafeID, windowDays)
	if u.responseCache != nil {
		if cached, ok := u.responseCache.Get(cacheKey); ok {
			return cached.(*dto.OverviewResponse), nil
		}
	}

	cafe, err := u.cafeRepo.FindByID(cafeID)
	if err != nil {
		return nil, err
	}
	if cafe == nil {
		return nil, ErrCafeNotFound
	}

	lookback := windowDays
	if lookback < minLookbackDays {
		lookback = minLookbackDays
	}
	dayStart := startOfDay(now)
	from := dayStart.AddDate(0, 0, -lookback)
	to := dayStart.AddDate(0, 0, 1)

	reviews, err := u.reviewRepo.FindByCafeInRange(cafeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	snapshots, err := u.competitorRepo.FindLatestBatch(cafeID)
	if err != nil {
		return nil, fmt.Errorf("load competitor snapshots: %w", err)
	}

	stats := AggregateReviews(reviews, now, windowDays)
	themes := ExtractThemes(FilterWindow(reviews, now, windowDays))
	bench := BenchmarkCompetitors(snapshots)

	candidates := GenerateCandidates(stats, themes, bench, domain.OverviewThresholds)
	ranked := RankCandidates(candidates)

	resp := &dto.OverviewResponse{
		CafeID:        cafeID,
		WindowDays:    windowDays,
		Stats:         stats,
		Themes:        themes,
		Benchmark:     bench,
		Signals:       []domain.Candidate{},
		Opportunities: []domain.Candidate{},
	}
	if stats.AvgRating != nil && bench.AvgRating != nil {
		gap := *stats.AvgRating - *bench.AvgRating
		resp.RatingGap = &gap
	}
	for _, candidate := range ranked {
		if candidate.Kind == domain.KindSignal {
			resp.Signals = append(resp.Signals, candidate)
		} else {
			resp.Opportunities = append(resp.Opportunities, candidate)
		}
	}

	u.log.WithFields(logrus.Fields{
		"cafe_id":     cafeID,
		"window_days": windowDays,
		"reviews":     len(reviews),
		"candidates":  len(ranked),
	}).Debug("overview computed")

	if u.responseCache != nil {
		u.responseCache.Set(cacheKey, resp)
	}
	return resp, nil
}
