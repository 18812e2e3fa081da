package usecase

import (
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	cafedomain "cafesight-backend/internal/cafe/domain"
	"cafesight-backend/internal/insight/domain"
	"cafesight-backend/pkg/cache"
)

type stubCafeRepo struct {
	cafe  *cafedomain.Cafe
	calls int
}

func (s *stubCafeRepo) FindByID(id string) (*cafedomain.Cafe, error) {
	s.calls++
	if s.cafe != nil && s.cafe.ID == id {
		return s.cafe, nil
	}
	return nil, nil
}

func (s *stubCafeRepo) FindAll() ([]*cafedomain.Cafe, error) {
	return []*cafedomain.Cafe{s.cafe}, nil
}

type stubReviewRepo struct {
	reviews  []domain.Review
	lastFrom time.Time
	lastTo   time.Time
	calls    int
}

func (s *stubReviewRepo) FindByCafeInRange(cafeID string, from, to time.Time) ([]domain.Review, error) {
	s.calls++
	s.lastFrom, s.lastTo = from, to
	return s.reviews, nil
}

type stubCompetitorRepo struct {
	snapshots []domain.CompetitorSnapshot
}

func (s *stubCompetitorRepo) FindLatestBatch(cafeID string) ([]domain.CompetitorSnapshot, error) {
	return s.snapshots, nil
}

func newOverviewFixture(reviews []domain.Review, snaps []domain.CompetitorSnapshot, c *cache.TTLCache) (InsightUsecase, *stubCafeRepo, *stubReviewRepo) {
	log := logrus.New()
	log.SetOutput(io.Discard)

	cafes := &stubCafeRepo{cafe: &cafedomain.Cafe{ID: "cafe-1", OwnerID: "user-1", Name: "Test Cafe"}}
	rev := &stubReviewRepo{reviews: reviews}
	uc := NewInsightUsecase(cafes, rev, &stubCompetitorRepo{snapshots: snaps}, c, log)
	return uc, cafes, rev
}

func TestOverviewUnknownCafe(t *testing.T) {
	t.Parallel()

	uc, _, _ := newOverviewFixture(nil, nil, nil)

	if _, err := uc.Overview("missing", 0, testNow); err != ErrCafeNotFound {
		t.Fatalf("expected ErrCafeNotFound, got %v", err)
	}
}

func TestOverviewClampsWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{0, 180},
		{3, 7},
		{90, 90},
		{1000, 365},
	}

	for _, tt := range tests {
		uc, _, _ := newOverviewFixture(nil, nil, nil)
		resp, err := uc.Overview("cafe-1", tt.in, testNow)
		if err != nil {
			t.Fatalf("window %d: %v", tt.in, err)
		}
		if resp.WindowDays != tt.want {
			t.Fatalf("window %d: expected clamp to %d, got %d", tt.in, tt.want, resp.WindowDays)
		}
	}
}

func TestOverviewLoadsEnoughHistoryForVelocity(t *testing.T) {
	t.Parallel()

	uc, _, rev := newOverviewFixture(nil, nil, nil)

	if _, err := uc.Overview("cafe-1", 7, testNow); err != nil {
		t.Fatal(err)
	}

	// a 7-day window still needs 60 days of reviews for the velocity and
	// 30/30 delta buckets
	dayStart := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	if !rev.lastFrom.Equal(dayStart.AddDate(0, 0, -60)) {
		t.Fatalf("expected a 60-day lookback, got from=%v", rev.lastFrom)
	}
	if !rev.lastTo.Equal(dayStart.AddDate(0, 0, 1)) {
		t.Fatalf("expected range through the end of today, got to=%v", rev.lastTo)
	}
}

func TestOverviewPartitionsCandidates(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		topicReview(5, `["espresso"]`),
		topicReview(1, `["wait time"]`),
	}
	for i := range reviews {
		reviews[i].PostedAt = daysAgo(2)
	}

	uc, _, _ := newOverviewFixture(reviews, nil, nil)
	resp, err := uc.Overview("cafe-1", 30, testNow)
	if err != nil {
		t.Fatal(err)
	}

	for _, c := range resp.Signals {
		if c.Kind != domain.KindSignal {
			t.Fatalf("non-signal in signals: %+v", c)
		}
	}
	for _, c := range resp.Opportunities {
		if c.Kind != domain.KindOpportunity {
			t.Fatalf("non-opportunity in opportunities: %+v", c)
		}
	}
	if len(resp.Signals) == 0 || len(resp.Opportunities) == 0 {
		t.Fatalf("expected both partitions populated, got %d signals / %d opportunities",
			len(resp.Signals), len(resp.Opportunities))
	}
}

func TestOverviewComputesRatingGap(t *testing.T) {
	t.Parallel()

	reviews := []domain.Review{
		ratedReview(5, daysAgo(1)),
		ratedReview(4, daysAgo(2)),
	}
	snaps := []domain.CompetitorSnapshot{
		snapshot(4.0, 100, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)),
	}

	uc, _, _ := newOverviewFixture(reviews, snaps, nil)
	resp, err := uc.Overview("cafe-1", 30, testNow)
	if err != nil {
		t.Fatal(err)
	}

	if resp.RatingGap == nil || *resp.RatingGap != 0.5 {
		t.Fatalf("expected rating gap +0.5, got %v", resp.RatingGap)
	}
}

func TestOverviewCachesResponses(t *testing.T) {
	t.Parallel()

	c := cache.NewTTLCache(time.Minute, 16)
	uc, cafes, rev := newOverviewFixture(nil, nil, c)

	first, err := uc.Overview("cafe-1", 30, testNow)
	if err != nil {
		t.Fatal(err)
	}
	second, err := uc.Overview("cafe-1", 30, testNow)
	if err != nil {
		t.Fatal(err)
	}

	if cafes.calls != 1 || rev.calls != 1 {
		t.Fatalf("second call must be served from cache, got %d cafe / %d review loads", cafes.calls, rev.calls)
	}
	if first != second {
		t.Fatal("expected the cached response instance")
	}

	// a different window is a different cache entry
	if _, err := uc.Overview("cafe-1", 60, testNow); err != nil {
		t.Fatal(err)
	}
	if rev.calls != 2 {
		t.Fatalf("different window must recompute, got %d review loads", rev.calls)
	}
}
