package delivery

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"cafesight-backend/internal/insight/dto"
	"cafesight-backend/internal/insight/usecase"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubInsightUsecase struct {
	resp       *dto.OverviewResponse
	err        error
	lastCafeID string
	lastWindow int
}

func (s *stubInsightUsecase) Overview(cafeID string, windowDays int, now time.Time) (*dto.OverviewResponse, error) {
	s.lastCafeID = cafeID
	s.lastWindow = windowDays
	return s.resp, s.err
}

func newOverviewRouter(uc usecase.InsightUsecase) *gin.Engine {
	h := NewInsightHandler(uc)
	r := gin.New()
	r.GET("/api/cafes/:id/overview", h.GetOverview)
	return r
}

func TestGetOverviewPassesParams(t *testing.T) {
	t.Parallel()

	uc := &stubInsightUsecase{resp: &dto.OverviewResponse{CafeID: "cafe-1", WindowDays: 90}}
	r := newOverviewRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cafes/cafe-1/overview?window_days=90", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if uc.lastCafeID != "cafe-1" || uc.lastWindow != 90 {
		t.Fatalf("params not forwarded, got cafe=%q window=%d", uc.lastCafeID, uc.lastWindow)
	}
	if !strings.Contains(w.Body.String(), `"cafe_id":"cafe-1"`) {
		t.Fatalf("response body missing cafe id: %s", w.Body.String())
	}
}

func TestGetOverviewDefaultsWindowToZero(t *testing.T) {
	t.Parallel()

	uc := &stubInsightUsecase{resp: &dto.OverviewResponse{CafeID: "cafe-1"}}
	r := newOverviewRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cafes/cafe-1/overview", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	// 0 means "use the default window"; clamping happens in the usecase
	if uc.lastWindow != 0 {
		t.Fatalf("expected window 0 when absent, got %d", uc.lastWindow)
	}
}

func TestGetOverviewRejectsBadWindow(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"abc", "-5"} {
		uc := &stubInsightUsecase{resp: &dto.OverviewResponse{}}
		r := newOverviewRouter(uc)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/cafes/cafe-1/overview?window_days="+raw, nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("window_days=%q: expected 400, got %d", raw, w.Code)
		}
	}
}

func TestGetOverviewUnknownCafe(t *testing.T) {
	t.Parallel()

	uc := &stubInsightUsecase{err: usecase.ErrCafeNotFound}
	r := newOverviewRouter(uc)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/cafes/missing/overview", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestRateLimiterThrottlesPerClient(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(rate.Limit(1), 2)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Fatalf("burst of 2 must pass, got %v", codes)
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Fatalf("third immediate request must be throttled, got %v", codes)
	}

	// a different client gets its own bucket
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other clients must not share the bucket, got %d", w.Code)
	}
}
