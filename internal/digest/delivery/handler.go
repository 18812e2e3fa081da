package delivery

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	caferepo "cafesight-backend/internal/cafe/repository"
	"cafesight-backend/internal/digest/repository"
	"cafesight-backend/internal/digest/usecase"
	"cafesight-backend/pkg/token"
)

// DigestHandler serves the batch trigger, the click-tracking redirect and the
// unsubscribe action.
type DigestHandler struct {
	digestUsecase usecase.DigestUsecase
	insightRepo   repository.InsightRepository
	prefRepo      caferepo.PreferenceRepository
	tokens        *token.Manager
	appBaseURL    string
	runSecret     string
	log           *logrus.Logger
}

func NewDigestHandler(
	digestUsecase usecase.DigestUsecase,
	insightRepo repository.InsightRepository,
	prefRepo caferepo.PreferenceRepository,
	tokens *token.Manager,
	appBaseURL string,
	runSecret string,
	log *logrus.Logger,
) *DigestHandler {
	return &DigestHandler{
		digestUsecase: digestUsecase,
		insightRepo:   insightRepo,
		prefRepo:      prefRepo,
		tokens:        tokens,
		appBaseURL:    strings.TrimRight(appBaseURL, "/"),
		runSecret:     runSecret,
		log:           log,
	}
}

// RunDigests triggers the weekly batch and reports per-café outcomes.
// POST /api/digest/run
func (h *DigestHandler) RunDigests(c *gin.Context) {
	if h.runSecret == "" || c.GetHeader("X-Digest-Run-Secret") != h.runSecret {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid run secret"})
		return
	}

	results := h.digestUsecase.RunWeekly(time.Now())

	counts := map[usecase.Outcome]int{}
	for _, r := range results {
		counts[r.Outcome]++
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"sent":    counts[usecase.OutcomeSent],
		"skipped": counts[usecase.OutcomeSkipped],
		"failed":  counts[usecase.OutcomeFailed],
	})
}

// TrackClick records a digest link click and redirects to the destination.
// The destination must stay inside the application's own base URL.
// GET /r?rid=...&iid=...&to=...
func (h *DigestHandler) TrackClick(c *gin.Context) {
	dest := c.Query("to")
	if !h.destinationAllowed(dest) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid redirect destination"})
		return
	}

	recipientID := c.Query("rid")
	if insightID := c.Query("iid"); insightID != "" {
		if err := h.insightRepo.MarkClicked(insightID, time.Now()); err != nil {
			h.log.WithError(err).WithField("insight_id", insightID).Warn("digest: failed to record click")
		}
	}
	h.log.WithFields(logrus.Fields{
		"recipient_id": recipientID,
		"insight_id":   c.Query("iid"),
	}).Debug("digest: link click")

	c.Redirect(http.StatusFound, dest)
}

// destinationAllowed is the open-redirect guard: only same-origin
// destinations under the app base URL pass.
func (h *DigestHandler) destinationAllowed(dest string) bool {
	if dest == "" {
		return false
	}
	return dest == h.appBaseURL || strings.HasPrefix(dest, h.appBaseURL+"/") || strings.HasPrefix(dest, h.appBaseURL+"?")
}

// Unsubscribe verifies the signed token and disables the weekly digest for
// the bound user. No session is required.
// GET /unsubscribe?token=...
func (h *DigestHandler) Unsubscribe(c *gin.Context) {
	signed := c.Query("token")
	if signed == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing token"})
		return
	}

	userID, err := h.tokens.VerifyUnsubscribeToken(signed)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
		return
	}

	if err := h.prefRepo.Unsubscribe(userID, time.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte("<html><body><p>You have been unsubscribed from the weekly digest.</p></body></html>"))
}
