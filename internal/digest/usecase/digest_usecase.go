package usecase

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	cafedomain "cafesight-backend/internal/cafe/domain"
	caferepo "cafesight-backend/internal/cafe/repository"
	"cafesight-backend/internal/digest/domain"
	"cafesight-backend/internal/digest/repository"
	insightdomain "cafesight-backend/internal/insight/domain"
	insightrepo "cafesight-backend/internal/insight/repository"
	insightuc "cafesight-backend/internal/insight/usecase"
	"cafesight-backend/pkg/emailtmpl"
	"cafesight-backend/pkg/mailer"
	"cafesight-backend/pkg/token"
)

const (
	periodDays   = 7
	lookbackDays = 14
)

type digestUsecase struct {
	cafeRepo       caferepo.CafeRepository
	userRepo       caferepo.UserRepository
	prefRepo       caferepo.PreferenceRepository
	reviewRepo     insightrepo.ReviewRepository
	competitorRepo insightrepo.CompetitorRepository
	runRepo        repository.RunRepository
	recipientRepo  repository.RecipientRepository
	insightRepo    repository.InsightRepository
	renderer       emailtmpl.Renderer
	mail           mailer.Mailer
	tokens         *token.Manager
	appBaseURL     string
	fromName       string
	fromEmail      string
	log            *logrus.Logger
}

func NewDigestUsecase(
	cafeRepo caferepo.CafeRepository,
	userRepo caferepo.UserRepository,
	prefRepo caferepo.PreferenceRepository,
	reviewRepo insightrepo.ReviewRepository,
	competitorRepo insightrepo.CompetitorRepository,
	runRepo repository.RunRepository,
	recipientRepo repository.RecipientRepository,
	insightRepo repository.InsightRepository,
	renderer emailtmpl.Renderer,
	mail mailer.Mailer,
	tokens *token.Manager,
	appBaseURL string,
	fromName string,
	fromEmail string,
	log *logrus.Logger,
) DigestUsecase {
	return &digestUsecase{
		cafeRepo:       cafeRepo,
		userRepo:       userRepo,
		prefRepo:       prefRepo,
		reviewRepo:     reviewRepo,
		competitorRepo: competitorRepo,
		runRepo:        runRepo,
		recipientRepo:  recipientRepo,
		insightRepo:    insightRepo,
		renderer:       renderer,
		mail:           mail,
		tokens:         tokens,
		appBaseURL:     appBaseURL,
		fromName:       fromName,
		fromEmail:      fromEmail,
		log:            log,
	}
}

// RunWeekly processes every café for the 7-day period ending at the start of
// now's calendar day. Cafés are independent units of work: each failure is
// recorded and the loop continues.
func (u *digestUsecase) RunWeekly(now time.Time) []CafeResult {
	periodEnd := startOfDay(now)
	periodStart := periodEnd.AddDate(0, 0, -periodDays)

	cafes, err := u.cafeRepo.FindAll()
	if err != nil {
		u.log.WithError(err).Error("digest: failed to list cafes")
		return []CafeResult{}
	}

	results := make([]CafeResult, 0, len(cafes))
	for _, cafe := range cafes {
		result := u.processCafe(cafe, periodStart, periodEnd)
		results = append(results, result)
		u.log.WithFields(logrus.Fields{
			"cafe_id": result.CafeID,
			"outcome": result.Outcome,
			"reason":  result.Reason,
		}).Info("digest: cafe processed")
	}
	return results
}

func (u *digestUsecase) processCafe(cafe *cafedomain.Cafe, periodStart, periodEnd time.Time) CafeResult {
	result := CafeResult{CafeID: cafe.ID}

	// 1. notification preference
	pref, err := u.prefRepo.FindByUserID(cafe.OwnerID)
	if err != nil {
		return failed(result, fmt.Errorf("load preference: %w", err))
	}
	if pref != nil && (!pref.DigestEnabled || pref.UnsubscribedAt != nil) {
		return skipped(result, ReasonDisabled)
	}

	// 2. existing run for the period
	existing, err := u.runRepo.FindByCafeAndPeriod(cafe.ID, periodStart, periodEnd)
	if err != nil {
		return failed(result, fmt.Errorf("load run: %w", err))
	}
	if existing != nil && existing.SentAt != nil {
		return skipped(result, ReasonAlreadySent)
	}

	// 3. owner email
	owner, err := u.userRepo.FindByID(cafe.OwnerID)
	if err != nil {
		return failed(result, fmt.Errorf("load owner: %w", err))
	}
	if owner == nil || owner.Email == "" {
		return skipped(result, ReasonMissingEmail)
	}

	// 4. create the run if absent
	run := existing
	if run == nil {
		run, err = u.runRepo.CreateIfAbsent(&domain.DigestRun{
			CafeID:      cafe.ID,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			PeriodLabel: periodLabel(periodStart, periodEnd),
			Status:      domain.RunStatusPending,
		})
		if err != nil {
			return failed(result, fmt.Errorf("create run: %w", err))
		}
	}
	// a concurrent invocation may have finished this run between the lookup
	// and the conditional insert
	if run.SentAt != nil {
		return skipped(result, ReasonAlreadySent)
	}

	// 5. create or reuse the recipient
	recipient, err := u.recipientRepo.CreateIfAbsent(&domain.DigestRecipient{
		RunID:  run.ID,
		UserID: owner.ID,
		Email:  owner.Email,
		Status: domain.RecipientStatusQueued,
	})
	if err != nil {
		return u.failRun(result, run, nil, fmt.Errorf("create recipient: %w", err))
	}
	if recipient.Status == domain.RecipientStatusSent {
		return skipped(result, ReasonRecipientSent)
	}

	// 6. load data and compute the ranked candidate set
	reviews, err := u.reviewRepo.FindByCafeInRange(cafe.ID, periodEnd.AddDate(0, 0, -lookbackDays), periodEnd)
	if err != nil {
		return u.failRun(result, run, recipient, fmt.Errorf("load reviews: %w", err))
	}
	snapshots, err := u.competitorRepo.FindLatestBatch(cafe.ID)
	if err != nil {
		return u.failRun(result, run, recipient, fmt.Errorf("load competitor snapshots: %w", err))
	}

	stats := insightuc.AggregateReviews(reviews, periodEnd, periodDays)
	themes := insightuc.ExtractThemes(insightuc.FilterWindow(reviews, periodEnd, periodDays))
	bench := insightuc.BenchmarkCompetitors(snapshots)
	candidates := insightuc.GenerateCandidates(stats, themes, bench, insightdomain.DigestThresholds)
	ranked := insightuc.RankCandidates(candidates)
	summary := insightuc.TopSummary(ranked, 3)
	focus := insightuc.FocusCandidate(ranked)

	// 7. persist the ranked insights; failure here is logged but must not
	// block the send
	insights := u.buildInsights(run, summary)
	if err := u.insightRepo.BulkUpsert(insights); err != nil {
		u.log.WithError(err).WithField("run_id", run.ID).Warn("digest: failed to persist insights")
	}

	// 8. render and send
	ctaURL := u.appBaseURL + "/dashboard?cafe=" + url.QueryEscape(cafe.ID)
	unsubscribeURL, err := u.unsubscribeURL(owner.ID)
	if err != nil {
		return u.failRun(result, run, recipient, fmt.Errorf("sign unsubscribe token: %w", err))
	}

	data := emailtmpl.DigestData{
		CafeName:       cafe.Name,
		WeekOf:         run.PeriodLabel,
		CTAURL:         u.trackURL(recipient.ID, "", ctaURL),
		UnsubscribeURL: unsubscribeURL,
	}
	for _, candidate := range summary {
		data.SummaryItems = append(data.SummaryItems, emailtmpl.SummaryItem{
			Title:   candidate.Title,
			Summary: candidate.Summary,
			Link:    u.trackURL(recipient.ID, insightID(run.ID, candidate), ctaURL),
		})
	}
	if focus != nil {
		data.FocusLine = focus.Title
		data.FocusReason = focus.Summary
		data.FocusLink = u.trackURL(recipient.ID, insightID(run.ID, *focus), ctaURL)
	}

	html, err := u.renderer.RenderDigest(data)
	if err != nil {
		return u.failRun(result, run, recipient, fmt.Errorf("render digest: %w", err))
	}

	// correlation id logged before the unrecoverable external call, so a
	// provider-confirmed send that fails to record locally can be traced
	correlationID := uuid.New().String()
	u.log.WithFields(logrus.Fields{
		"correlation_id": correlationID,
		"run_id":         run.ID,
		"recipient_id":   recipient.ID,
		"email":          owner.Email,
	}).Info("digest: sending email")

	messageID, err := u.mail.Send(mailer.Email{
		FromName:  u.fromName,
		FromEmail: u.fromEmail,
		ToName:    owner.Name,
		ToEmail:   owner.Email,
		Subject:   fmt.Sprintf("Your weekly review digest for %s", cafe.Name),
		HTML:      html,
	})
	if err != nil {
		return u.failRun(result, run, recipient, fmt.Errorf("send email: %w", err))
	}

	// 9. record the send; if these writes fail the email is already out and
	// a retry would re-send (known gap, no provider-side reconciliation)
	sentAt := time.Now()
	if err := u.runRepo.MarkSent(run.ID, sentAt, ctaURL); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"run_id":         run.ID,
		}).Error("digest: email sent but run not marked sent")
	}
	if err := u.recipientRepo.MarkSent(recipient.ID, sentAt, messageID); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{
			"correlation_id": correlationID,
			"recipient_id":   recipient.ID,
		}).Error("digest: email sent but recipient not marked sent")
	}

	result.Outcome = OutcomeSent
	return result
}

func (u *digestUsecase) buildInsights(run *domain.DigestRun, summary []insightdomain.Candidate) []domain.DigestInsight {
	insights := make([]domain.DigestInsight, 0, len(summary))
	for i, candidate := range summary {
		insights = append(insights, domain.DigestInsight{
			ID:          insightID(run.ID, candidate),
			RunID:       run.ID,
			Type:        string(candidate.Type),
			Title:       candidate.Title,
			Summary:     candidate.Summary,
			Severity:    string(candidate.Severity),
			Score:       candidate.Score,
			Rank:        i + 1,
			DeepLink:    u.appBaseURL + "/dashboard/insights?cafe=" + url.QueryEscape(run.CafeID) + "&type=" + url.QueryEscape(string(candidate.Type)),
			PeriodStart: run.PeriodStart,
			PeriodEnd:   run.PeriodEnd,
		})
	}
	return insights
}

// trackURL routes an outbound link through the click-tracking redirect,
// carrying the recipient and insight ids.
func (u *digestUsecase) trackURL(recipientID, insightID, dest string) string {
	q := url.Values{}
	q.Set("rid", recipientID)
	if insightID != "" {
		q.Set("iid", insightID)
	}
	q.Set("to", dest)
	return u.appBaseURL + "/r?" + q.Encode()
}

func (u *digestUsecase) unsubscribeURL(userID string) (string, error) {
	signed, err := u.tokens.UnsubscribeToken(userID)
	if err != nil {
		return "", err
	}
	return u.appBaseURL + "/unsubscribe?token=" + url.QueryEscape(signed), nil
}

// insightID is deterministic per (run, type) so retries upsert rather than
// duplicate.
func insightID(runID string, candidate insightdomain.Candidate) string {
	return runID + ":" + string(candidate.Type)
}

func (u *digestUsecase) failRun(result CafeResult, run *domain.DigestRun, recipient *domain.DigestRecipient, cause error) CafeResult {
	if err := u.runRepo.MarkFailed(run.ID); err != nil {
		u.log.WithError(err).WithField("run_id", run.ID).Error("digest: failed to mark run failed")
	}
	if recipient != nil {
		if err := u.recipientRepo.MarkFailed(recipient.ID, cause.Error()); err != nil {
			u.log.WithError(err).WithField("recipient_id", recipient.ID).Error("digest: failed to mark recipient failed")
		}
	}
	return failed(result, cause)
}

func failed(result CafeResult, err error) CafeResult {
	result.Outcome = OutcomeFailed
	result.Error = err.Error()
	return result
}

func skipped(result CafeResult, reason string) CafeResult {
	result.Outcome = OutcomeSkipped
	result.Reason = reason
	return result
}

func periodLabel(periodStart, periodEnd time.Time) string {
	lastDay := periodEnd.AddDate(0, 0, -1)
	return fmt.Sprintf("Week of %s - %s", periodStart.Format("Jan 2"), lastDay.Format("Jan 2, 2006"))
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
