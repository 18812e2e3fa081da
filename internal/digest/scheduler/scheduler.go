package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"cafesight-backend/internal/digest/usecase"
)

// DigestScheduler fires the weekly digest batch on a cron spec.
type DigestScheduler struct {
	cronEngine    *cron.Cron
	digestUsecase usecase.DigestUsecase
	cronSpec      string
	log           *logrus.Logger
}

func NewDigestScheduler(digestUsecase usecase.DigestUsecase, cronSpec string, log *logrus.Logger) *DigestScheduler {
	return &DigestScheduler{
		cronEngine:    cron.New(cron.WithLocation(time.Local)),
		digestUsecase: digestUsecase,
		cronSpec:      cronSpec,
		log:           log,
	}
}

func (s *DigestScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, func() {
		s.log.WithField("cron_spec", s.cronSpec).Info("scheduler: weekly digest job triggered")
		results := s.digestUsecase.RunWeekly(time.Now())

		sent, skipped, failed := 0, 0, 0
		for _, r := range results {
			switch r.Outcome {
			case usecase.OutcomeSent:
				sent++
			case usecase.OutcomeSkipped:
				skipped++
			case usecase.OutcomeFailed:
				failed++
			}
		}
		s.log.WithFields(logrus.Fields{
			"sent":    sent,
			"skipped": skipped,
			"failed":  failed,
		}).Info("scheduler: weekly digest job finished")
	})
	if err != nil {
		return err
	}

	s.cronEngine.Start()
	s.log.WithField("cron_spec", s.cronSpec).Info("scheduler: started")
	return nil
}

func (s *DigestScheduler) Stop() {
	ctx := s.cronEngine.Stop()
	<-ctx.Done()
	s.log.Info("scheduler: stopped")
}
