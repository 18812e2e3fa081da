package main

import (
	api "cafesight-backend/cmd/api"
	cafedomain "cafesight-backend/internal/cafe/domain"
	cafeRepo "cafesight-backend/internal/cafe/repository"
	digestDelivery "cafesight-backend/internal/digest/delivery"
	digestdomain "cafesight-backend/internal/digest/domain"
	digestRepo "cafesight-backend/internal/digest/repository"
	digestScheduler "cafesight-backend/internal/digest/scheduler"
	digestUsecase "cafesight-backend/internal/digest/usecase"
	insightDelivery "cafesight-backend/internal/insight/delivery"
	insightdomain "cafesight-backend/internal/insight/domain"
	insightRepo "cafesight-backend/internal/insight/repository"
	insightUsecase "cafesight-backend/internal/insight/usecase"
	"cafesight-backend/pkg/cache"
	"cafesight-backend/pkg/config"
	"cafesight-backend/pkg/database"
	"cafesight-backend/pkg/emailtmpl"
	"cafesight-backend/pkg/logger"
	"cafesight-backend/pkg/mailer"
	"cafesight-backend/pkg/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Failed to load configuration: %v", err)
	}
	logger.Init(cfg)
	log := logger.Get()

	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(
		&cafedomain.Cafe{},
		&cafedomain.User{},
		&cafedomain.NotificationPreference{},
		&insightdomain.Review{},
		&insightdomain.CompetitorSnapshot{},
		&digestdomain.DigestRun{},
		&digestdomain.DigestRecipient{},
		&digestdomain.DigestInsight{},
	); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Repositories
	cafeRepository := cafeRepo.NewCafeRepository(db)
	userRepository := cafeRepo.NewUserRepository(db)
	prefRepository := cafeRepo.NewPreferenceRepository(db)
	reviewRepository := insightRepo.NewReviewRepository(db)
	competitorRepository := insightRepo.NewCompetitorRepository(db)
	runRepository := digestRepo.NewRunRepository(db)
	recipientRepository := digestRepo.NewRecipientRepository(db)
	insightRepository := digestRepo.NewInsightRepository(db)

	// Collaborators
	sendgridMailer := mailer.NewSendGridMailer(cfg.SendGridAPIKey)
	renderer := emailtmpl.NewHTMLRenderer()
	tokenManager := token.NewManager(cfg.JWTSecret, cfg.UnsubscribeExpiry)
	overviewCache := cache.NewTTLCache(cfg.OverviewCacheTTL, 512)

	// Usecases
	insightUc := insightUsecase.NewInsightUsecase(cafeRepository, reviewRepository, competitorRepository, overviewCache, log)
	digestUc := digestUsecase.NewDigestUsecase(
		cafeRepository, userRepository, prefRepository,
		reviewRepository, competitorRepository,
		runRepository, recipientRepository, insightRepository,
		renderer, sendgridMailer, tokenManager,
		cfg.AppBaseURL, cfg.DigestFromName, cfg.DigestFromEmail, log,
	)

	// Weekly digest scheduler
	scheduler := digestScheduler.NewDigestScheduler(digestUc, cfg.DigestCronSpec, log)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start digest scheduler: %v", err)
	}
	defer scheduler.Stop()

	// HTTP handlers
	insightHandler := insightDelivery.NewInsightHandler(insightUc)
	digestHandler := digestDelivery.NewDigestHandler(digestUc, insightRepository, prefRepository, tokenManager, cfg.AppBaseURL, cfg.DigestRunSecret, log)
	handler := api.NewHandler(cfg, insightHandler, digestHandler)

	log.Infof("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
