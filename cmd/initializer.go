package main

import (
	"context"
	"database/sql"
	"log"
	"time"

	"reviewBack/internal/config"
	"reviewBack/internal/handlers"
	"reviewBack/internal/repositories"
	"reviewBack/internal/services"
	"reviewBack/utils"
)

type application struct {
	errorLog *log.Logger
	infoLog  *log.Logger
	db       *sql.DB

	reviewPageHandler *handlers.ReviewPageHandler
	submissionHandler *handlers.SubmissionHandler
	statsHandler      *handlers.StatsHandler
	uploadHandler     *handlers.UploadHandler
	authHandler       *handlers.AuthHandler

	tokens *utils.Manager
	feed   *ReviewFeed
}

func initializeApp(db *sql.DB, cfg config.Config, errorLog, infoLog *log.Logger) *application {
	// Repositories
	pageRepo := repositories.ReviewPageRepository{DB: db}
	submissionRepo := repositories.SubmissionRepository{DB: db}
	sessionRepo := repositories.SessionRepository{DB: db}

	// Collaborators
	storage := utils.NewS3Storage(
		cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.Endpoint,
		cfg.Storage.AccessKey, cfg.Storage.SecretKey,
	)
	statsCache := services.NewStatsCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, 5*time.Minute)

	tokens, err := utils.NewManager(cfg.Auth.SigningKey)
	if err != nil {
		errorLog.Fatalf("token manager: %v", err)
	}

	var verifier services.TokenVerifier
	if cfg.Auth.CredentialsFile != "" {
		verifier, err = services.NewFirebaseVerifier(context.Background(), cfg.Auth.CredentialsFile)
		if err != nil {
			errorLog.Fatalf("identity provider: %v", err)
		}
	} else {
		infoLog.Println("identity provider credentials not set, /auth/session disabled")
	}

	accessTTL := time.Duration(cfg.Auth.AccessTTLHours) * time.Hour
	if accessTTL == 0 {
		accessTTL = 20 * time.Hour
	}
	refreshTTL := time.Duration(cfg.Auth.RefreshTTLDays) * 24 * time.Hour
	if refreshTTL == 0 {
		refreshTTL = 30 * 24 * time.Hour
	}

	// Services
	pageService := &services.ReviewPageService{PageRepo: &pageRepo}
	submissionService := &services.SubmissionService{
		SubmissionRepo: &submissionRepo,
		Storage:        storage,
		Cache:          statsCache,
		Folder:         cfg.Storage.Folder,
	}
	statsService := &services.StatsService{PageRepo: &pageRepo, SubmissionRepo: &submissionRepo}
	authService := &services.AuthService{
		Verifier:   verifier,
		Sessions:   &sessionRepo,
		Tokens:     tokens,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
	}

	// Handlers
	return &application{
		errorLog:          errorLog,
		infoLog:           infoLog,
		db:                db,
		reviewPageHandler: &handlers.ReviewPageHandler{Service: pageService},
		submissionHandler: &handlers.SubmissionHandler{Service: submissionService},
		statsHandler:      &handlers.StatsHandler{Service: statsService},
		uploadHandler:     &handlers.UploadHandler{Service: submissionService},
		authHandler:       &handlers.AuthHandler{Service: authService},
		tokens:            tokens,
	}
}
