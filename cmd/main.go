package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Matari73/Backend-CCE-AS66A-sub000/brackets"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/config"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/db"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/handlers"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/middleware"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/repositories"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/routes"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/services"
	"github.com/Matari73/Backend-CCE-AS66A-sub000/storage"
)

const (
	shutdownTimeout      = 10 * time.Second
	tokenCleanupInterval = 1 * time.Hour
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	if err := db.Migrate(dbConn, "file://migrations"); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("database migrations applied")

	var uploader storage.FileUploader
	if cfg.R2Configured() {
		uploader, err = storage.NewCloudflareR2Uploader(storage.CloudflareR2Config{
			AccountID:       cfg.R2AccountID,
			AccessKeyID:     cfg.R2AccessKeyID,
			SecretAccessKey: cfg.R2SecretAccessKey,
			BucketName:      cfg.R2BucketName,
			PublicBaseURL:   cfg.R2PublicBaseURL,
		})
		if err != nil {
			logger.Error("failed to initialize R2 uploader", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("R2 uploader initialized")
	} else {
		uploader = storage.NewDisabledUploader()
		logger.Warn("R2 is not configured, logo uploads are disabled")
	}

	hub := brackets.NewHub(logger)
	go hub.Run()

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	participantRepo := repositories.NewPostgresParticipantRepository(dbConn)
	championshipRepo := repositories.NewPostgresChampionshipRepository(dbConn)
	subscriptionRepo := repositories.NewPostgresSubscriptionRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	revokedTokenRepo := repositories.NewPostgresRevokedTokenRepository(dbConn)
	statisticsRepo := repositories.NewPostgresStatisticsRepository(dbConn)

	authService := services.NewAuthService(userRepo, revokedTokenRepo, cfg.JWTSecretKey)
	teamService := services.NewTeamService(teamRepo, participantRepo, uploader)
	participantService := services.NewParticipantService(participantRepo, teamRepo)
	championshipService := services.NewChampionshipService(championshipRepo, subscriptionRepo, matchRepo, uploader)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, championshipRepo, teamRepo, matchRepo)
	matchService := services.NewMatchService(matchRepo, championshipRepo, hub)
	bracketService := services.NewBracketService(dbConn, championshipRepo, subscriptionRepo, matchRepo, hub, brackets.NewRandomizer())
	statisticsService := services.NewStatisticsService(statisticsRepo, championshipRepo)

	router := routes.SetupRoutes(routes.Handlers{
		Auth:          handlers.NewAuthHandler(authService),
		Team:          handlers.NewTeamHandler(teamService),
		Participant:   handlers.NewParticipantHandler(participantService),
		Championship:  handlers.NewChampionshipHandler(championshipService),
		Subscription:  handlers.NewSubscriptionHandler(subscriptionService),
		Match:         handlers.NewMatchHandler(matchService),
		Bracket:       handlers.NewBracketHandler(bracketService),
		Statistics:    handlers.NewStatisticsHandler(statisticsService),
		WebSocket:     handlers.NewWebSocketHandler(hub, championshipService),
		Authenticator: middleware.NewAuthenticator(authService),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go cleanupRevokedTokens(ctx, revokedTokenRepo, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("server starting", slog.String("addr", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			_ = server.Close()
		}
	}

	logger.Info("server stopped")
}

// cleanupRevokedTokens periodically drops expired entries from the revocation
// table. Expired tokens are rejected by signature validation anyway.
func cleanupRevokedTokens(ctx context.Context, repo repositories.RevokedTokenRepository, logger *slog.Logger) {
	ticker := time.NewTicker(tokenCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteExpired(ctx)
			if err != nil {
				logger.Error("failed to clean up revoked tokens", slog.Any("error", err))
				continue
			}
			if deleted > 0 {
				logger.Info("cleaned up revoked tokens", slog.Int64("deleted", deleted))
			}
		}
	}
}
