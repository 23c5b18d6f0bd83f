package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	accounthandler "demo-bank/backend/internal/account/handler"
	accountrepo "demo-bank/backend/internal/account/repository"
	accountservice "demo-bank/backend/internal/account/service"
	"demo-bank/backend/internal/audit"
	"demo-bank/backend/internal/audit/producer"
	auditrepo "demo-bank/backend/internal/audit/repository"
	authhandler "demo-bank/backend/internal/auth/handler"
	authservice "demo-bank/backend/internal/auth/service"
	"demo-bank/backend/internal/config"
	"demo-bank/backend/internal/db"
	"demo-bank/backend/internal/db/migrate"
	"demo-bank/backend/internal/logging"
	"demo-bank/backend/internal/policy/engine"
	"demo-bank/backend/internal/security"
	"demo-bank/backend/internal/server"
	"demo-bank/backend/internal/server/middleware"
	sessionrepo "demo-bank/backend/internal/session/repository"
	"demo-bank/backend/internal/telemetry/otel"
	userrepo "demo-bank/backend/internal/user/repository"
)

// devJWTSecret signs tokens when JWT_SECRET is unset outside production.
const devJWTSecret = "development-jwt-secret-do-not-use-in-production"

func main() {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Error(ctx, "config", "error", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		log.Error(ctx, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	providers, err := otel.NewProviders(ctx, cfg.OTLPEndpoint, "demo-bank-backend", cfg.OTLPInsecure)
	if err != nil {
		log.Error(ctx, "telemetry", "error", err)
		os.Exit(1)
	}
	providers.SetGlobal()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = providers.Shutdown(shutdownCtx)
	}()

	if err := migrate.Run(cfg.DatabaseURL, "up"); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Error(ctx, "migrate", "error", err)
		os.Exit(1)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Error(ctx, "db", "error", err)
		os.Exit(1)
	}
	defer conn.Close()

	cipher, err := security.NewCipherWithFallback(ctx, cfg.EncryptionKey, log)
	if err != nil {
		log.Error(ctx, "encryption", "error", err)
		os.Exit(1)
	}
	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		log.Warn(ctx, "JWT_SECRET is not set, using development secret")
		jwtSecret = devJWTSecret
	}
	hasher := security.NewHasher(cfg.BcryptCost)
	tokens := security.NewTokenProvider([]byte(jwtSecret), cfg.SessionLifetime())

	policies, err := engine.NewOPAEvaluator()
	if err != nil {
		log.Error(ctx, "policy", "error", err)
		os.Exit(1)
	}

	kafkaMirror := producer.NewKafkaProducer(cfg.AuditKafkaBrokersList(), cfg.AuditKafkaTopic)
	if kafkaMirror != nil {
		defer kafkaMirror.Close()
	}
	var mirror producer.Producer
	if kafkaMirror != nil {
		mirror = kafkaMirror
	}
	auditor := audit.NewLogger(auditrepo.NewPostgresRepository(conn), mirror, middleware.ClientIP, log)

	users := userrepo.NewPostgresRepository(conn)
	sessions := sessionrepo.NewPostgresRepository(conn)
	accounts := accountrepo.NewPostgresRepository(conn)

	authSvc := authservice.NewAuthService(users, sessions, hasher, tokens, cipher, auditor)
	accountSvc := accountservice.NewAccountService(accounts, policies, auditor)

	srv := server.New(
		cfg.HTTPAddr,
		conn,
		authSvc,
		authhandler.NewHTTPHandler(authSvc, cfg.SessionLifetime(), log),
		accounthandler.NewHTTPHandler(accountSvc, log),
		log,
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case err := <-errCh:
		log.Error(ctx, "serve", "error", err)
		os.Exit(1)
	case sig := <-quit:
		log.Info(ctx, "shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "shutdown", "error", err)
	}
}
