package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"zone37/config"
	_ "zone37/docs"
	"zone37/internal/adapters/auth"
	"zone37/internal/adapters/cache"
	"zone37/internal/adapters/email"
	"zone37/internal/clock"
	deliveryhttp "zone37/internal/delivery/http"
	"zone37/internal/delivery/http/controllers"
	"zone37/internal/domain"
	"zone37/internal/pricing"
	"zone37/internal/repository/postgres"
	"zone37/internal/services"
	"zone37/migrations"
)

const shutdownTimeout = 10 * time.Second

// @title Zone 37 Pricing API
// @version 1.0
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger := config.NewLogger()
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("load config", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open db", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	startupCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.PingContext(startupCtx); err != nil {
		logger.Error("db ping", "err", err)
		os.Exit(1)
	}
	if err := migrations.Apply(startupCtx, db); err != nil {
		logger.Error("apply migrations", "err", err)
		os.Exit(1)
	}

	gameRepo := postgres.NewGameRepository(db)
	factionRepo := postgres.NewFactionRepository(db)

	rdb := config.NewRedisClient(cfg, logger)
	if rdb != nil {
		defer rdb.Close()
	}
	gameCache := cache.NewGameCache(rdb, cfg.CacheTTL, logger)

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:             cfg.AWSRegion,
			AccessKeyID:        cfg.AWSAccessKeyID,
			SecretAccessKey:    cfg.AWSSecretAccessKey,
			InsecureSkipVerify: cfg.SESInsecureSkipVerify,
		},
	}, logger)
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	clk := clock.NewSystem()
	gameService := services.NewGameService(gameRepo, factionRepo, gameCache, emailService, cfg.NotifyEmail, clk, logger, cfg.RequestTimeout)
	factionService := services.NewFactionService(gameRepo, factionRepo, clk, cfg.RequestTimeout)
	editor := services.NewPricingEditor(pricing.NewManager(clk))

	mux := deliveryhttp.NewRouter(deliveryhttp.Controllers{
		Health:   controllers.NewHealthController(logger, db),
		Games:    controllers.NewGameController(logger, gameService),
		Pricing:  controllers.NewPricingController(logger, editor, gameService),
		Factions: controllers.NewFactionController(logger, factionService),
	}, auth.NewJWTVerifier(cfg.JWTSecret, domain.RoleAdmin), logger)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           deliveryhttp.NewHandler(mux, cfg.CORSOrigins, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvErr := make(chan error, 1)
	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
