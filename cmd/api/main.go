package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"davinci-contact-api/config"
	_ "davinci-contact-api/docs" // Important for Swagger
	v1 "davinci-contact-api/internal/delivery/http/v1"
	"davinci-contact-api/internal/usecase"
	"davinci-contact-api/pkg/email"
	"davinci-contact-api/pkg/logger"
	"davinci-contact-api/pkg/redis"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           Davinci Agency Contact API
// @version         1.0
// @description     Relays contact form submissions from the agency website to the team inbox.
// @host            localhost:8080
// @BasePath        /api
func main() {
	os.Exit(run())
}

// run owns every deferred cleanup; main only turns its result into an exit code
func run() int {
	// 1. Load Config (refuses to start without provider credentials)
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(logger.Options{
		Level:      cfg.LogLevel,
		File:       cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
	})
	defer logger.Close()
	logger.Log.Info("Starting contact API", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	// 3. Setup Redis (optional, rate limit store)
	var redisClient *goredis.Client
	var redisPing usecase.Pinger
	if cfg.UpstashRedisURL != "" {
		redisClient, err = redis.Connect(context.Background(), redis.Config{
			URL:      cfg.UpstashRedisURL,
			Password: cfg.UpstashRedisPassword,
		})
		if err != nil {
			logger.Log.Warn("Redis unavailable, rate limiting falls back to memory", "error", err)
		} else {
			defer redisClient.Close()
			redisPing = func(ctx context.Context) error { return redis.HealthCheck(ctx, redisClient) }
		}
	}

	// 4. Setup Email Service
	var sender email.Sender
	switch cfg.EmailProvider {
	case config.ProviderSMTP:
		sender = email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	default:
		sender = email.NewResendSender(cfg.ResendAPIKey)
	}
	emailService := email.NewEmailService(sender, cfg.ContactEmailFrom, cfg.ContactEmailTo)

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(emailService)
	healthUC := usecase.NewHealthUsecase(emailService, redisPing)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Redis:     redisClient,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	exitCode := 0
	select {
	case <-quit:
		logger.Log.Info("Shutting down server...")
	case err := <-serverErr:
		logger.Log.Error("Listen failed", "error", err)
		exitCode = 1
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return exitCode
}
