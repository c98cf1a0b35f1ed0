package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agentai-website-api/config"
	_ "agentai-website-api/docs" // Important for Swagger
	v1 "agentai-website-api/internal/delivery/http/v1"
	"agentai-website-api/internal/usecase"
	"agentai-website-api/pkg/email"
	"agentai-website-api/pkg/logger"
	"agentai-website-api/pkg/security"
	"agentai-website-api/pkg/turnstile"
	"agentai-website-api/pkg/validation"
)

// @title           AgentAI Website API
// @version         1.0
// @description     Form intake for the AgentAI marketing website.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Loggers
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting website API", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	env := "development"
	if cfg.IsProduction() {
		env = "production"
	}
	secLog := security.NewSecurityLogger(security.Options{
		ServiceName: "agentai-website-api",
		Environment: env,
		File:        cfg.SecurityLogFile,
	})
	defer func() { _ = secLog.Sync() }()

	// 3. Setup Email
	sender, err := email.NewSender(context.Background(), email.Config{
		Provider:           cfg.EmailProvider,
		Timeout:            cfg.UpstreamTimeout,
		ResendAPIKey:       cfg.ResendAPIKey,
		ResendAPIURL:       cfg.ResendAPIURL,
		SESRegion:          cfg.SESRegion,
		SESAccessKeyID:     cfg.SESAccessKeyID,
		SESSecretAccessKey: cfg.SESSecretAccessKey,
		SMTPHost:           cfg.SMTPHost,
		SMTPPort:           cfg.SMTPPort,
		SMTPUsername:       cfg.SMTPUsername,
		SMTPPassword:       cfg.SMTPPassword,
	})
	if err != nil {
		logger.Log.Error("Failed to set up email provider", "error", err)
		os.Exit(1)
	}
	if !sender.IsConfigured() {
		logger.Log.Warn("Email provider not fully configured - contact form will answer 503", "provider", sender.Provider())
	}

	renderer, err := email.NewRenderer(cfg.DisplayTimezone)
	if err != nil {
		logger.Log.Error("Failed to load email templates", "error", err)
		os.Exit(1)
	}

	// 4. Setup Bot Verification
	verifier := turnstile.NewClient(cfg.TurnstileSecretKey, cfg.TurnstileVerifyURL, cfg.UpstreamTimeout)

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(validation.New(), verifier, sender, renderer, secLog,
		usecase.MailSettings{From: cfg.MailFrom, To: cfg.MailTo})
	healthUC := usecase.NewHealthUsecase(sender, verifier)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
