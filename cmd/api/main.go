package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/makeoverbyreet/makeover-contact/internal/http/router"
	"github.com/makeoverbyreet/makeover-contact/internal/platform/mailer"
	"github.com/makeoverbyreet/makeover-contact/internal/service"
	"github.com/makeoverbyreet/makeover-contact/pkg/config"
	"github.com/makeoverbyreet/makeover-contact/pkg/logger"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Warn("Failed to load .env", "error", err)
	}
	cfg := config.Load()

	sender, err := mailer.New(cfg.Email)
	if err != nil {
		logger.Error("Failed to configure mailer", "error", err)
		os.Exit(1)
	}
	if cfg.Email.Provider == "resend" && cfg.Email.ResendKey == "" {
		logger.Warn("RESEND_API_KEY is not set; booking emails will fail")
	}

	contactService := service.NewContactService(sender, cfg.Email)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router.New(cfg, contactService),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down contact service...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Contact service shutdown error", "error", err)
		}
	}()

	logger.Info("🚀 Server is running", "port", cfg.Server.Port, "email_provider", cfg.Email.Provider)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Contact service error", "error", err)
		os.Exit(1)
	}
}
