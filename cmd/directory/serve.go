// cmd/directory/serve.go
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

	"github.com/dangerclosesec/directory"
	"github.com/dangerclosesec/directory/internal/auth"
	"github.com/dangerclosesec/directory/internal/config"
	"github.com/dangerclosesec/directory/internal/email"
	"github.com/dangerclosesec/directory/internal/email/mailer"
	"github.com/dangerclosesec/directory/internal/handler"
	"github.com/dangerclosesec/directory/internal/model"
	"github.com/dangerclosesec/directory/internal/repository"
	"github.com/dangerclosesec/directory/internal/service"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func run(ctx context.Context) error {
	cfg := config.Load()
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	router, err := buildRouter(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Server error channel
	serverErrors := make(chan error, 1)

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port, "authMode", cfg.Auth.Mode)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info("shutdown started", "signal", sig)

		// Give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}

// buildRouter resolves the seed, principals and guard once and wires the handlers.
func buildRouter(cfg *config.Config) (http.Handler, error) {
	seed, err := directory.LoadSeed()
	if err != nil {
		return nil, fmt.Errorf("loading seed: %w", err)
	}

	directoryRepo, err := repository.NewDirectoryRepository(seed.Branches, seed.Skills, seed.Teachers)
	if err != nil {
		return nil, fmt.Errorf("building directory store: %w", err)
	}

	emailService, err := email.NewEmailService(cfg, email.ProviderFor(cfg))
	if err != nil {
		return nil, fmt.Errorf("initializing email service: %w", err)
	}

	directoryService := service.NewDirectoryService(directoryRepo, mailer.NewTeacherWelcome(emailService))

	routerCfg := handler.RouterConfig{
		Logger:         slog.Default(),
		Directory:      handler.NewDirectoryHandler(directoryService),
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	}

	switch cfg.Auth.Mode {
	case config.AuthModeAPIKey:
		routerCfg.Guard = auth.NewAPIKeyGuard(cfg.Auth.APIKey)

	default:
		passwordHasher := auth.NewPasswordHasher()
		principal, err := adminPrincipal(cfg, passwordHasher)
		if err != nil {
			return nil, err
		}
		principalRepo, err := repository.NewPrincipalRepository(*principal)
		if err != nil {
			return nil, fmt.Errorf("building principal table: %w", err)
		}

		tokenManager := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiryPeriod)
		routerCfg.Guard = auth.NewTokenGuard(tokenManager, principalRepo)
		routerCfg.Token = handler.NewTokenHandler(service.NewTokenService(principalRepo, passwordHasher, tokenManager))
	}

	return handler.NewRouter(routerCfg), nil
}

func adminPrincipal(cfg *config.Config, hasher *auth.PasswordHasher) (*model.Principal, error) {
	hash := cfg.Admin.PasswordHash
	if hash == "" {
		var err error
		if hash, err = hasher.Hash(cfg.Admin.Password); err != nil {
			return nil, fmt.Errorf("hashing admin password: %w", err)
		}
	}

	return &model.Principal{
		Username:     cfg.Admin.Username,
		PasswordHash: hash,
		Disabled:     cfg.Admin.Disabled,
	}, nil
}
