package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/redmonkez12/user-auth-api/docs" // Swagger docs
	"github.com/redmonkez12/user-auth-api/internal/auth"
	"github.com/redmonkez12/user-auth-api/internal/config"
	httpServer "github.com/redmonkez12/user-auth-api/internal/http"
	"github.com/redmonkez12/user-auth-api/internal/logging"
	"github.com/redmonkez12/user-auth-api/internal/user"
)

// @title           User Auth API
// @version         1.0
// @description     Signup, login and current-user endpoints backed by MongoDB and signed session tokens.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the token.

func main() {
	if err := run(); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logging.NewLogger(!cfg.Server.IsProduction())
	logger.Info("starting application",
		"env", cfg.Server.Env,
		"port", cfg.Server.Port,
		"db_driver", cfg.Database.Driver,
		"token_strategy", cfg.Auth.TokenStrategy,
	)

	// Connect once and fail fast; the handle lives until shutdown.
	store, closeStore, err := user.OpenStore(context.Background(), cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := closeStore(ctx); err != nil {
			logger.Error("failed to close database", "error", err.Error())
		}
	}()

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	authService := auth.NewService(
		store,
		tokens,
		logger,
		cfg.Auth.SignupTokenDuration,
		cfg.Auth.TokenDuration(),
	)
	authHandler := auth.NewHandler(authService, logger, auth.CookieOptions{
		Days:   cfg.Auth.CookieExpireDays,
		Secure: cfg.Server.IsProduction(),
	})
	authMiddleware := auth.NewMiddleware(tokens, logger)

	router := httpServer.NewRouter(cfg, authHandler, authMiddleware, logger)
	server := httpServer.NewServer(cfg.Server, router, logger)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		logger.Info("received signal", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}
