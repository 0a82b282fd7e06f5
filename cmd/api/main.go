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
	"github.com/sirupsen/logrus"

	"github.com/mindloom/companion-ai/backend/internal/config"
	"github.com/mindloom/companion-ai/backend/internal/handler"
	authservice "github.com/mindloom/companion-ai/backend/internal/service/auth"
	"github.com/mindloom/companion-ai/backend/internal/service/conversation"
	"github.com/mindloom/companion-ai/backend/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Load .env file
	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Warn("no .env file loaded, continuing with system environment only")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}
	if cfg.Auth.SecretKey == config.DefaultSecretKey {
		logrus.Warn("COMPANIONAI_SECRET_KEY not set, using the development default")
	}

	store, err := storage.Open(cfg.Database.Path)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open storage")
	}
	logrus.WithField("path", cfg.Database.Path).Info("storage ready")

	authSvc := authservice.NewService(store, cfg.Auth.SecretKey, cfg.Auth.TokenTTL)
	conversations := conversation.NewService(store)

	router := handler.NewRouter(store, authSvc, conversations, cfg.CORS.AllowedOrigins)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logrus.WithField("addr", serverCfg.Addr).Info("companion backend listening")
	if err := runServer(ctx, srv); err != nil {
		logrus.WithError(err).Fatal("server error")
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
