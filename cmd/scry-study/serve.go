package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phrazzld/scry-study/internal/api"
	"github.com/phrazzld/scry-study/internal/api/middleware"
	"github.com/phrazzld/scry-study/internal/domain"
	"github.com/phrazzld/scry-study/internal/platform/postgres"
	"github.com/phrazzld/scry-study/internal/service"
	"github.com/phrazzld/scry-study/internal/service/auth"
	"github.com/phrazzld/scry-study/internal/service/study"
)

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.RequireServer(); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	log := a.logger

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	rt, err := a.studyRuntime()
	if err != nil {
		return err
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to create JWT service: %w", err)
	}

	userStore := postgres.NewUserStore(db, cfg.Auth.BCryptCost, log)
	settingsStore := postgres.NewSettingsStore(db, log)

	decks := study.BuiltinDecks(rt.catalogs, rt.model,
		postgres.NewReviewStoreRepository[int](db, log),
		postgres.NewReviewStoreRepository[string](db, log),
	)
	studySvc := study.NewService(decks, settingsStore, rt.clock, cfg.Study, log)

	deckNames := make([]string, 0, len(decks))
	for _, d := range decks {
		deckNames = append(deckNames, d.Name())
	}
	userSvc := service.NewUserService(db, userStore, settingsStore, auth.NewBcryptVerifier(),
		deckNames, domain.Settings{NewItemsPerDay: cfg.Study.DefaultNewItemsPerDay}, rt.clock, log)

	sweeper, err := study.NewSweeper(studySvc, cfg.Study.SweepSchedule, log)
	if err != nil {
		return err
	}

	router := api.NewRouter(api.RouterDeps{
		Auth: api.NewAuthHandler(userSvc, jwtService,
			time.Duration(cfg.Auth.TokenLifetimeMinutes)*time.Minute, rt.clock, log),
		Study:  api.NewStudyHandler(studySvc, log),
		Authn:  middleware.NewAuthMiddleware(jwtService),
		Clock:  rt.clock,
		Logger: log,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweeper.Start()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", slog.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down server")
	case serveErr = <-errCh:
		if serveErr != nil {
			log.Error("server failed", slog.String("error", serveErr.Error()))
		}
	}

	timeout := time.Duration(cfg.Server.ShutdownTimeoutSeconds) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", slog.String("error", err.Error()))
		serveErr = errors.Join(serveErr, fmt.Errorf("server shutdown failed: %w", err))
	}
	sweeper.Stop(timeout)

	log.Info("server shutdown completed")
	return serveErr
}
