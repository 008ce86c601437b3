package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/kdimtricp/auteur/internal/api"
	"github.com/kdimtricp/auteur/internal/config"
	"github.com/kdimtricp/auteur/internal/database"
	"github.com/kdimtricp/auteur/internal/directors"
	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/quiz"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

func main() {
	// A missing .env is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}
	logging.Init(cfg.Logging.LoggerConfig())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		logging.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	client := tmdb.NewClient(cfg.TMDb.ClientConfig())
	if !client.Configured() {
		logging.Warn().Msg("TMDB_API_KEY is not set, movie and director lookups will fail")
	}

	var store tmdb.SnapshotStore
	if cfg.Database.Enabled {
		db, err := database.NewDB(cfg.Database.DBConfig())
		if err != nil {
			return err
		}
		defer db.Close()

		if err := db.RunMigrations(ctx); err != nil {
			return err
		}
		store = database.NewCatalogRepository(db)
		logging.Info().Str("type", db.Type()).Msg("catalog snapshot store enabled")
	}

	catalog := tmdb.NewCatalog(client, store, cfg.TMDb.CatalogConfig(), logging.Logger())
	quizService := recommendation.NewService(
		quiz.NewGenerator(quiz.WithLogger(logging.WithComponent("quiz"))),
		catalog,
		cfg.Quiz.ServiceConfig(),
		logging.Logger(),
	)
	directorService := directors.NewService(client, logging.Logger())

	handlers := api.NewHandlers(client, directorService, quizService)
	router := api.NewRouter(handlers, api.RouterConfig{
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
	})

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go quizService.RunJanitor(ctx, cfg.Quiz.JanitorInterval)

	errCh := make(chan error, 1)
	go func() {
		logging.Info().
			Str("addr", srv.Addr).
			Bool("snapshot_store", store != nil).
			Int("question_count", cfg.Quiz.QuestionCount).
			Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
