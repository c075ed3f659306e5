package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/games/apps/go-server/internal/config"
	"github.com/robalobadob/games/apps/go-server/internal/httpserver"
	"github.com/robalobadob/games/apps/go-server/internal/i18n"
	"github.com/robalobadob/games/apps/go-server/internal/logging"
	"github.com/robalobadob/games/apps/go-server/internal/metrics"
	"github.com/robalobadob/games/apps/go-server/internal/store"
	"github.com/robalobadob/games/apps/go-server/internal/words"
)

const shutdownTimeout = 5 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Loads configuration from the environment (and .env), opens the result store and serves the JSON API.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port, _ := cmd.Flags().GetString("port"); port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides PORT)")
	return cmd
}

func serve(ctx context.Context, cfg config.Config) error {
	logCloser := logging.Setup(cfg.Log, os.Stdout)
	defer logCloser.Close()

	catalog, err := words.Load(words.Sources{SpanishFile: cfg.SpanishWordsFile, EnglishFile: cfg.EnglishWordsFile})
	if err != nil {
		log.Error().Err(err).Msg("failed to load word lists")
		return err
	}
	es, en := catalog.Stats()
	log.Info().Int("spanish", es).Int("english", en).Msg("dictionaries loaded")
	for _, lang := range catalog.Embedded() {
		log.Warn().Str("lang", lang).Msg("using embedded sample word list; set WORDS_SPANISH_FILE/WORDS_ENGLISH_FILE for full dictionaries")
	}

	bundle, err := i18n.Load(cfg.DefaultLang)
	if err != nil {
		return fmt.Errorf("load locales: %w", err)
	}

	stores, err := openStores(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.ResultsBackend).Msg("failed to open result store")
		return err
	}
	defer stores.Close()

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Words:    catalog,
		I18n:     bundle,
		Results:  stores.results,
		Users:    stores.users,
		Sessions: store.NewMemorySessions(store.WithMaxSessions(cfg.MaxSessions)),
		Metrics:  metrics.New(),
		Logger:   log.Logger,
	})

	httpSrv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.ResultsBackend).Msg("starting go-server")
		serverErrors <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		log.Error().Err(err).Msg("server exited")
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Warn().Err(err).Dur("timeout", shutdownTimeout).Msg("graceful shutdown did not complete")
			return httpSrv.Close()
		}
		return nil
	}
}

// stores holds the opened persistence backends and what must be closed.
type stores struct {
	results store.Results
	users   store.Users
	closers []io.Closer
}

func (s *stores) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i].Close(); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}
}

// openStores selects the Results backend. Accounts live in SQLite for both
// the sqlite and redis backends, and in memory for the memory backend.
func openStores(ctx context.Context, cfg config.Config) (*stores, error) {
	s := &stores{}
	if cfg.ResultsBackend == config.BackendMemory {
		s.results = store.NewMemory()
		s.users = store.NewMemoryUsers()
		return s, nil
	}

	db, err := store.Open(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s.closers = append(s.closers, db)
	if err := store.Migrate(db); err != nil {
		s.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	s.users = store.NewSQLiteUsers(db)

	switch cfg.ResultsBackend {
	case config.BackendRedis:
		rdb := store.NewRedis(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			store.WithPrefix(cfg.Redis.Prefix),
			store.WithTTL(cfg.Redis.TTL),
		)
		s.closers = append(s.closers, rdb)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		defer cancel()
		if err := rdb.Ping(pingCtx); err != nil {
			s.Close()
			return nil, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		s.results = rdb
	default:
		s.results = store.NewSQLite(db)
	}
	return s, nil
}
