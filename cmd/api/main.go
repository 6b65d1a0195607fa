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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/config"
	"github.com/zhouzirui/gamehub/backend/internal/handler"
	"github.com/zhouzirui/gamehub/backend/internal/logging"
	"github.com/zhouzirui/gamehub/backend/internal/model/catalog"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
	"github.com/zhouzirui/gamehub/backend/internal/service/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := logging.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("failed to initialise logging")
	}
	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file, using process environment only")
	}

	store, closeStore, err := newSessionStore(ctx, cfg.Session)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise session store")
	}
	defer closeStore()

	if err := session.RegisterActiveGauge(prometheus.DefaultRegisterer, store); err != nil {
		log.Warn().Err(err).Msg("failed to register session gauge")
	}
	go session.RunJanitor(ctx, store, cfg.Session.SweepInterval)

	gateway, err := ai.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialise AI gateway")
	}

	router := handler.NewRouter(handler.Deps{
		Games:          games.NewService(store, gateway, games.PoliciesFromConfig(cfg.Games)),
		Catalog:        catalog.NewMemoryStore(catalog.Seed(catalog.Rounds{Quiz: cfg.Games.QuizQuestions, Character: cfg.Games.CharacterRounds})),
		Sessions:       store,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AIEnabled:      gateway.Enabled(),
	})

	startServer(ctx, cfg.Server, router)
}

// newSessionStore picks Redis when REDIS_URL is set and memory otherwise.
func newSessionStore(ctx context.Context, cfg config.SessionConfig) (session.Store, func(), error) {
	if cfg.RedisURL == "" {
		log.Info().Dur("ttl", cfg.TTL).Msg("using in-memory session store")
		return session.NewMemoryStore(cfg.TTL), func() {}, nil
	}

	rdb, err := session.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Dur("ttl", cfg.TTL).Msg("using redis session store")
	return session.NewRedisStore(rdb, cfg.TTL), func() { _ = rdb.Close() }, nil
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	addr := serverCfg.Addr
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", addr).Msg("AI Games Hub listening")
	if err := runServer(ctx, srv); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
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
