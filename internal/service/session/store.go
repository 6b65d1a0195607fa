package session

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

var (
	ErrNotFound = errors.New("session not found or expired")
	ErrExists   = errors.New("session token already in use")
)

var sessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
	Name: "gamehub_sessions_expired_total",
	Help: "Sessions reaped after their idle TTL elapsed.",
})

// Store keeps game sessions keyed by token. Implementations copy sessions on
// the way in and out, so callers must Put after mutating.
type Store interface {
	Create(ctx context.Context, s *game.Session) error
	Get(ctx context.Context, token string) (*game.Session, error)
	Put(ctx context.Context, s *game.Session) error
	Delete(ctx context.Context, token string) error
	SweepExpired(ctx context.Context) (int, error)
	Len(ctx context.Context) (int, error)
}

// RegisterActiveGauge exposes the number of live sessions of store.
func RegisterActiveGauge(reg prometheus.Registerer, store Store) error {
	return reg.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "gamehub_sessions_active",
		Help: "Sessions currently held by the session store.",
	}, func() float64 {
		n, err := store.Len(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	}))
}

// RunJanitor sweeps expired sessions every interval until ctx is cancelled.
func RunJanitor(ctx context.Context, store Store, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger := log.With().Str("component", "session-janitor").Logger()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.SweepExpired(ctx)
			if err != nil {
				logger.Warn().Err(err).Msg("sweep failed")
				continue
			}
			if n > 0 {
				logger.Debug().Int("reaped", n).Msg("expired sessions removed")
			}
		}
	}
}
