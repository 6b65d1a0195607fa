package games

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/session"
)

// Decision tells Step what to do with the session after a step.
type Decision int

const (
	// Continue persists the mutated session.
	Continue Decision = iota
	// Finish deletes the session; its token is no longer valid.
	Finish
)

const maxTokenAttempts = 3

var gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "gamehub_games_finished_total",
	Help: "Finished games by game and outcome.",
}, []string{"game", "outcome"})

func recordOutcome(kind game.Kind, outcome string) {
	gamesFinished.WithLabelValues(string(kind), outcome).Inc()
}

// Flow is the session lifecycle shared by every game: create with a fresh
// token, then mutate one step at a time under a per-token lock.
type Flow struct {
	store    session.Store
	locks    *session.Locker
	newToken func() string
}

// NewFlow wires a Flow to store.
func NewFlow(store session.Store) *Flow {
	return &Flow{
		store:    store,
		locks:    session.NewLocker(),
		newToken: uuid.NewString,
	}
}

// Begin creates a session of kind. init fills the kind-specific payload.
func (f *Flow) Begin(ctx context.Context, kind game.Kind, roundsMax int, init func(s *game.Session)) (*game.Session, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		s := &game.Session{
			Token:     f.newToken(),
			Kind:      kind,
			RoundsMax: roundsMax,
			CreatedAt: time.Now().UTC(),
		}
		if init != nil {
			init(s)
		}

		err := f.store.Create(ctx, s)
		if errors.Is(err, session.ErrExists) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("create %s session: %w", kind, err)
		}
		return s, nil
	}
	return nil, fmt.Errorf("create %s session: %w", kind, session.ErrExists)
}

// Step loads the session behind token, runs fn with exclusive access and
// applies its Decision. When fn fails the stored session is left untouched.
func (f *Flow) Step(ctx context.Context, token string, kind game.Kind, fn func(s *game.Session) (Decision, error)) error {
	if token == "" {
		return ErrSessionNotFound
	}

	unlock := f.locks.Lock(token)
	defer unlock()

	s, err := f.store.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return ErrSessionNotFound
	}
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if s.Kind != kind {
		return ErrSessionNotFound
	}

	decision, err := fn(s)
	if err != nil {
		return err
	}

	switch decision {
	case Finish:
		if err := f.store.Delete(ctx, token); err != nil && !errors.Is(err, session.ErrNotFound) {
			return fmt.Errorf("delete session: %w", err)
		}
	default:
		if err := f.store.Put(ctx, s); err != nil {
			if errors.Is(err, session.ErrNotFound) {
				return ErrSessionNotFound
			}
			return fmt.Errorf("save session: %w", err)
		}
	}
	return nil
}

// Peek returns a copy of the session behind token without locking it.
func (f *Flow) Peek(ctx context.Context, token string, kind game.Kind) (*game.Session, error) {
	if token == "" {
		return nil, ErrSessionNotFound
	}
	s, err := f.store.Get(ctx, token)
	if errors.Is(err, session.ErrNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s.Kind != kind {
		return nil, ErrSessionNotFound
	}
	return s, nil
}
