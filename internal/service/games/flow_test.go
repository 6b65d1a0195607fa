package games

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

func TestBeginIssuesFreshTokens(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		s, err := flow.Begin(ctx, game.KindDiet, 1, func(s *game.Session) { s.Diet = &game.DietState{} })
		require.NoError(t, err)
		_, dup := seen[s.Token]
		require.False(t, dup, "token %s issued twice", s.Token)
		seen[s.Token] = struct{}{}
	}
}

func TestBeginRetriesOnCollision(t *testing.T) {
	flow, store := newTestFlow(t)
	ctx := context.Background()

	tokens := []string{"taken", "taken", "fresh"}
	flow.newToken = func() string {
		tok := tokens[0]
		tokens = tokens[1:]
		return tok
	}
	require.NoError(t, store.Create(ctx, &game.Session{Token: "taken", Kind: game.KindDiet, RoundsMax: 1}))

	s, err := flow.Begin(ctx, game.KindDiet, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, "fresh", s.Token)
}

func TestStepUnknownOrForeignToken(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()
	noop := func(*game.Session) (Decision, error) { return Continue, nil }

	assert.ErrorIs(t, flow.Step(ctx, "", game.KindQuiz, noop), ErrSessionNotFound)
	assert.ErrorIs(t, flow.Step(ctx, "missing", game.KindQuiz, noop), ErrSessionNotFound)

	s, err := flow.Begin(ctx, game.KindDiet, 1, func(s *game.Session) { s.Diet = &game.DietState{} })
	require.NoError(t, err)
	assert.ErrorIs(t, flow.Step(ctx, s.Token, game.KindQuiz, noop), ErrSessionNotFound)
}

func TestStepErrorLeavesSessionUntouched(t *testing.T) {
	flow, store := newTestFlow(t)
	ctx := context.Background()

	s, err := flow.Begin(ctx, game.KindQuiz, 3, func(s *game.Session) { s.Quiz = &game.QuizState{} })
	require.NoError(t, err)

	boom := errors.New("boom")
	err = flow.Step(ctx, s.Token, game.KindQuiz, func(s *game.Session) (Decision, error) {
		s.Quiz.Score = 99
		_ = s.Advance()
		return Finish, boom
	})
	assert.ErrorIs(t, err, boom)

	stored := loadSession(t, store, s.Token)
	assert.Equal(t, 0, stored.RoundIndex)
	assert.Equal(t, 0, stored.Quiz.Score)
}

func TestStepFinishInvalidatesToken(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	s, err := flow.Begin(ctx, game.KindDiet, 1, func(s *game.Session) { s.Diet = &game.DietState{} })
	require.NoError(t, err)

	require.NoError(t, flow.Step(ctx, s.Token, game.KindDiet, func(*game.Session) (Decision, error) { return Finish, nil }))
	err = flow.Step(ctx, s.Token, game.KindDiet, func(*game.Session) (Decision, error) { return Continue, nil })
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStepSerializesConcurrentMutations(t *testing.T) {
	flow, store := newTestFlow(t)
	ctx := context.Background()

	const workers = 25
	s, err := flow.Begin(ctx, game.KindQuiz, workers, func(s *game.Session) { s.Quiz = &game.QuizState{} })
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := flow.Step(ctx, s.Token, game.KindQuiz, func(s *game.Session) (Decision, error) {
				s.Quiz.Score++
				return Continue, s.Advance()
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored := loadSession(t, store, s.Token)
	assert.Equal(t, workers, stored.RoundIndex)
	assert.Equal(t, workers, stored.Quiz.Score)
}

func TestFlowPeek(t *testing.T) {
	flow, _ := newTestFlow(t)
	ctx := context.Background()

	s, err := flow.Begin(ctx, game.KindDiet, 1, nil)
	require.NoError(t, err)

	got, err := flow.Peek(ctx, s.Token, game.KindDiet)
	require.NoError(t, err)
	assert.Equal(t, s.Token, got.Token)

	_, err = flow.Peek(ctx, s.Token, game.KindQuiz)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = flow.Peek(ctx, "", game.KindDiet)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
