package games

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
	"github.com/zhouzirui/gamehub/backend/internal/service/session"
)

// scriptedAI replays canned completions per operation. Operations without
// a script fail with ai.ErrUnavailable; the last reply of a script repeats.
type scriptedAI struct {
	mu        sync.Mutex
	replies   map[string][]string
	errs      map[string]error
	chunks    []string
	streamErr error
	calls     map[string]int
	requests  []ai.Request
}

func newScriptedAI() *scriptedAI {
	return &scriptedAI{
		replies: make(map[string][]string),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
}

func (s *scriptedAI) on(op string, replies ...string) *scriptedAI {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[op] = append(s.replies[op], replies...)
	return s
}

func (s *scriptedAI) fail(op string, err error) *scriptedAI {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[op] = err
	return s
}

func (s *scriptedAI) Complete(_ context.Context, req ai.Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[req.Operation]++
	s.requests = append(s.requests, req)
	if err := s.errs[req.Operation]; err != nil {
		return "", err
	}
	queue := s.replies[req.Operation]
	if len(queue) == 0 {
		return "", ai.ErrUnavailable
	}
	reply := queue[0]
	if len(queue) > 1 {
		s.replies[req.Operation] = queue[1:]
	}
	return reply, nil
}

func (s *scriptedAI) Stream(_ context.Context, req ai.Request) (*schema.StreamReader[*schema.Message], error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[req.Operation]++
	if s.streamErr != nil {
		return nil, s.streamErr
	}
	if len(s.chunks) == 0 {
		return nil, ai.ErrUnavailable
	}
	msgs := make([]*schema.Message, 0, len(s.chunks))
	for _, c := range s.chunks {
		msgs = append(msgs, schema.AssistantMessage(c, nil))
	}
	return schema.StreamReaderFromArray(msgs), nil
}

func (s *scriptedAI) callCount(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *scriptedAI) lastRequest(op string) (ai.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Operation == op {
			return s.requests[i], true
		}
	}
	return ai.Request{}, false
}

var errUpstream = errors.New("status 500")

func newTestFlow(t *testing.T) (*Flow, *session.MemoryStore) {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	return NewFlow(store), store
}

func loadSession(t *testing.T, store session.Store, token string) *game.Session {
	t.Helper()
	s, err := store.Get(context.Background(), token)
	require.NoError(t, err)
	return s
}
