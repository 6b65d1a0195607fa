package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCompleter struct {
	text string
	err  error
	req  Request
}

func (s *staticCompleter) Complete(_ context.Context, req Request) (string, error) {
	s.req = req
	return s.text, s.err
}

func TestParseObjectToleratesProse(t *testing.T) {
	doc, err := ParseObject("Sure! Here you go:\n```json\n{\"price\": \"1234.5\", \"tags\": [\"a\", \" \", \"b\"]}\n```")
	require.NoError(t, err)

	assert.InDelta(t, 1234.5, doc.Get("price").Float(), 1e-9)
	assert.Equal(t, []string{"a", "b"}, Strings(doc.Get("tags")))
	assert.False(t, doc.Get("missing").Exists())
}

func TestParseObjectRejectsGarbage(t *testing.T) {
	for _, text := range []string{"", "no json here", "{broken", "} backwards {", `{"a": }`} {
		_, err := ParseObject(text)
		assert.ErrorIs(t, err, ErrGeneration, text)
	}
}

func TestCompleteObjectForcesJSON(t *testing.T) {
	c := &staticCompleter{text: `{"ok":true}`}

	doc, err := CompleteObject(context.Background(), c, Request{Operation: "test"})
	require.NoError(t, err)
	assert.True(t, c.req.JSON)
	assert.True(t, doc.Get("ok").Bool())

	c.err = ErrUnavailable
	_, err = CompleteObject(context.Background(), c, Request{})
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRecover(t *testing.T) {
	ctx := context.Background()

	r := Recover(ctx, "test", 7, nil, func() int { return 1 })
	assert.Equal(t, StatusGenerated, r.Status)
	assert.Equal(t, 7, r.Value)

	cause := errors.New("upstream")
	r = Recover(ctx, "test", 7, cause, func() int { return 1 })
	assert.Equal(t, StatusFallback, r.Status)
	assert.Equal(t, 1, r.Value)
	assert.ErrorIs(t, r.Err, cause)

	r = Recover[int](ctx, "test", 7, cause, nil)
	assert.Equal(t, StatusFailed, r.Status)
	assert.ErrorIs(t, r.Err, cause)
}

func TestMerge(t *testing.T) {
	assert.Equal(t, StatusGenerated, Merge())
	assert.Equal(t, StatusGenerated, Merge(StatusGenerated, StatusGenerated))
	assert.Equal(t, StatusFallback, Merge(StatusGenerated, StatusFallback))
	assert.Equal(t, StatusFailed, Merge(StatusFallback, StatusFailed, StatusGenerated))
}
