package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceStopsAtRoundsMax(t *testing.T) {
	s := &Session{RoundsMax: 2}

	require.NoError(t, s.Advance())
	require.NoError(t, s.Advance())
	assert.True(t, s.Finished())
	assert.ErrorIs(t, s.Advance(), ErrRoundsExhausted)
	assert.Equal(t, 2, s.RoundIndex)
	assert.Equal(t, 0, s.RoundsLeft())
}

func TestCloneIsDeep(t *testing.T) {
	forecast := 120.0
	s := &Session{
		Kind: KindPrice,
		Price: &PriceState{
			Questions: []string{"a"},
			Answers:   []bool{true},
			Forecast:  &forecast,
		},
		Quiz: &QuizState{Questions: []QuizQuestion{{Options: []string{"x", "y"}}}},
	}

	cp := s.Clone()
	cp.Price.Questions[0] = "changed"
	cp.Price.Answers[0] = false
	*cp.Price.Forecast = 1
	cp.Quiz.Questions[0].Options[0] = "changed"

	assert.Equal(t, "a", s.Price.Questions[0])
	assert.True(t, s.Price.Answers[0])
	assert.Equal(t, 120.0, *s.Price.Forecast)
	assert.Equal(t, "x", s.Quiz.Questions[0].Options[0])
}
