package games

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zhouzirui/gamehub/backend/internal/config"
)

func TestPoliciesFromConfig(t *testing.T) {
	p := PoliciesFromConfig(config.GamesConfig{QuizQuestions: 8, CharacterRounds: 12, CharacterHintFromRound: 9})
	assert.Equal(t, 8, p.Quiz.Questions)
	assert.Equal(t, 12, p.Character.Rounds)
	assert.Equal(t, 9, p.Character.HintFromRound)
	assert.Equal(t, DefaultPolicies().Glam, p.Glam)

	assert.Equal(t, DefaultPolicies(), PoliciesFromConfig(config.GamesConfig{}))
}
