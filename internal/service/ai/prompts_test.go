package ai

import (
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

func joined(req Request) string {
	var sb strings.Builder
	for _, m := range req.Messages {
		sb.WriteString(m.Content)
		sb.WriteString("\n")
	}
	return sb.String()
}

func TestQuizPrompt(t *testing.T) {
	req, err := QuizPrompt("space", 5, []string{"Which star is closest?"})
	require.NoError(t, err)

	assert.Equal(t, OpQuiz, req.Operation)
	assert.True(t, req.JSON)
	require.Len(t, req.Messages, 2)
	assert.Equal(t, schema.System, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "Create 5 very tough")
	assert.Contains(t, req.Messages[1].Content, "Topic: space")
	assert.Contains(t, req.Messages[1].Content, "- Which star is closest?")

	req, err = QuizPrompt("java", 5, nil)
	require.NoError(t, err)
	assert.NotContains(t, joined(req), "recent questions")
}

func TestCharacterTurnPromptReplaysHistory(t *testing.T) {
	req, err := CharacterTurnPrompt(CharacterTurn{
		Topic:  "Science",
		Secret: "Marie Curie",
		History: []game.Exchange{
			{Question: "Is it a woman?", Answer: "Yes.", At: time.Now()},
		},
		Message: "Did she win a Nobel?",
		Turn:    2,
		Rounds:  10,
	})
	require.NoError(t, err)

	require.Len(t, req.Messages, 4)
	assert.Equal(t, schema.User, req.Messages[1].Role)
	assert.Equal(t, schema.Assistant, req.Messages[2].Role)
	assert.Equal(t, "Did she win a Nobel?", req.Messages[3].Content)
	assert.Contains(t, req.Messages[0].Content, `"hint" must be an empty string`)

	req, err = CharacterTurnPrompt(CharacterTurn{
		Topic: "Science", Secret: "Marie Curie", Message: "hint?", Turn: 8, Rounds: 10,
		HintAllowed: true, HintsGiven: []string{"Nobel laureate"},
	})
	require.NoError(t, err)
	assert.Contains(t, req.Messages[0].Content, "earlier clues: Nobel laureate")
}

func TestEveryPromptRenders(t *testing.T) {
	qa := []QA{{Question: "Will costs rise?", Answer: "yes"}}
	builders := map[string]func() (Request, error){
		OpCharacterCandidate: func() (Request, error) { return CharacterCandidatesPrompt("Tech", []string{"Elon Musk"}) },
		OpPriceProduct:       func() (Request, error) { return ProductPrompt("") },
		OpPriceScenarios:     func() (Request, error) { return ScenarioPrompt("Running Shoes", "INR", 5999) },
		OpPriceForecast:      func() (Request, error) { return ForecastPrompt("Running Shoes", "INR", 5999, qa) },
		OpDietQuestions:      DietQuestionsPrompt,
		OpDietPlan:           func() (Request, error) { return DietPlanPrompt(qa) },
		OpGlamCatalog:        func() (Request, error) { return GlamCatalogPrompt("female", 12000) },
		OpGlamScore: func() (Request, error) {
			return GlamScorePrompt("female", 12000, 9000, 95, []game.GlamItem{{Name: "Cleanser", Category: "Cleanser", Price: 499, Eco: true}})
		},
		OpFortune: func() (Request, error) { return FortunePrompt("Asha", "May", "Goa", "chess") },
	}

	for op, build := range builders {
		req, err := build()
		require.NoError(t, err, op)
		assert.Equal(t, op, req.Operation)
		assert.NotEmpty(t, req.Messages, op)
	}
}

func TestForecastPromptListsAnswers(t *testing.T) {
	req, err := ForecastPrompt("Wireless Earbuds", "INR", 3499.5, []QA{
		{Question: "Will import duties increase?", Answer: "yes"},
		{Question: "Will a recession hit the market?", Answer: "no"},
	})
	require.NoError(t, err)

	text := joined(req)
	assert.Contains(t, text, "Current price: 3499.5 INR")
	assert.Contains(t, text, "- Will import duties increase? yes")
	assert.Contains(t, text, "- Will a recession hit the market? no")
}
