package catalog

import "github.com/zhouzirui/gamehub/backend/internal/model/game"

// Game describes one playable game to the frontend. Rounds is zero for
// one-shot games.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Tagline     string   `json:"tagline"`
	Description string   `json:"description"`
	Rounds      int      `json:"rounds,omitempty"`
	Endpoints   []string `json:"endpoints"`
	Stateful    bool     `json:"stateful"`
}

// Rounds carries the configurable round counts shown in the catalog.
type Rounds struct {
	Quiz      int
	Character int
}

// Seed returns the hub's games in display order.
func Seed(rounds Rounds) []Game {
	return []Game{
		{
			ID:          string(game.KindQuiz),
			Name:        "AI Quiz",
			Tagline:     "Multiple choice on any topic",
			Description: "Pick a topic and answer fresh questions one at a time. Each answer is checked instantly with a short explanation.",
			Rounds:      rounds.Quiz,
			Endpoints:   []string{"POST /api/quiz/start", "POST /api/quiz/answer"},
			Stateful:    true,
		},
		{
			ID:          string(game.KindCharacter),
			Name:        "Guess the Character",
			Tagline:     "Twenty questions, but ten",
			Description: "The AI thinks of someone from your topic. Ask yes/no questions or type \"guess: name\"; clues unlock in the last rounds.",
			Rounds:      rounds.Character,
			Endpoints:   []string{"POST /api/character/start", "POST /api/character/turn", "GET /api/character/ws/{sessionID}"},
			Stateful:    true,
		},
		{
			ID:          string(game.KindPrice),
			Name:        "Future Price",
			Tagline:     "Where will the price be in five years?",
			Description: "Answer ten market scenarios, then guess the AI's five-year forecast. Land within 60% to win.",
			Rounds:      2,
			Endpoints:   []string{"POST /api/price/start", "POST /api/price/answers", "POST /api/price/guess"},
			Stateful:    true,
		},
		{
			ID:          string(game.KindDiet),
			Name:        "Healthy Diet",
			Tagline:     "A meal plan from eight answers",
			Description: "Answer a short intake questionnaire and get a balanced, Indian-friendly plan with a 7-day rotation.",
			Rounds:      1,
			Endpoints:   []string{"POST /api/diet/start", "POST /api/diet/plan"},
			Stateful:    true,
		},
		{
			ID:          string(game.KindGlam),
			Name:        "Glam Builder",
			Tagline:     "Shop smart on a budget",
			Description: "Fill a personal-care basket from a 30-item shop without blowing the budget. Pick at least 12 items to be judged.",
			Rounds:      1,
			Endpoints:   []string{"POST /api/glam/start", "POST /api/glam/score"},
			Stateful:    true,
		},
		{
			ID:          "fortune",
			Name:        "Fortune Teller",
			Tagline:     "Three silly predictions",
			Description: "Tell the oracle your name, birth month, favourite place and hobby.",
			Endpoints:   []string{"POST /api/fortune", "GET /api/fortune/stream"},
		},
	}
}
