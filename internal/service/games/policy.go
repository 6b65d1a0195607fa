package games

import "github.com/zhouzirui/gamehub/backend/internal/config"

// QuizPolicy bounds a quiz.
type QuizPolicy struct {
	Questions      int
	Options        int
	RecentPerTopic int
}

// CharacterPolicy bounds a guessing session and its hints.
type CharacterPolicy struct {
	Rounds         int
	HintFromRound  int
	RecentPerTopic int
}

// HintAllowed reports whether turn (1-based) may carry a hint.
func (p CharacterPolicy) HintAllowed(turn int) bool {
	return turn >= p.HintFromRound && turn <= p.Rounds
}

// PricePolicy describes the prediction game.
type PricePolicy struct {
	Scenarios      int
	Tolerance      float64
	FallbackGrowth float64
}

// Wins reports whether guess is within the relative tolerance of forecast.
func (p PricePolicy) Wins(guess, forecast float64) bool {
	diff := guess - forecast
	if diff < 0 {
		diff = -diff
	}
	limit := forecast * p.Tolerance
	if limit < 0 {
		limit = -limit
	}
	return diff <= limit
}

// DietPolicy sets the questionnaire length.
type DietPolicy struct {
	Questions int
}

// GlamPolicy describes the shopping challenge.
type GlamPolicy struct {
	Items     int
	MinBudget int
	MinPicks  int
	WinScore  int
}

// Policies groups every game's policy.
type Policies struct {
	Quiz      QuizPolicy
	Character CharacterPolicy
	Price     PricePolicy
	Diet      DietPolicy
	Glam      GlamPolicy
}

// DefaultPolicies returns the stock rules.
func DefaultPolicies() Policies {
	return Policies{
		Quiz:      QuizPolicy{Questions: 5, Options: 4, RecentPerTopic: 25},
		Character: CharacterPolicy{Rounds: 10, HintFromRound: 7, RecentPerTopic: 8},
		Price:     PricePolicy{Scenarios: 10, Tolerance: 0.6, FallbackGrowth: 1.2},
		Diet:      DietPolicy{Questions: 8},
		Glam:      GlamPolicy{Items: 30, MinBudget: 10000, MinPicks: 12, WinScore: 75},
	}
}

// PoliciesFromConfig overlays the configurable knobs on the defaults.
func PoliciesFromConfig(cfg config.GamesConfig) Policies {
	p := DefaultPolicies()
	if cfg.QuizQuestions > 0 {
		p.Quiz.Questions = cfg.QuizQuestions
	}
	if cfg.CharacterRounds > 0 {
		p.Character.Rounds = cfg.CharacterRounds
	}
	if cfg.CharacterHintFromRound > 0 {
		p.Character.HintFromRound = cfg.CharacterHintFromRound
	}
	return p
}
