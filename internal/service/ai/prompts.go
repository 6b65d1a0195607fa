package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
)

// Operation names, also used as metric labels.
const (
	OpQuiz               = "quiz.questions"
	OpCharacterCandidate = "character.candidates"
	OpCharacterTurn      = "character.turn"
	OpPriceProduct       = "price.product"
	OpPriceScenarios     = "price.scenarios"
	OpPriceForecast      = "price.forecast"
	OpDietQuestions      = "diet.questions"
	OpDietPlan           = "diet.plan"
	OpGlamCatalog        = "glam.catalog"
	OpGlamScore          = "glam.score"
	OpFortune            = "fortune"
)

// QA pairs a question with the player's answer.
type QA struct {
	Question string
	Answer   string
}

var (
	quizTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`Create {{.count}} very tough multiple-choice questions with exactly 4 options each for the given topic.
Every question must have one unambiguous correct option and a one-sentence explanation.
Return strict JSON: {"items":[{"q":"question","options":["a","b","c","d"],"answerIndex":0,"explanation":"why"}]}
answerIndex is the 0-based position of the correct option.`),
		schema.UserMessage(`Topic: {{.topic}}
{{- if .avoid}}
Do not reuse any of these recent questions:
{{- range .avoid}}
- {{.}}
{{- end}}
{{- end}}`),
	)

	characterCandidatesTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You pick famous people or characters for a 20-questions style guessing game.
Return strict JSON: {"candidates":[{"name":"full name","hints":["hint 1","hint 2","hint 3"],"facts":["keyword"]}]}
Suggest 6 candidates that most players would recognise. Hints must not contain the name.`),
		schema.UserMessage(`Category: {{.topic}}
{{- if .avoid}}
Avoid: {{.avoid}}
{{- end}}`),
	)

	characterTurnTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You are the host of a guessing game. The secret identity is "{{.secret}}" (category: {{.topic}}).
The player asks yes/no questions or makes a guess. This is turn {{.turn}} of {{.rounds}}.
Rules:
- Answer in at most one short sentence, normally "Yes.", "No." or "Maybe." with a few words.
- Never write the secret name or any part of it in "answer" or "hint".
- Set "isGuess" to true only when the player explicitly names a person, and copy that name into "guess".
{{- if .hintAllowed}}
- Add one short new clue in "hint". It must differ from these earlier clues: {{if .hintsGiven}}{{.hintsGiven}}{{else}}none{{end}}.
{{- else}}
- "hint" must be an empty string this turn.
{{- end}}
Return strict JSON: {"answer":"...","isGuess":false,"guess":"","hint":""}`),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage(`{{.message}}`),
	)

	productTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`Suggest one real consumer product sold in India for a price prediction game.
Return strict JSON: {"product":"name","price":12345,"currency":"INR"}
price is today's typical retail price as a plain number.`),
		schema.UserMessage(`Category: {{if .category}}{{.category}}{{else}}any{{end}}`),
	)

	scenarioTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`Write exactly 10 yes/no questions about future scenarios that would move the price of a product over the next 5 years
(costs, competition, regulation, demand, currency). Return strict JSON: {"questions":["...", "..."]}`),
		schema.UserMessage(`Product: {{.product}}, current price {{.price}} {{.currency}}.`),
	)

	forecastTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You are a pricing analyst. Given a product, its current price and the player's view of 10 scenarios,
estimate a plausible price 5 years from now. Return strict JSON: {"price":12345,"explanation":"two sentences"}`),
		schema.UserMessage(`Product: {{.product}}
Current price: {{.price}} {{.currency}}
Scenarios:
{{- range .answers}}
- {{.Question}} {{.Answer}}
{{- end}}`),
	)

	dietQuestionsTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You are a certified nutritionist preparing an intake form.
Write exactly 8 short questions that cover age, sex, activity level, diet style, allergies, goal, medical conditions and cuisine preferences.
Return strict JSON: {"questions":["...", "..."]}`),
		schema.UserMessage(`Create the questionnaire.`),
	)

	dietPlanTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You are a certified nutritionist. Create a practical, Indian-friendly meal plan in plain text with these sections:
Summary, Daily macro targets, One sample day, 7-day rotation, Tips, and a one-line disclaimer at the end.
Keep it safe and general; avoid medical claims.`),
		schema.UserMessage(`Intake answers:
{{- range .answers}}
- {{.Question}} {{.Answer}}
{{- end}}`),
	)

	glamCatalogTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You stock a personal-care shop for a budget shopping game.
Return strict JSON with exactly 30 items: {"items":[{"name":"...","price":499,"category":"...","eco":false,"description":"one short line"}]}
Prices are in INR, between 150 and 3000. Cover many different categories.`),
		schema.UserMessage(`Shopper: {{.gender}}, budget {{.budget}} INR.`),
	)

	glamScoreTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You judge a personal-care shopping challenge. Score the basket from 0 to 100 on budget use, category coverage,
eco-friendly picks, sensible combos (cleanser + moisturizer, shampoo + conditioner, sunscreen + serum) and speed.
Return strict JSON: {"score":0,"positives":["..."],"negatives":["..."],"summary":"one sentence"}`),
		schema.UserMessage(`Shopper: {{.gender}}
Budget: {{.budget}} INR, spent {{.spent}} INR in {{.elapsed}} seconds.
Basket:
{{- range .items}}
- {{.Name}} ({{.Category}}) {{.Price}} INR{{if .Eco}} eco{{end}}
{{- end}}`),
	)

	fortuneTemplate = prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(`You are a playful fortune-teller. Always return exactly 3 numbered, short, funny predictions. Keep it family-friendly.`),
		schema.UserMessage(`Make 3 funny predictions (2 sentences each) for {{.name}}, born in {{.month}}, who loves {{.hobby}} and adores {{.place}}.`),
	)
)

// Templates use schema.GoTemplate, which has no helper funcs; lists that
// need joining are joined before rendering.
func render(op string, tpl prompt.ChatTemplate, vars map[string]any) ([]*schema.Message, error) {
	msgs, err := tpl.Format(context.Background(), vars)
	if err != nil {
		return nil, fmt.Errorf("render %s prompt: %w", op, err)
	}
	return msgs, nil
}

// QuizPrompt asks for count questions on topic, avoiding recent ones.
func QuizPrompt(topic string, count int, avoid []string) (Request, error) {
	msgs, err := render(OpQuiz, quizTemplate, map[string]any{
		"topic": topic,
		"count": count,
		"avoid": avoid,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpQuiz, Messages: msgs, MaxTokens: 1800, JSON: true}, nil
}

// CharacterCandidatesPrompt asks for secret identities in topic.
func CharacterCandidatesPrompt(topic string, avoid []string) (Request, error) {
	msgs, err := render(OpCharacterCandidate, characterCandidatesTemplate, map[string]any{
		"topic": topic,
		"avoid": strings.Join(avoid, ", "),
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpCharacterCandidate, Messages: msgs, MaxTokens: 900, JSON: true}, nil
}

// CharacterTurn describes one question in a guessing session.
type CharacterTurn struct {
	Topic       string
	Secret      string
	History     []game.Exchange
	Message     string
	Turn        int
	Rounds      int
	HintAllowed bool
	HintsGiven  []string
}

// CharacterTurnPrompt replays the history as chat turns and asks for the
// host's JSON reply.
func CharacterTurnPrompt(t CharacterTurn) (Request, error) {
	history := make([]*schema.Message, 0, len(t.History)*2)
	for _, ex := range t.History {
		history = append(history, schema.UserMessage(ex.Question))
		history = append(history, schema.AssistantMessage(ex.Answer, nil))
	}

	msgs, err := render(OpCharacterTurn, characterTurnTemplate, map[string]any{
		"secret":      t.Secret,
		"topic":       t.Topic,
		"turn":        t.Turn,
		"rounds":      t.Rounds,
		"hintAllowed": t.HintAllowed,
		"hintsGiven":  strings.Join(t.HintsGiven, "; "),
		"history":     history,
		"message":     t.Message,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpCharacterTurn, Messages: msgs, Temperature: 0.4, MaxTokens: 200, JSON: true}, nil
}

// ProductPrompt asks for one product and its current price.
func ProductPrompt(category string) (Request, error) {
	msgs, err := render(OpPriceProduct, productTemplate, map[string]any{"category": category})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpPriceProduct, Messages: msgs, MaxTokens: 150, JSON: true}, nil
}

// ScenarioPrompt asks for the 10 yes/no scenario questions.
func ScenarioPrompt(product, currency string, price float64) (Request, error) {
	msgs, err := render(OpPriceScenarios, scenarioTemplate, map[string]any{
		"product":  product,
		"currency": currency,
		"price":    formatAmount(price),
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpPriceScenarios, Messages: msgs, MaxTokens: 700, JSON: true}, nil
}

// ForecastPrompt asks for the 5-year price given the player's answers.
func ForecastPrompt(product, currency string, price float64, answers []QA) (Request, error) {
	msgs, err := render(OpPriceForecast, forecastTemplate, map[string]any{
		"product":  product,
		"currency": currency,
		"price":    formatAmount(price),
		"answers":  answers,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpPriceForecast, Messages: msgs, Temperature: 0.4, MaxTokens: 300, JSON: true}, nil
}

// DietQuestionsPrompt asks for the 8 intake questions.
func DietQuestionsPrompt() (Request, error) {
	msgs, err := render(OpDietQuestions, dietQuestionsTemplate, map[string]any{})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpDietQuestions, Messages: msgs, MaxTokens: 500, JSON: true}, nil
}

// DietPlanPrompt asks for the plain-text plan.
func DietPlanPrompt(answers []QA) (Request, error) {
	msgs, err := render(OpDietPlan, dietPlanTemplate, map[string]any{"answers": answers})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpDietPlan, Messages: msgs, Temperature: 0.6, MaxTokens: 1800}, nil
}

// GlamCatalogPrompt asks for the 30-item shop.
func GlamCatalogPrompt(gender string, budget int) (Request, error) {
	msgs, err := render(OpGlamCatalog, glamCatalogTemplate, map[string]any{
		"gender": gender,
		"budget": budget,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpGlamCatalog, Messages: msgs, MaxTokens: 3000, JSON: true}, nil
}

// GlamScorePrompt asks the judge to score a basket.
func GlamScorePrompt(gender string, budget, spent int, elapsedSeconds int, items []game.GlamItem) (Request, error) {
	msgs, err := render(OpGlamScore, glamScoreTemplate, map[string]any{
		"gender":  gender,
		"budget":  budget,
		"spent":   spent,
		"elapsed": elapsedSeconds,
		"items":   items,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpGlamScore, Messages: msgs, Temperature: 0.3, MaxTokens: 500, JSON: true}, nil
}

// FortunePrompt asks for three funny predictions.
func FortunePrompt(name, month, place, hobby string) (Request, error) {
	msgs, err := render(OpFortune, fortuneTemplate, map[string]any{
		"name":  name,
		"month": month,
		"place": place,
		"hobby": hobby,
	})
	if err != nil {
		return Request{}, err
	}
	return Request{Operation: OpFortune, Messages: msgs, MaxTokens: 400}, nil
}

func formatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
