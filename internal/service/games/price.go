package games

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

// The price game has two steps: the scenario answers and the guess.
const priceSteps = 2

// PriceStart is the product and its scenario questions.
type PriceStart struct {
	Token        string    `json:"token"`
	Product      string    `json:"product"`
	CurrentPrice float64   `json:"currentPrice"`
	Currency     string    `json:"currency"`
	Questions    []string  `json:"questions"`
	Source       ai.Status `json:"source,omitempty"`
}

// PriceAck confirms the answers; the forecast stays on the server.
type PriceAck struct {
	Received int       `json:"received"`
	Source   ai.Status `json:"source,omitempty"`
}

// PriceResult reveals the forecast after the guess.
type PriceResult struct {
	Win         bool    `json:"win"`
	PlayerGuess float64 `json:"playerGuess"`
	AIPrice     float64 `json:"aiPrice"`
	Currency    string  `json:"currency"`
	Explanation string  `json:"explanation,omitempty"`
}

type product struct {
	Name     string
	Price    float64
	Currency string
}

type forecast struct {
	Price       float64
	Explanation string
}

// Price runs the five-year price prediction game.
type Price struct {
	flow   *Flow
	ai     ai.Completer
	policy PricePolicy
	intn   func(n int) int
}

// NewPrice creates the price controller.
func NewPrice(flow *Flow, completer ai.Completer, policy PricePolicy) *Price {
	return &Price{flow: flow, ai: completer, policy: policy, intn: rand.Intn}
}

// Start suggests a product and the scenarios to answer.
func (p *Price) Start(ctx context.Context, category string) (*PriceStart, error) {
	category = strings.TrimSpace(category)

	suggested := p.product(ctx, category)
	prod := suggested.Value
	scenarios := p.scenarios(ctx, prod)
	questions := scenarios.Value

	s, err := p.flow.Begin(ctx, game.KindPrice, priceSteps, func(s *game.Session) {
		s.Price = &game.PriceState{
			Category:     category,
			Product:      prod.Name,
			Currency:     prod.Currency,
			CurrentPrice: prod.Price,
			Questions:    questions,
		}
	})
	if err != nil {
		return nil, err
	}

	return &PriceStart{
		Token:        s.Token,
		Product:      prod.Name,
		CurrentPrice: prod.Price,
		Currency:     prod.Currency,
		Questions:    append([]string(nil), questions...),
		Source:       ai.Merge(suggested.Status, scenarios.Status),
	}, nil
}

// SubmitAnswers records the yes/no answers and computes the hidden forecast.
func (p *Price) SubmitAnswers(ctx context.Context, token string, answers []bool) (*PriceAck, error) {
	if len(answers) != p.policy.Scenarios {
		return nil, invalid("answers", "expected exactly %d answers, got %d", p.policy.Scenarios, len(answers))
	}

	var source ai.Status
	err := p.flow.Step(ctx, token, game.KindPrice, func(s *game.Session) (Decision, error) {
		st := s.Price
		if st == nil {
			return Finish, ErrSessionNotFound
		}
		if len(st.Answers) > 0 || st.Forecast != nil {
			return Continue, ErrAnswersAlreadySubmitted
		}

		forecasted := p.forecast(ctx, st, answers)
		fc := forecasted.Value
		source = forecasted.Status
		value := fc.Price
		st.Answers = append([]bool(nil), answers...)
		st.Forecast = &value
		st.Explanation = fc.Explanation
		if err := s.Advance(); err != nil {
			return Continue, err
		}
		return Continue, nil
	})
	if err != nil {
		return nil, err
	}
	return &PriceAck{Received: len(answers), Source: source}, nil
}

// Guess compares the player's guess with the forecast and ends the game.
func (p *Price) Guess(ctx context.Context, token string, value float64) (*PriceResult, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, invalid("guess", "must be a finite number")
	}

	var resp *PriceResult
	err := p.flow.Step(ctx, token, game.KindPrice, func(s *game.Session) (Decision, error) {
		st := s.Price
		if st == nil {
			return Finish, ErrSessionNotFound
		}
		if st.Forecast == nil {
			return Continue, ErrForecastNotReady
		}

		win := p.policy.Wins(value, *st.Forecast)
		resp = &PriceResult{
			Win:         win,
			PlayerGuess: value,
			AIPrice:     *st.Forecast,
			Currency:    st.Currency,
			Explanation: st.Explanation,
		}
		_ = s.Advance()

		outcome := "lose"
		if win {
			outcome = "win"
		}
		recordOutcome(game.KindPrice, outcome)
		return Finish, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (p *Price) product(ctx context.Context, category string) ai.Result[product] {
	fallback := func() product {
		fp := fallbackProducts[p.intn(len(fallbackProducts))]
		return product{Name: fp.Name, Price: fp.Price, Currency: fallbackCurrency}
	}

	req, err := ai.ProductPrompt(category)
	if err != nil {
		return ai.Recover(ctx, ai.OpPriceProduct, product{}, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, p.ai, req)
	if err != nil {
		return ai.Recover(ctx, ai.OpPriceProduct, product{}, err, fallback)
	}

	prod := product{
		Name:     strings.TrimSpace(doc.Get("product").String()),
		Price:    roundMoney(doc.Get("price").Float()),
		Currency: normalizeCurrency(doc.Get("currency").String()),
	}
	if prod.Name == "" || !positiveFinite(prod.Price) {
		return ai.Recover(ctx, ai.OpPriceProduct, product{}, fmt.Errorf("%w: unusable product %q", ai.ErrGeneration, doc.Raw), fallback)
	}
	return ai.Generated(prod)
}

func (p *Price) scenarios(ctx context.Context, prod product) ai.Result[[]string] {
	n := p.policy.Scenarios
	fallback := func() []string { return append([]string(nil), fallbackScenarios[:n]...) }

	req, err := ai.ScenarioPrompt(prod.Name, prod.Currency, prod.Price)
	if err != nil {
		return ai.Recover[[]string](ctx, ai.OpPriceScenarios, nil, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, p.ai, req)
	if err != nil {
		return ai.Recover[[]string](ctx, ai.OpPriceScenarios, nil, err, fallback)
	}

	questions := ai.Strings(doc.Get("questions"))
	if len(questions) < n {
		return ai.Recover[[]string](ctx, ai.OpPriceScenarios, nil,
			fmt.Errorf("%w: got %d scenarios, want %d", ai.ErrGeneration, len(questions), n), fallback)
	}
	return ai.Generated(questions[:n])
}

func (p *Price) forecast(ctx context.Context, st *game.PriceState, answers []bool) ai.Result[forecast] {
	fallback := func() forecast {
		return forecast{
			Price:       roundMoney(st.CurrentPrice * p.policy.FallbackGrowth),
			Explanation: fallbackForecastExplanation,
		}
	}

	pairs := make([]ai.QA, len(st.Questions))
	for i, q := range st.Questions {
		a := "no"
		if i < len(answers) && answers[i] {
			a = "yes"
		}
		pairs[i] = ai.QA{Question: q, Answer: a}
	}

	req, err := ai.ForecastPrompt(st.Product, st.Currency, st.CurrentPrice, pairs)
	if err != nil {
		return ai.Recover(ctx, ai.OpPriceForecast, forecast{}, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, p.ai, req)
	if err != nil {
		return ai.Recover(ctx, ai.OpPriceForecast, forecast{}, err, fallback)
	}

	fc := forecast{
		Price:       roundMoney(doc.Get("price").Float()),
		Explanation: strings.TrimSpace(doc.Get("explanation").String()),
	}
	if !positiveFinite(fc.Price) {
		return ai.Recover(ctx, ai.OpPriceForecast, forecast{}, fmt.Errorf("%w: unusable forecast %q", ai.ErrGeneration, doc.Get("price").Raw), fallback)
	}
	return ai.Generated(fc)
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

func normalizeCurrency(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if len(c) != 3 {
		return fallbackCurrency
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return fallbackCurrency
		}
	}
	return c
}
