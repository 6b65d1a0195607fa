package games

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

// GlamOffer is a catalog item with the 0-based index the player selects by.
type GlamOffer struct {
	ID int `json:"id"`
	game.GlamItem
}

// GlamStart is the shop handed to the player.
type GlamStart struct {
	Token     string      `json:"token"`
	BudgetINR int         `json:"budgetInr"`
	Items     []GlamOffer `json:"items"`
	Source    ai.Status   `json:"source,omitempty"`
}

// GlamScore is the verdict on a basket.
type GlamScore struct {
	Done       bool      `json:"done"`
	Win        bool      `json:"win"`
	Score      int       `json:"score"`
	Positives  []string  `json:"positives"`
	Negatives  []string  `json:"negatives"`
	Summary    string    `json:"summary"`
	Spent      int       `json:"spent"`
	Budget     int       `json:"budget"`
	Picked     int       `json:"picked"`
	Categories int       `json:"categories"`
	EcoPicks   int       `json:"ecoPicks"`
	Source     ai.Status `json:"source,omitempty"`
}

type glamVerdict struct {
	Score     int
	Positives []string
	Negatives []string
	Summary   string
}

// Glam runs the budget shopping challenge.
type Glam struct {
	flow   *Flow
	ai     ai.Completer
	policy GlamPolicy
}

// NewGlam creates the glam controller.
func NewGlam(flow *Flow, completer ai.Completer, policy GlamPolicy) *Glam {
	return &Glam{flow: flow, ai: completer, policy: policy}
}

// Start clamps the budget and stocks the shop.
func (g *Glam) Start(ctx context.Context, gender string, budget int) (*GlamStart, error) {
	gender = strings.ToLower(strings.TrimSpace(gender))
	if gender == "" {
		gender = "unisex"
	}
	if budget < g.policy.MinBudget {
		budget = g.policy.MinBudget
	}

	stocked := g.catalog(ctx, gender, budget)
	items := stocked.Value

	s, err := g.flow.Begin(ctx, game.KindGlam, 1, func(s *game.Session) {
		s.Glam = &game.GlamState{Gender: gender, Budget: budget, Items: items}
	})
	if err != nil {
		return nil, err
	}

	offers := make([]GlamOffer, len(items))
	for i, item := range items {
		offers[i] = GlamOffer{ID: i, GlamItem: item}
	}
	return &GlamStart{Token: s.Token, BudgetINR: budget, Items: offers, Source: stocked.Status}, nil
}

// Score judges the selected items and ends the session. Fewer than
// MinPicks valid items score zero without consulting the model.
func (g *Glam) Score(ctx context.Context, token string, selected []int, elapsedSeconds int) (*GlamScore, error) {
	if elapsedSeconds < 0 {
		return nil, invalid("timeTaken", "must not be negative")
	}

	var resp *GlamScore
	err := g.flow.Step(ctx, token, game.KindGlam, func(s *game.Session) (Decision, error) {
		st := s.Glam
		if st == nil {
			return Finish, ErrSessionNotFound
		}

		basket := pickItems(st.Items, selected)
		resp = summarizeBasket(basket, st.Budget)
		resp.Done = true
		_ = s.Advance()

		if len(basket) < g.policy.MinPicks {
			resp.Negatives = []string{fmt.Sprintf("You picked only %d valid items; at least %d are needed to be scored.", len(basket), g.policy.MinPicks)}
			resp.Summary = "Not enough items to judge this basket."
			recordOutcome(game.KindGlam, "lose")
			return Finish, nil
		}

		judged := g.judge(ctx, st, basket, resp.Spent, elapsedSeconds)
		verdict := judged.Value
		resp.Source = judged.Status
		resp.Score = verdict.Score
		resp.Positives = nonNil(verdict.Positives)
		resp.Negatives = nonNil(verdict.Negatives)
		resp.Summary = verdict.Summary
		resp.Win = resp.Score >= g.policy.WinScore

		outcome := "lose"
		if resp.Win {
			outcome = "win"
		}
		recordOutcome(game.KindGlam, outcome)
		return Finish, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// pickItems drops duplicate and out-of-range indices, keeping first-seen order.
func pickItems(items []game.GlamItem, selected []int) []game.GlamItem {
	seen := make(map[int]struct{}, len(selected))
	basket := make([]game.GlamItem, 0, len(selected))
	for _, idx := range selected {
		if idx < 0 || idx >= len(items) {
			continue
		}
		if _, dup := seen[idx]; dup {
			continue
		}
		seen[idx] = struct{}{}
		basket = append(basket, items[idx])
	}
	return basket
}

func summarizeBasket(basket []game.GlamItem, budget int) *GlamScore {
	categories := make(map[string]struct{})
	out := &GlamScore{
		Budget:    budget,
		Picked:    len(basket),
		Positives: []string{},
		Negatives: []string{},
	}
	for _, item := range basket {
		out.Spent += item.Price
		categories[strings.ToLower(item.Category)] = struct{}{}
		if item.Eco {
			out.EcoPicks++
		}
	}
	out.Categories = len(categories)
	return out
}

func (g *Glam) judge(ctx context.Context, st *game.GlamState, basket []game.GlamItem, spent, elapsed int) ai.Result[glamVerdict] {
	// A failed judge scores zero with no remarks.
	failClosed := func() glamVerdict { return glamVerdict{} }

	req, err := ai.GlamScorePrompt(st.Gender, st.Budget, spent, elapsed, basket)
	if err != nil {
		return ai.Recover(ctx, ai.OpGlamScore, glamVerdict{}, err, failClosed)
	}
	doc, err := ai.CompleteObject(ctx, g.ai, req)
	if err != nil {
		return ai.Recover(ctx, ai.OpGlamScore, glamVerdict{}, err, failClosed)
	}

	raw := doc.Get("score")
	if raw.Type != gjson.Number && raw.Type != gjson.String {
		return ai.Recover(ctx, ai.OpGlamScore, glamVerdict{}, fmt.Errorf("%w: missing score", ai.ErrGeneration), failClosed)
	}
	score := raw.Float()
	if math.IsNaN(score) {
		score = 0
	}

	return ai.Generated(glamVerdict{
		Score:     int(math.Round(math.Max(0, math.Min(100, score)))),
		Positives: ai.Strings(doc.Get("positives")),
		Negatives: ai.Strings(doc.Get("negatives")),
		Summary:   strings.TrimSpace(doc.Get("summary").String()),
	})
}

func (g *Glam) catalog(ctx context.Context, gender string, budget int) ai.Result[[]game.GlamItem] {
	n := g.policy.Items
	filler := func() []game.GlamItem {
		out := make([]game.GlamItem, n)
		for i := range out {
			out[i] = fillerGlamItem(i)
		}
		return out
	}

	req, err := ai.GlamCatalogPrompt(gender, budget)
	if err != nil {
		return ai.Recover[[]game.GlamItem](ctx, ai.OpGlamCatalog, nil, err, filler)
	}
	doc, err := ai.CompleteObject(ctx, g.ai, req)
	if err != nil {
		return ai.Recover[[]game.GlamItem](ctx, ai.OpGlamCatalog, nil, err, filler)
	}

	items := make([]game.GlamItem, 0, n)
	doc.Get("items").ForEach(func(_, v gjson.Result) bool {
		if item, ok := parseGlamItem(v); ok {
			items = append(items, item)
		}
		return len(items) < n
	})
	if len(items) == 0 {
		return ai.Recover[[]game.GlamItem](ctx, ai.OpGlamCatalog, nil, fmt.Errorf("%w: empty catalog", ai.ErrGeneration), filler)
	}

	// Short catalogs are padded so the shop always has n items.
	for i := len(items); i < n; i++ {
		items = append(items, fillerGlamItem(i))
	}
	return ai.Generated(items)
}

func parseGlamItem(v gjson.Result) (game.GlamItem, bool) {
	name := strings.TrimSpace(v.Get("name").String())
	price := v.Get("price").Float()
	if name == "" || !positiveFinite(price) {
		return game.GlamItem{}, false
	}

	category := strings.TrimSpace(v.Get("category").String())
	if category == "" {
		category = name
	}
	return game.GlamItem{
		Name:        name,
		Price:       int(math.Round(price)),
		Category:    category,
		Eco:         v.Get("eco").Bool(),
		Description: strings.TrimSpace(v.Get("description").String()),
	}, true
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
