package games

import (
	"context"
	"fmt"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

// DietStart hands out the intake questionnaire.
type DietStart struct {
	Token     string    `json:"token"`
	Questions []string  `json:"questions"`
	Source    ai.Status `json:"source,omitempty"`
}

// DietPlan is the generated plan text.
type DietPlan struct {
	Plan   string    `json:"plan"`
	Source ai.Status `json:"source,omitempty"`
}

// Diet builds meal plans from a fixed-length questionnaire.
type Diet struct {
	flow   *Flow
	ai     ai.Completer
	policy DietPolicy
}

// NewDiet creates the diet controller.
func NewDiet(flow *Flow, completer ai.Completer, policy DietPolicy) *Diet {
	return &Diet{flow: flow, ai: completer, policy: policy}
}

// Start returns the questionnaire.
func (d *Diet) Start(ctx context.Context) (*DietStart, error) {
	asked := d.questions(ctx)
	questions := asked.Value

	s, err := d.flow.Begin(ctx, game.KindDiet, 1, func(s *game.Session) {
		s.Diet = &game.DietState{Questions: questions}
	})
	if err != nil {
		return nil, err
	}
	return &DietStart{Token: s.Token, Questions: append([]string(nil), questions...), Source: asked.Status}, nil
}

// Plan turns the answers into a plan and ends the session.
func (d *Diet) Plan(ctx context.Context, token string, answers []string) (*DietPlan, error) {
	if len(answers) != d.policy.Questions {
		return nil, invalid("answers", "expected exactly %d answers, got %d", d.policy.Questions, len(answers))
	}

	var resp *DietPlan
	err := d.flow.Step(ctx, token, game.KindDiet, func(s *game.Session) (Decision, error) {
		st := s.Diet
		if st == nil {
			return Finish, ErrSessionNotFound
		}

		plan := d.plan(ctx, st.Questions, answers)
		resp = &DietPlan{Plan: plan.Value, Source: plan.Status}
		_ = s.Advance()
		recordOutcome(game.KindDiet, "completed")
		return Finish, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (d *Diet) questions(ctx context.Context) ai.Result[[]string] {
	n := d.policy.Questions
	fallback := func() []string { return append([]string(nil), fallbackDietQuestions[:n]...) }

	req, err := ai.DietQuestionsPrompt()
	if err != nil {
		return ai.Recover[[]string](ctx, ai.OpDietQuestions, nil, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, d.ai, req)
	if err != nil {
		return ai.Recover[[]string](ctx, ai.OpDietQuestions, nil, err, fallback)
	}

	questions := ai.Strings(doc.Get("questions"))
	if len(questions) < n {
		return ai.Recover[[]string](ctx, ai.OpDietQuestions, nil,
			fmt.Errorf("%w: got %d questions, want %d", ai.ErrGeneration, len(questions), n), fallback)
	}
	return ai.Generated(questions[:n])
}

func (d *Diet) plan(ctx context.Context, questions, answers []string) ai.Result[string] {
	fallback := func() string { return fallbackDietPlan(questions, answers) }

	pairs := make([]ai.QA, len(questions))
	for i, q := range questions {
		pairs[i] = ai.QA{Question: q}
		if i < len(answers) {
			pairs[i].Answer = answers[i]
		}
	}

	req, err := ai.DietPlanPrompt(pairs)
	if err != nil {
		return ai.Recover(ctx, ai.OpDietPlan, "", err, fallback)
	}
	text, err := d.ai.Complete(ctx, req)
	return ai.Recover(ctx, ai.OpDietPlan, text, err, fallback)
}
