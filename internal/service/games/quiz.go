package games

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

const defaultQuizTopic = "general knowledge"

// QuizRound is the question the player has to answer next.
type QuizRound struct {
	Token    string    `json:"token"`
	Idx      int       `json:"idx"`
	Total    int       `json:"total"`
	Question string    `json:"question"`
	Options  []string  `json:"options"`
	Source   ai.Status `json:"source,omitempty"`
}

// QuizNext is the following question of a running quiz.
type QuizNext struct {
	Idx      int      `json:"idx"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// QuizAnswer is the verdict on one answer. Score is set once the quiz is over.
type QuizAnswer struct {
	Done        bool      `json:"done"`
	Correct     bool      `json:"correct"`
	Answer      int       `json:"answer"`
	Explanation string    `json:"explanation,omitempty"`
	Score       *int      `json:"score,omitempty"`
	Total       int       `json:"total"`
	Next        *QuizNext `json:"next,omitempty"`
}

// Quiz runs multiple-choice quizzes.
type Quiz struct {
	flow    *Flow
	ai      ai.Completer
	policy  QuizPolicy
	recent  *recentList
	shuffle func(n int, swap func(i, j int))
}

// NewQuiz creates the quiz controller.
func NewQuiz(flow *Flow, completer ai.Completer, policy QuizPolicy) *Quiz {
	return &Quiz{
		flow:    flow,
		ai:      completer,
		policy:  policy,
		recent:  newRecentList(policy.RecentPerTopic),
		shuffle: randomShuffle,
	}
}

// Start generates the questions and returns the first one.
func (q *Quiz) Start(ctx context.Context, topic string) (*QuizRound, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultQuizTopic
	}

	generated := q.generate(ctx, topic)
	questions := generated.Value

	s, err := q.flow.Begin(ctx, game.KindQuiz, len(questions), func(s *game.Session) {
		s.Quiz = &game.QuizState{Topic: topic, Questions: questions}
	})
	if err != nil {
		return nil, err
	}

	prompts := make([]string, 0, len(questions))
	for _, item := range questions {
		prompts = append(prompts, item.Prompt)
	}
	q.recent.add(topic, prompts...)

	first := questions[0]
	return &QuizRound{
		Token:    s.Token,
		Idx:      1,
		Total:    len(questions),
		Question: first.Prompt,
		Options:  append([]string(nil), first.Options...),
		Source:   generated.Status,
	}, nil
}

// Answer scores choice (1-based) against the current question. Any choice
// outside 1..options, such as the 0 a client sends when its timer expires,
// is simply wrong.
func (q *Quiz) Answer(ctx context.Context, token string, choice int) (*QuizAnswer, error) {
	var resp *QuizAnswer
	err := q.flow.Step(ctx, token, game.KindQuiz, func(s *game.Session) (Decision, error) {
		st := s.Quiz
		if st == nil || s.RoundIndex >= len(st.Questions) {
			return Finish, ErrSessionNotFound
		}

		current := st.Questions[s.RoundIndex]
		correct := choice-1 == current.AnswerIndex
		if correct {
			st.Score++
		}
		if err := s.Advance(); err != nil {
			return Continue, err
		}

		resp = &QuizAnswer{
			Correct:     correct,
			Answer:      current.AnswerIndex + 1,
			Explanation: current.Explanation,
			Total:       s.RoundsMax,
		}

		if s.Finished() {
			score := st.Score
			resp.Done = true
			resp.Score = &score
			outcome := "completed"
			if score == s.RoundsMax {
				outcome = "perfect"
			}
			recordOutcome(game.KindQuiz, outcome)
			return Finish, nil
		}

		next := st.Questions[s.RoundIndex]
		resp.Next = &QuizNext{
			Idx:      s.RoundIndex + 1,
			Question: next.Prompt,
			Options:  append([]string(nil), next.Options...),
		}
		return Continue, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (q *Quiz) generate(ctx context.Context, topic string) ai.Result[[]game.QuizQuestion] {
	n := q.policy.Questions
	fallback := func() []game.QuizQuestion {
		out := make([]game.QuizQuestion, n)
		for i := range out {
			out[i] = fallbackQuestion(topic, i, q.shuffle)
		}
		return out
	}

	req, err := ai.QuizPrompt(topic, n, q.recent.snapshot(topic))
	if err != nil {
		return ai.Recover[[]game.QuizQuestion](ctx, ai.OpQuiz, nil, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, q.ai, req)
	if err != nil {
		return ai.Recover[[]game.QuizQuestion](ctx, ai.OpQuiz, nil, err, fallback)
	}

	items := doc.Get("items").Array()
	if len(items) == 0 {
		return ai.Recover[[]game.QuizQuestion](ctx, ai.OpQuiz, nil, fmt.Errorf("%w: no quiz items", ai.ErrGeneration), fallback)
	}

	out := make([]game.QuizQuestion, n)
	for i := range out {
		if i < len(items) {
			if item, ok := parseQuizItem(items[i], q.policy.Options); ok {
				out[i] = item
				continue
			}
		}
		out[i] = fallbackQuestion(topic, i, q.shuffle)
	}
	return ai.Generated(out)
}

// parseQuizItem accepts {q|question, options, answerIndex|answer, explanation}.
func parseQuizItem(item gjson.Result, optionCount int) (game.QuizQuestion, bool) {
	prompt := strings.TrimSpace(item.Get("q").String())
	if prompt == "" {
		prompt = strings.TrimSpace(item.Get("question").String())
	}
	if prompt == "" {
		return game.QuizQuestion{}, false
	}

	rawOptions := item.Get("options").Array()
	if len(rawOptions) != optionCount {
		return game.QuizQuestion{}, false
	}
	options := make([]string, 0, optionCount)
	for _, o := range rawOptions {
		text := strings.TrimSpace(o.String())
		if text == "" {
			return game.QuizQuestion{}, false
		}
		options = append(options, text)
	}

	answer := item.Get("answerIndex")
	if !answer.Exists() {
		answer = item.Get("answer")
	}
	idx, ok := answerIndex(answer, options)
	if !ok {
		return game.QuizQuestion{}, false
	}

	return game.QuizQuestion{
		Prompt:      prompt,
		Options:     options,
		AnswerIndex: idx,
		Explanation: strings.TrimSpace(item.Get("explanation").String()),
	}, true
}

func answerIndex(v gjson.Result, options []string) (int, bool) {
	switch v.Type {
	case gjson.Number:
		idx := int(v.Int())
		if float64(idx) != v.Float() || idx < 0 || idx >= len(options) {
			return 0, false
		}
		return idx, true
	case gjson.String:
		s := strings.TrimSpace(v.String())
		if n, err := strconv.Atoi(s); err == nil {
			return n, n >= 0 && n < len(options)
		}
		if len(s) == 1 {
			if c := strings.ToLower(s)[0]; c >= 'a' && int(c-'a') < len(options) {
				return int(c - 'a'), true
			}
		}
		for i, o := range options {
			if strings.EqualFold(o, s) {
				return i, true
			}
		}
	}
	return 0, false
}
