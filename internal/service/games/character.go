package games

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/analysis/guess"
	"github.com/zhouzirui/gamehub/backend/internal/model/game"
	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

const defaultCharacterTopic = "General"

// CharacterStart opens a guessing session.
type CharacterStart struct {
	SessionID string    `json:"sessionId"`
	Message   string    `json:"message"`
	RoundsMax int       `json:"roundsMax"`
	Source    ai.Status `json:"source,omitempty"`
}

// CharacterReply answers one player message. Name is only set once the
// game is over.
type CharacterReply struct {
	Done       bool      `json:"done"`
	Win        *bool     `json:"win,omitempty"`
	Answer     string    `json:"answer"`
	Hint       string    `json:"hint"`
	RoundsLeft *int      `json:"roundsLeft,omitempty"`
	Name       string    `json:"name,omitempty"`
	Source     ai.Status `json:"source,omitempty"`
}

type hostReply struct {
	Answer  string
	IsGuess bool
	Guess   string
	Hint    string
}

// Character runs the yes/no guessing game.
type Character struct {
	flow   *Flow
	ai     ai.Completer
	policy CharacterPolicy
	recent *recentList
	intn   func(n int) int
	now    func() time.Time
}

// NewCharacter creates the guessing controller.
func NewCharacter(flow *Flow, completer ai.Completer, policy CharacterPolicy) *Character {
	return &Character{
		flow:   flow,
		ai:     completer,
		policy: policy,
		recent: newRecentList(policy.RecentPerTopic),
		intn:   rand.Intn,
		now:    time.Now,
	}
}

// Start picks a secret identity for topic.
func (c *Character) Start(ctx context.Context, topic string) (*CharacterStart, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		topic = defaultCharacterTopic
	}

	candidates := c.candidates(ctx, topic)
	secret := c.pick(topic, candidates.Value)

	s, err := c.flow.Begin(ctx, game.KindCharacter, c.policy.Rounds, func(s *game.Session) {
		s.Character = &game.CharacterState{
			Topic:  topic,
			Secret: secret.Name,
			Hints:  secret.Hints,
			Facts:  secret.Facts,
		}
	})
	if err != nil {
		return nil, err
	}
	c.recent.add(topic, secret.Name)

	return &CharacterStart{
		SessionID: s.Token,
		Message: fmt.Sprintf("I'm thinking of someone from %s. You have %d questions: ask yes/no questions or type \"guess: name\". Clues unlock from question %d.",
			topic, c.policy.Rounds, c.policy.HintFromRound),
		RoundsMax: c.policy.Rounds,
		Source:    candidates.Status,
	}, nil
}

// Turn answers one question or guess.
func (c *Character) Turn(ctx context.Context, sessionID, text string) (*CharacterReply, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("text", "ask a question or type guess: name")
	}

	var resp *CharacterReply
	err := c.flow.Step(ctx, sessionID, game.KindCharacter, func(s *game.Session) (Decision, error) {
		st := s.Character
		if st == nil {
			return Finish, ErrSessionNotFound
		}

		turn := s.RoundIndex + 1
		hintAllowed := c.policy.HintAllowed(turn)
		asked := c.ask(ctx, s, text, turn, hintAllowed)
		reply := asked.Value

		guessed, isGuess := reply.Guess, reply.IsGuess
		if name, ok := guess.ParseGuess(text); ok {
			guessed, isGuess = name, true
		}

		if isGuess && guess.SameName(guessed, st.Secret) {
			st.History = append(st.History, game.Exchange{Question: text, Answer: "correct", At: c.now().UTC()})
			_ = s.Advance()
			win := true
			resp = &CharacterReply{
				Done:   true,
				Win:    &win,
				Answer: fmt.Sprintf("Yes! It was %s.", st.Secret),
				Name:   st.Secret,
				Source: asked.Status,
			}
			recordOutcome(game.KindCharacter, "win")
			return Finish, nil
		}

		answer := reply.Answer
		if isGuess {
			answer = "Nope, that's not it."
		}
		if answer == "" {
			answer = string(guess.Answer(text, st.Facts).Verdict)
		}
		answer = guess.Redact(answer, st.Secret)

		hint := ""
		if hintAllowed {
			hint = nextHint(st, reply.Hint)
		}

		st.History = append(st.History, game.Exchange{Question: text, Answer: answer, Hint: hint, At: c.now().UTC()})
		if hint != "" {
			st.HintsGiven = append(st.HintsGiven, hint)
		}
		if err := s.Advance(); err != nil {
			return Continue, err
		}

		if s.Finished() {
			win := false
			resp = &CharacterReply{
				Done:   true,
				Win:    &win,
				Answer: fmt.Sprintf("%s Out of questions! It was %s.", answer, st.Secret),
				Hint:   hint,
				Name:   st.Secret,
				Source: asked.Status,
			}
			recordOutcome(game.KindCharacter, "lose")
			return Finish, nil
		}

		left := s.RoundsLeft()
		resp = &CharacterReply{Answer: answer, Hint: hint, RoundsLeft: &left, Source: asked.Status}
		return Continue, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Check reports whether sessionID is a live guessing session.
func (c *Character) Check(ctx context.Context, sessionID string) error {
	_, err := c.flow.Peek(ctx, sessionID, game.KindCharacter)
	return err
}

// nextHint returns the first usable hint that was not given before: the
// model's suggestion, then the stored ones. Hints naming the secret are
// skipped.
func nextHint(st *game.CharacterState, suggested string) string {
	for _, h := range append([]string{suggested}, st.Hints...) {
		h = strings.TrimSpace(h)
		if h == "" || guess.Mentions(h, st.Secret) {
			continue
		}
		given := false
		for _, prev := range st.HintsGiven {
			if strings.EqualFold(strings.TrimSpace(prev), h) {
				given = true
				break
			}
		}
		if !given {
			return h
		}
	}
	return ""
}

func (c *Character) ask(ctx context.Context, s *game.Session, text string, turn int, hintAllowed bool) ai.Result[hostReply] {
	st := s.Character
	fallback := func() hostReply {
		return hostReply{Answer: string(guess.Answer(text, st.Facts).Verdict)}
	}

	req, err := ai.CharacterTurnPrompt(ai.CharacterTurn{
		Topic:       st.Topic,
		Secret:      st.Secret,
		History:     st.History,
		Message:     text,
		Turn:        turn,
		Rounds:      s.RoundsMax,
		HintAllowed: hintAllowed,
		HintsGiven:  st.HintsGiven,
	})
	if err != nil {
		return ai.Recover(ctx, ai.OpCharacterTurn, hostReply{}, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, c.ai, req)
	if err != nil {
		return ai.Recover(ctx, ai.OpCharacterTurn, hostReply{}, err, fallback)
	}

	reply := hostReply{
		Answer:  strings.TrimSpace(doc.Get("answer").String()),
		IsGuess: doc.Get("isGuess").Bool(),
		Guess:   strings.TrimSpace(doc.Get("guess").String()),
		Hint:    strings.TrimSpace(doc.Get("hint").String()),
	}
	if reply.Answer == "" && !reply.IsGuess {
		return ai.Recover(ctx, ai.OpCharacterTurn, hostReply{}, fmt.Errorf("%w: empty answer", ai.ErrGeneration), fallback)
	}
	return ai.Generated(reply)
}

func (c *Character) candidates(ctx context.Context, topic string) ai.Result[[]character] {
	fallback := func() []character { return charactersFor(topic) }

	req, err := ai.CharacterCandidatesPrompt(topic, c.recent.snapshot(topic))
	if err != nil {
		return ai.Recover[[]character](ctx, ai.OpCharacterCandidate, nil, err, fallback)
	}
	doc, err := ai.CompleteObject(ctx, c.ai, req)
	if err != nil {
		return ai.Recover[[]character](ctx, ai.OpCharacterCandidate, nil, err, fallback)
	}

	var out []character
	doc.Get("candidates").ForEach(func(_, item gjson.Result) bool {
		name := strings.TrimSpace(item.Get("name").String())
		if item.Type == gjson.String {
			name = strings.TrimSpace(item.String())
		}
		if name == "" {
			return true
		}

		var hints []string
		for _, h := range ai.Strings(item.Get("hints")) {
			if !guess.Mentions(h, name) {
				hints = append(hints, h)
			}
		}
		facts := ai.Strings(item.Get("facts"))
		for i := range facts {
			facts[i] = strings.ToLower(facts[i])
		}
		out = append(out, character{Name: name, Hints: hints, Facts: facts})
		return true
	})

	if len(out) == 0 {
		return ai.Recover[[]character](ctx, ai.OpCharacterCandidate, nil, fmt.Errorf("%w: no candidates", ai.ErrGeneration), fallback)
	}
	return ai.Generated(out)
}

// pick prefers a candidate that was not used recently for topic.
func (c *Character) pick(topic string, candidates []character) character {
	if len(candidates) == 0 {
		candidates = charactersFor(topic)
	}

	var fresh []character
	for _, cand := range candidates {
		if !c.recent.contains(topic, cand.Name) {
			fresh = append(fresh, cand)
		}
	}
	if len(fresh) == 0 {
		fresh = candidates
	}

	chosen := fresh[c.intn(len(fresh))]
	if len(chosen.Hints) == 0 {
		chosen.Hints = []string{fmt.Sprintf("Well known in %s", topic)}
	}
	return chosen
}
