package game

import (
	"errors"
	"time"
)

// Kind tags the flow that owns a session.
type Kind string

const (
	KindQuiz      Kind = "quiz"
	KindCharacter Kind = "character"
	KindDiet      Kind = "healthy-diet"
	KindPrice     Kind = "price-prediction"
	KindGlam      Kind = "glam-builder"
)

// ErrRoundsExhausted is returned when a session is advanced past RoundsMax.
var ErrRoundsExhausted = errors.New("no rounds left")

// Session is the server-side record behind an opaque game token.
// Exactly one of the kind-specific payloads is set.
type Session struct {
	Token      string    `json:"token"`
	Kind       Kind      `json:"kind"`
	RoundIndex int       `json:"roundIndex"`
	RoundsMax  int       `json:"roundsMax"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Quiz      *QuizState      `json:"quiz,omitempty"`
	Character *CharacterState `json:"character,omitempty"`
	Price     *PriceState     `json:"price,omitempty"`
	Diet      *DietState      `json:"diet,omitempty"`
	Glam      *GlamState      `json:"glam,omitempty"`
}

// Advance moves the session one round forward while keeping 0 <= RoundIndex <= RoundsMax.
func (s *Session) Advance() error {
	if s.RoundIndex >= s.RoundsMax {
		return ErrRoundsExhausted
	}
	s.RoundIndex++
	return nil
}

// Finished reports whether every round has been played.
func (s *Session) Finished() bool {
	return s.RoundIndex >= s.RoundsMax
}

// RoundsLeft returns how many rounds remain.
func (s *Session) RoundsLeft() int {
	if left := s.RoundsMax - s.RoundIndex; left > 0 {
		return left
	}
	return 0
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	cp := *s
	if s.Quiz != nil {
		cp.Quiz = s.Quiz.clone()
	}
	if s.Character != nil {
		cp.Character = s.Character.clone()
	}
	if s.Price != nil {
		cp.Price = s.Price.clone()
	}
	if s.Diet != nil {
		cp.Diet = &DietState{Questions: append([]string(nil), s.Diet.Questions...)}
	}
	if s.Glam != nil {
		g := *s.Glam
		g.Items = append([]GlamItem(nil), s.Glam.Items...)
		cp.Glam = &g
	}
	return &cp
}
