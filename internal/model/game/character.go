package game

import "time"

// Exchange is one question/answer pair of a character-guess conversation.
type Exchange struct {
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Hint     string    `json:"hint,omitempty"`
	At       time.Time `json:"at"`
}

// CharacterState keeps the secret and the conversation so far.
type CharacterState struct {
	Topic      string     `json:"topic"`
	Secret     string     `json:"secret"`
	Hints      []string   `json:"hints,omitempty"`
	Facts      []string   `json:"facts,omitempty"`
	History    []Exchange `json:"history"`
	HintsGiven []string   `json:"hintsGiven,omitempty"`
}

func (c *CharacterState) clone() *CharacterState {
	cp := *c
	cp.Hints = append([]string(nil), c.Hints...)
	cp.Facts = append([]string(nil), c.Facts...)
	cp.History = append([]Exchange(nil), c.History...)
	cp.HintsGiven = append([]string(nil), c.HintsGiven...)
	return &cp
}
