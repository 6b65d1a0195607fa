package game

// QuizQuestion is one multiple-choice item. AnswerIndex is 0-based.
type QuizQuestion struct {
	Prompt      string   `json:"prompt"`
	Options     []string `json:"options"`
	AnswerIndex int      `json:"answerIndex"`
	Explanation string   `json:"explanation,omitempty"`
}

// QuizState holds the ordered questions and the running score.
type QuizState struct {
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
	Score     int            `json:"score"`
}

func (q *QuizState) clone() *QuizState {
	cp := *q
	cp.Questions = make([]QuizQuestion, len(q.Questions))
	for i, item := range q.Questions {
		item.Options = append([]string(nil), item.Options...)
		cp.Questions[i] = item
	}
	return &cp
}
