package games

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
)

func newTestQuiz(t *testing.T, completer ai.Completer) (*Quiz, *Flow) {
	t.Helper()
	flow, _ := newTestFlow(t)
	q := NewQuiz(flow, completer, DefaultPolicies().Quiz)
	q.shuffle = nil
	return q, flow
}

func quizItems(t *testing.T, items ...map[string]any) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{"items": items})
	require.NoError(t, err)
	return string(raw)
}

func TestQuizFallbackFullGame(t *testing.T) {
	q, flow := newTestQuiz(t, newScriptedAI())
	ctx := context.Background()

	round, err := q.Start(ctx, "Space")
	require.NoError(t, err)
	assert.Equal(t, 1, round.Idx)
	assert.Equal(t, 5, round.Total)
	assert.Equal(t, spaceBank[0].Prompt, round.Question)
	assert.Len(t, round.Options, 4)

	stored := loadSession(t, flow.store, round.Token)
	questions := stored.Quiz.Questions

	// correct, wrong (timer sentinel), correct, wrong, correct
	choices := []int{
		questions[0].AnswerIndex + 1,
		0,
		questions[2].AnswerIndex + 1,
		(questions[3].AnswerIndex+1)%4 + 1,
		questions[4].AnswerIndex + 1,
	}
	wantScore := 0
	for i, choice := range choices {
		resp, err := q.Answer(ctx, round.Token, choice)
		require.NoError(t, err)

		correct := choice-1 == questions[i].AnswerIndex
		assert.Equal(t, correct, resp.Correct, "question %d", i+1)
		assert.Equal(t, questions[i].AnswerIndex+1, resp.Answer)
		if correct {
			wantScore++
		}

		if i < len(choices)-1 {
			assert.False(t, resp.Done)
			require.NotNil(t, resp.Next)
			assert.Equal(t, i+2, resp.Next.Idx)
			assert.Nil(t, resp.Score)
		} else {
			assert.True(t, resp.Done)
			require.NotNil(t, resp.Score)
			assert.Equal(t, wantScore, *resp.Score)
			assert.Nil(t, resp.Next)
		}
	}
	assert.Equal(t, 3, wantScore)

	_, err = q.Answer(ctx, round.Token, 1)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestQuizScoreOnlyOnExactMatch(t *testing.T) {
	q, flow := newTestQuiz(t, newScriptedAI())
	ctx := context.Background()

	round, err := q.Start(ctx, "java")
	require.NoError(t, err)
	answer := loadSession(t, flow.store, round.Token).Quiz.Questions[0].AnswerIndex

	// 0-based index submitted by mistake
	resp, err := q.Answer(ctx, round.Token, answer)
	require.NoError(t, err)
	assert.False(t, resp.Correct)

	resp, err = q.Answer(ctx, round.Token, 99)
	require.NoError(t, err)
	assert.False(t, resp.Correct)
	assert.Equal(t, 0, loadSession(t, flow.store, round.Token).Quiz.Score)
}

func TestQuizGeneratedWithPlaceholder(t *testing.T) {
	good := func(q string) map[string]any {
		return map[string]any{"q": q, "options": []string{"a", "b", "c", "d"}, "answerIndex": 2, "explanation": "because"}
	}
	scripted := newScriptedAI().on(ai.OpQuiz, quizItems(t,
		good("Q1"),
		map[string]any{"q": "broken", "options": []string{"a", "b"}, "answerIndex": 0},
		good("Q3"),
		map[string]any{"q": "", "options": []string{"a", "b", "c", "d"}, "answerIndex": 1},
		good("Q5"),
	))
	q, flow := newTestQuiz(t, scripted)

	round, err := q.Start(context.Background(), "general knowledge")
	require.NoError(t, err)
	assert.Equal(t, "Q1", round.Question)

	questions := loadSession(t, flow.store, round.Token).Quiz.Questions
	require.Len(t, questions, 5)
	assert.Equal(t, generalBank[1].Prompt, questions[1].Prompt)
	assert.Equal(t, generalBank[3].Prompt, questions[3].Prompt)
	assert.Equal(t, "Q5", questions[4].Prompt)
	assert.Equal(t, 2, questions[0].AnswerIndex)
}

func TestQuizRemembersRecentQuestions(t *testing.T) {
	scripted := newScriptedAI()
	q, _ := newTestQuiz(t, scripted)
	ctx := context.Background()

	_, err := q.Start(ctx, "Space")
	require.NoError(t, err)
	_, err = q.Start(ctx, "space ")
	require.NoError(t, err)

	req, ok := scripted.lastRequest(ai.OpQuiz)
	require.True(t, ok)
	assert.Contains(t, req.Messages[len(req.Messages)-1].Content, spaceBank[0].Prompt)
}

func TestRecentListIsBounded(t *testing.T) {
	r := newRecentList(3)
	r.add("t", "a", "b", "c", "d", "b")

	assert.Equal(t, []string{"c", "d", "b"}, r.snapshot("T"))
	assert.True(t, r.contains("t", "B"))
	assert.False(t, r.contains("t", "a"))
}

func TestParseQuizItem(t *testing.T) {
	cases := []struct {
		name string
		json string
		ok   bool
		idx  int
	}{
		{"numeric", `{"q":"x","options":["a","b","c","d"],"answerIndex":3}`, true, 3},
		{"string number", `{"question":"x","options":["a","b","c","d"],"answerIndex":"1"}`, true, 1},
		{"letter", `{"q":"x","options":["a","b","c","d"],"answer":"C"}`, true, 2},
		{"option text", `{"q":"x","options":["red","blue","green","pink"],"answer":"Green"}`, true, 2},
		{"out of range", `{"q":"x","options":["a","b","c","d"],"answerIndex":4}`, false, 0},
		{"fractional", `{"q":"x","options":["a","b","c","d"],"answerIndex":1.5}`, false, 0},
		{"blank option", `{"q":"x","options":["a"," ","c","d"],"answerIndex":0}`, false, 0},
		{"missing answer", `{"q":"x","options":["a","b","c","d"]}`, false, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			item, ok := parseQuizItem(gjson.Parse(tc.json), 4)
			assert.Equal(t, tc.ok, ok)
			if ok {
				assert.Equal(t, tc.idx, item.AnswerIndex)
			}
		})
	}
}

func TestFallbackQuestionTracksShuffledAnswer(t *testing.T) {
	reverse := func(n int, swap func(i, j int)) {
		for i := 0; i < n/2; i++ {
			swap(i, n-1-i)
		}
	}
	q := fallbackQuestion("java", 0, reverse)

	assert.Equal(t, javaBank[0].Options[javaBank[0].AnswerIndex], q.Options[q.AnswerIndex])
	assert.Equal(t, "Serial GC", javaBank[0].Options[0], "bank must not be mutated")
}
