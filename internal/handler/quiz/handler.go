package quiz

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

// Handler serves the quiz endpoints.
type Handler struct {
	quiz *games.Quiz
}

// New creates the quiz handler.
func New(quiz *games.Quiz) *Handler {
	return &Handler{quiz: quiz}
}

// RegisterRoutes mounts the quiz routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/quiz/start", httpx.Wrap(h.handleStart))
	r.Post("/quiz/answer", httpx.Wrap(h.handleAnswer))
}

type startRequest struct {
	Topic string `json:"topic" validate:"max=120"`
}

type answerRequest struct {
	Token  string `json:"token" validate:"required"`
	Choice *int   `json:"choice" validate:"required"`
}

func (h *Handler) handleStart(r *http.Request) (*httpx.Response, error) {
	var req startRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	round, err := h.quiz.Start(r.Context(), req.Topic)
	if err != nil {
		return nil, err
	}
	return httpx.OK(round), nil
}

func (h *Handler) handleAnswer(r *http.Request) (*httpx.Response, error) {
	var req answerRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	resp, err := h.quiz.Answer(r.Context(), req.Token, *req.Choice)
	if err != nil {
		return nil, err
	}
	return httpx.OK(resp), nil
}
