package price

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

// Handler serves the price-prediction endpoints.
type Handler struct {
	game *games.Price
}

// New creates the price handler.
func New(game *games.Price) *Handler {
	return &Handler{game: game}
}

// RegisterRoutes mounts the price routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/price/start", httpx.Wrap(h.handleStart))
	r.Post("/price/answers", httpx.Wrap(h.handleAnswers))
	r.Post("/price/guess", httpx.Wrap(h.handleGuess))
}

type startRequest struct {
	Category string `json:"category" validate:"max=120"`
}

type answersRequest struct {
	Token   string `json:"token" validate:"required"`
	Answers []bool `json:"answers" validate:"required"`
}

type guessRequest struct {
	Token string   `json:"token" validate:"required"`
	Guess *float64 `json:"guess" validate:"required"`
}

func (h *Handler) handleStart(r *http.Request) (*httpx.Response, error) {
	var req startRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	start, err := h.game.Start(r.Context(), req.Category)
	if err != nil {
		return nil, err
	}
	return httpx.OK(start), nil
}

func (h *Handler) handleAnswers(r *http.Request) (*httpx.Response, error) {
	var req answersRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	ack, err := h.game.SubmitAnswers(r.Context(), req.Token, req.Answers)
	if err != nil {
		return nil, err
	}
	return httpx.OK(ack), nil
}

func (h *Handler) handleGuess(r *http.Request) (*httpx.Response, error) {
	var req guessRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	result, err := h.game.Guess(r.Context(), req.Token, *req.Guess)
	if err != nil {
		return nil, err
	}
	return httpx.OK(result), nil
}
