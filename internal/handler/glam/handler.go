package glam

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

// Handler serves the glam-builder endpoints.
type Handler struct {
	game *games.Glam
}

// New creates the glam handler.
func New(game *games.Glam) *Handler {
	return &Handler{game: game}
}

// RegisterRoutes mounts the glam routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/glam/start", httpx.Wrap(h.handleStart))
	r.Post("/glam/score", httpx.Wrap(h.handleScore))
}

type startRequest struct {
	Gender string `json:"gender" validate:"max=40"`
	Budget int    `json:"budget"`
}

type scoreRequest struct {
	Token           string `json:"token" validate:"required"`
	SelectedIndices []int  `json:"selectedIndices" validate:"max=100"`
	TimeTaken       int    `json:"timeTaken" validate:"min=0"`
}

func (h *Handler) handleStart(r *http.Request) (*httpx.Response, error) {
	var req startRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	start, err := h.game.Start(r.Context(), req.Gender, req.Budget)
	if err != nil {
		return nil, err
	}
	return httpx.OK(start), nil
}

func (h *Handler) handleScore(r *http.Request) (*httpx.Response, error) {
	var req scoreRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	score, err := h.game.Score(r.Context(), req.Token, req.SelectedIndices, req.TimeTaken)
	if err != nil {
		return nil, err
	}
	return httpx.OK(score), nil
}
