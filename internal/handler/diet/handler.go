package diet

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

// Handler serves the healthy-diet endpoints.
type Handler struct {
	game *games.Diet
}

// New creates the diet handler.
func New(game *games.Diet) *Handler {
	return &Handler{game: game}
}

// RegisterRoutes mounts the diet routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/diet/start", httpx.Wrap(h.handleStart))
	r.Post("/diet/plan", httpx.Wrap(h.handlePlan))
}

type planRequest struct {
	Token   string   `json:"token" validate:"required"`
	Answers []string `json:"answers" validate:"required,dive,max=300"`
}

func (h *Handler) handleStart(r *http.Request) (*httpx.Response, error) {
	start, err := h.game.Start(r.Context())
	if err != nil {
		return nil, err
	}
	return httpx.OK(start), nil
}

func (h *Handler) handlePlan(r *http.Request) (*httpx.Response, error) {
	var req planRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	plan, err := h.game.Plan(r.Context(), req.Token, req.Answers)
	if err != nil {
		return nil, err
	}
	return httpx.OK(plan), nil
}
