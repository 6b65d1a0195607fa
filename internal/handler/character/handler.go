package character

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

// Handler serves the character-guess endpoints.
type Handler struct {
	game *games.Character
	ws   *WebSocketHandler
}

// New creates the character handler.
func New(game *games.Character) *Handler {
	return &Handler{game: game, ws: NewWebSocketHandler(game)}
}

// RegisterRoutes mounts the REST and WebSocket routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/character/start", httpx.Wrap(h.handleStart))
	r.Post("/character/turn", httpx.Wrap(h.handleTurn))
	r.Get("/character/ws/{sessionID}", h.ws.handleWebSocket)
}

type startRequest struct {
	Topic string `json:"topic" validate:"max=120"`
}

type turnRequest struct {
	SessionID string `json:"sessionId" validate:"required"`
	Text      string `json:"text" validate:"required,max=500"`
}

func (h *Handler) handleStart(r *http.Request) (*httpx.Response, error) {
	var req startRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	start, err := h.game.Start(r.Context(), req.Topic)
	if err != nil {
		return nil, err
	}
	return httpx.OK(start), nil
}

func (h *Handler) handleTurn(r *http.Request) (*httpx.Response, error) {
	var req turnRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	reply, err := h.game.Turn(r.Context(), req.SessionID, req.Text)
	if err != nil {
		return nil, err
	}
	return httpx.OK(reply), nil
}
