package fortune

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
	"github.com/zhouzirui/gamehub/backend/pkg/utils"
)

// Handler serves the fortune endpoints.
type Handler struct {
	teller *games.FortuneTeller
}

// New creates the fortune handler.
func New(teller *games.FortuneTeller) *Handler {
	return &Handler{teller: teller}
}

// RegisterRoutes mounts the fortune routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/fortune", httpx.Wrap(h.handlePredict))
	r.Get("/fortune/stream", h.handleStream)
}

type predictRequest struct {
	Name  string `json:"name" validate:"max=80"`
	Month string `json:"month" validate:"max=40"`
	Place string `json:"place" validate:"max=120"`
	Hobby string `json:"hobby" validate:"max=120"`
}

func (req predictRequest) input() games.FortuneInput {
	return games.FortuneInput{Name: req.Name, Month: req.Month, Place: req.Place, Hobby: req.Hobby}
}

// StreamEvent is the data of one SSE event.
type StreamEvent struct {
	Content  string `json:"content,omitempty"`
	Source   string `json:"source,omitempty"`
	Finished bool   `json:"finished,omitempty"`
}

func (h *Handler) handlePredict(r *http.Request) (*httpx.Response, error) {
	var req predictRequest
	if err := httpx.Decode(r, &req); err != nil {
		return nil, err
	}
	fortune, err := h.teller.Predict(r.Context(), req.input())
	if err != nil {
		return nil, err
	}
	return httpx.OK(fortune), nil
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := predictRequest{Name: q.Get("name"), Month: q.Get("month"), Place: q.Get("place"), Hobby: q.Get("hobby")}
	if err := httpx.Validate(req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(r.Context(), w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ctx := r.Context()
	logger := log.Ctx(ctx).With().Str("component", "fortune-stream").Logger()

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)
	if err := utils.SendSSEEvent(w, flusher, "start", StreamEvent{}); err != nil {
		logger.Debug().Err(err).Msg("client went away")
		return
	}

	fortune, err := h.teller.Stream(ctx, req.input(), func(delta string) error {
		return utils.SendSSEEvent(w, flusher, "delta", StreamEvent{Content: delta})
	})
	if err != nil {
		logger.Debug().Err(err).Msg("stream aborted")
		return
	}

	if err := utils.SendSSEEvent(w, flusher, "message", StreamEvent{Content: fortune.Predictions, Source: string(fortune.Source)}); err != nil {
		return
	}
	_ = utils.SendSSEEvent(w, flusher, "end", StreamEvent{Finished: true})
}
