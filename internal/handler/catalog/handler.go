package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zhouzirui/gamehub/backend/internal/model/catalog"
	"github.com/zhouzirui/gamehub/backend/pkg/utils"
)

// Handler 游戏目录的HTTP处理器
type Handler struct {
	games catalog.Store
}

// New 创建目录处理器
func New(games catalog.Store) *Handler {
	return &Handler{games: games}
}

// RegisterRoutes 注册目录相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/games", h.handleList)
	r.Get("/games/{id}", h.handleGet)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(r.Context(), w, http.StatusOK, map[string]any{"games": h.games.List()})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	g, ok := h.games.FindByID(chi.URLParam(r, "id"))
	if !ok {
		utils.RespondError(r.Context(), w, http.StatusNotFound, "game not found")
		return
	}
	utils.RespondJSON(r.Context(), w, http.StatusOK, map[string]any{"game": g})
}
