package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	catalogHandler "github.com/zhouzirui/gamehub/backend/internal/handler/catalog"
	"github.com/zhouzirui/gamehub/backend/internal/handler/character"
	"github.com/zhouzirui/gamehub/backend/internal/handler/diet"
	"github.com/zhouzirui/gamehub/backend/internal/handler/fortune"
	"github.com/zhouzirui/gamehub/backend/internal/handler/glam"
	"github.com/zhouzirui/gamehub/backend/internal/handler/price"
	"github.com/zhouzirui/gamehub/backend/internal/handler/quiz"
	"github.com/zhouzirui/gamehub/backend/internal/middleware"
	"github.com/zhouzirui/gamehub/backend/internal/model/catalog"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
	"github.com/zhouzirui/gamehub/backend/internal/service/session"
	"github.com/zhouzirui/gamehub/backend/pkg/utils"
)

// Deps are the services the router exposes.
type Deps struct {
	Games          *games.Service
	Catalog        catalog.Store
	Sessions       session.Store
	AllowedOrigins []string
	AIEnabled      bool
	Metrics        http.Handler
}

// NewRouter wires HTTP routes to core services.
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5, "application/json"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		n, err := deps.Sessions.Len(req.Context())
		if err != nil {
			utils.RespondError(req.Context(), w, http.StatusServiceUnavailable, "session store unavailable")
			return
		}
		utils.RespondJSON(req.Context(), w, http.StatusOK, map[string]any{
			"sessions": n,
			"ai":       deps.AIEnabled,
		})
	})

	metrics := deps.Metrics
	if metrics == nil {
		metrics = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metrics)

	r.Route("/api", func(api chi.Router) {
		catalogHandler.New(deps.Catalog).RegisterRoutes(api)
		quiz.New(deps.Games.Quiz).RegisterRoutes(api)
		character.New(deps.Games.Character).RegisterRoutes(api)
		price.New(deps.Games.Price).RegisterRoutes(api)
		diet.New(deps.Games.Diet).RegisterRoutes(api)
		glam.New(deps.Games.Glam).RegisterRoutes(api)
		fortune.New(deps.Games.Fortune).RegisterRoutes(api)
	})

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		utils.RespondError(req.Context(), w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		utils.RespondError(req.Context(), w, http.StatusMethodNotAllowed, "method not allowed")
	})

	return r
}
