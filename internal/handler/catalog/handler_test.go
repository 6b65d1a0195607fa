package catalog

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/model/catalog"
)

func newRouter() http.Handler {
	r := chi.NewRouter()
	New(catalog.NewMemoryStore(catalog.Seed(catalog.Rounds{Quiz: 5, Character: 10}))).RegisterRoutes(r)
	return r
}

func TestListGames(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := gjson.Parse(rec.Body.String())
	if !body.Get("ok").Bool() {
		t.Fatalf("expected ok envelope, got %s", rec.Body.String())
	}
	if n := len(body.Get("games").Array()); n != 6 {
		t.Fatalf("expected 6 games, got %d", n)
	}
}

func TestGetGame(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/character", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := gjson.Get(rec.Body.String(), "game.rounds").Int(); got != 10 {
		t.Fatalf("expected 10 rounds, got %d", got)
	}

	rec = httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/games/unknown", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
