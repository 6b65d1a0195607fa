package fortune

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/zhouzirui/gamehub/backend/internal/service/ai"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	gw, err := ai.NewGateway(context.Background(), nil, ai.Options{})
	require.NoError(t, err)

	r := chi.NewRouter()
	New(games.NewFortuneTeller(gw, gw)).RegisterRoutes(r)
	return r
}

type sseEvent struct {
	name string
	data gjson.Result
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var events []sseEvent
	var cur sseEvent
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "event: "):
			cur.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			cur.data = gjson.Parse(strings.TrimPrefix(line, "data: "))
		case line == "":
			events = append(events, cur)
			cur = sseEvent{}
		}
	}
	require.NoError(t, sc.Err())
	return events
}

func TestPredictFallsBackOffline(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fortune",
		strings.NewReader(`{"name":"Meera","month":"May","place":"Goa","hobby":"surfing"}`)))

	require.Equal(t, http.StatusOK, rec.Code)
	body := gjson.Parse(rec.Body.String())
	assert.True(t, body.Get("ok").Bool())
	assert.Equal(t, "fallback", body.Get("source").String())
	assert.Contains(t, body.Get("predictions").String(), "Meera")
	assert.Contains(t, body.Get("predictions").String(), "surfing")
}

func TestStreamEvents(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fortune/stream?name=Kabir&hobby=cricket", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := parseSSE(t, rec.Body.String())
	require.Len(t, events, 4)
	names := []string{events[0].name, events[1].name, events[2].name, events[3].name}
	assert.Equal(t, []string{"start", "delta", "message", "end"}, names)
	assert.Equal(t, events[1].data.Get("content").String(), events[2].data.Get("content").String())
	assert.Contains(t, events[2].data.Get("content").String(), "Kabir")
	assert.True(t, events[3].data.Get("finished").Bool())
}

func TestStreamRejectsOversizedInput(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fortune/stream?name="+strings.Repeat("x", 81), nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "name must be at most 80", gjson.Get(rec.Body.String(), "error").String())
}
