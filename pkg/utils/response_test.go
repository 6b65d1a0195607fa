package utils

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestRespondJSONAddsOK(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(context.Background(), rec, http.StatusCreated, struct {
		Token string `json:"token"`
	}{Token: "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := gjson.Parse(rec.Body.String())
	assert.True(t, body.Get("ok").Bool())
	assert.Equal(t, "abc", body.Get("token").String())
}

func TestRespondJSONNilPayload(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(context.Background(), rec, http.StatusOK, nil)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestRespondJSONRejectsNonObject(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondJSON(context.Background(), rec, http.StatusOK, []int{1, 2})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, gjson.Get(rec.Body.String(), "ok").Bool())
}

func TestRespondErrorEscapes(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondError(context.Background(), rec, http.StatusBadRequest, `bad "quote"`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"ok":false,"error":"bad \"quote\""}`, rec.Body.String())
}

func TestSendSSEEvent(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, SendSSEEvent(rec, rec, "delta", map[string]string{"content": "hi"}))
	assert.Equal(t, "event: delta\ndata: {\"content\":\"hi\"}\n\n", rec.Body.String())
	assert.True(t, rec.Flushed)
}
