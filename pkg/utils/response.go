package utils

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrNotObject 表示 payload 不能平铺进信封。
var ErrNotObject = errors.New("payload is not a JSON object")

var internalErrorBody = []byte(`{"ok":false,"error":"internal error"}`)

// RespondJSON 发送带 ok:true 的 JSON 信封，payload 的字段平铺在信封里。
// payload 必须编码为 JSON 对象。
func RespondJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	body, err := Envelope(payload)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to encode response")
		write(ctx, w, http.StatusInternalServerError, internalErrorBody)
		return
	}
	write(ctx, w, status, body)
}

// RespondError 发送错误信封 {"ok":false,"error":message}。
func RespondError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	body, err := sjson.SetBytes([]byte(`{"ok":false}`), "error", message)
	if err != nil {
		body = internalErrorBody
	}
	write(ctx, w, status, body)
}

// Envelope 将 payload 编码并加上 ok:true。
func Envelope(payload any) ([]byte, error) {
	data := []byte(`{}`)
	if payload != nil {
		var err error
		if data, err = json.Marshal(payload); err != nil {
			return nil, err
		}
	}
	if !gjson.ParseBytes(data).IsObject() {
		return nil, ErrNotObject
	}
	return sjson.SetBytes(data, "ok", true)
}

func write(ctx context.Context, w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Ctx(ctx).Debug().Err(err).Msg("failed to write response")
	}
}
