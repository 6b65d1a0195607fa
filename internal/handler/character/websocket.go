package character

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/gamehub/backend/internal/handler/httpx"
	"github.com/zhouzirui/gamehub/backend/internal/service/games"
	"github.com/zhouzirui/gamehub/backend/pkg/utils"
)

const (
	readTimeout  = 60 * time.Second
	pingInterval = 54 * time.Second
	writeTimeout = 10 * time.Second
)

// WebSocketHandler carries guessing turns over a WebSocket.
type WebSocketHandler struct {
	game     *games.Character
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the WebSocket transport for game.
func NewWebSocketHandler(game *games.Character) *WebSocketHandler {
	return &WebSocketHandler{
		game: game,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(*http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

type inboundMessage struct {
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId,omitempty"`
	Data      any    `json:"data,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

type errorData struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if err := h.game.Check(r.Context(), sessionID); err != nil {
		status, msg := httpx.StatusOf(err)
		utils.RespondError(r.Context(), w, status, msg)
		return
	}

	logger := log.Ctx(r.Context()).With().Str("component", "character-ws").Str("session_id", sessionID).Logger()

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(logger.WithContext(r.Context()))
	defer cancel()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})
	go pingLoop(ctx, conn)

	h.send(ctx, conn, outgoingMessage{Type: "connected", SessionID: sessionID})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("read failed")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(readTimeout))

		reply, err := h.game.Turn(ctx, sessionID, msg.Text)
		if err != nil {
			status, text := httpx.StatusOf(err)
			h.send(ctx, conn, outgoingMessage{
				Type:      "error",
				SessionID: sessionID,
				Data:      errorData{Status: status, Message: text},
			})
			if status == http.StatusNotFound {
				h.close(conn, "session ended")
				return
			}
			continue
		}

		h.send(ctx, conn, outgoingMessage{Type: "turn", SessionID: sessionID, Data: reply})
		if reply.Done {
			h.close(conn, "game over")
			return
		}
	}
}

func (h *WebSocketHandler) send(ctx context.Context, conn *websocket.Conn, msg outgoingMessage) {
	msg.Timestamp = time.Now().Unix()
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(msg); err != nil {
		log.Ctx(ctx).Debug().Err(err).Str("type", msg.Type).Msg("write failed")
	}
}

func (h *WebSocketHandler) close(conn *websocket.Conn, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, reason),
		time.Now().Add(writeTimeout))
}

// pingLoop keeps idle connections alive. WriteControl may run concurrently
// with the reader loop's writes.
func pingLoop(ctx context.Context, conn *websocket.Conn) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				return
			}
		}
	}
}
