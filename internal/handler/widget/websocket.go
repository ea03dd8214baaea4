package widget

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/model/chat"
	chatservice "github.com/anythingboes/studio-chat/internal/service/chat"
)

const (
	readTimeout  = 60 * time.Second
	writeTimeout = 10 * time.Second
	pingInterval = 30 * time.Second
	outboundSize = 32
)

// WebSocketHandler bridges a browser view to one conversation controller.
// The connection is the view's lifetime: the conversation opens on connect
// and is discarded on disconnect.
type WebSocketHandler struct {
	chatSvc  *chatservice.Service
	upgrader websocket.Upgrader
	logger   zerolog.Logger
}

// NewWebSocketHandler creates the view bridge handler.
func NewWebSocketHandler(chatSvc *chatservice.Service, logger zerolog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger: logger.With().Str("component", "websocket").Logger(),
	}
}

// RegisterRoutes mounts the WebSocket route.
func (h *WebSocketHandler) RegisterRoutes(r chi.Router) {
	r.Get("/ws", h.handleWebSocket)
}

type inboundMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type outgoingMessage struct {
	Type      string      `json:"type"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func newOutgoing(kind string, data interface{}) outgoingMessage {
	return outgoingMessage{Type: kind, Data: data, Timestamp: time.Now().UnixMilli()}
}

// session is the per-connection state shared by the reader, the writer and
// the controller listener.
type session struct {
	out  chan outgoingMessage
	done chan struct{}
	once sync.Once
}

func (s *session) push(msg outgoingMessage) {
	select {
	case s.out <- msg:
	case <-s.done:
	}
}

func (s *session) close() {
	s.once.Do(func() { close(s.done) })
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("upgrade failed")
		return
	}
	defer conn.Close()

	sess := &session{
		out:  make(chan outgoingMessage, outboundSize),
		done: make(chan struct{}),
	}
	defer sess.close()

	ctx := r.Context()
	conv, err := h.chatSvc.Open(ctx, func(state chat.State) {
		sess.push(newOutgoing("state", state))
	})
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to open conversation")
		return
	}
	logger := h.logger.With().Str("conversation_id", conv.ID).Logger()
	logger.Info().Msg("view connected")

	defer func() {
		if err := h.chatSvc.Close(context.Background(), conv.ID); err != nil {
			logger.Warn().Err(err).Msg("failed to close conversation")
		}
		logger.Info().Msg("view disconnected")
	}()

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		h.writeLoop(conn, sess, logger)
	}()
	defer func() { <-writerDone }()
	defer sess.close()

	sess.push(newOutgoing("state", conv.Controller.State()))

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(readTimeout))
	})

	for {
		var msg inboundMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug().Err(err).Msg("read error")
			}
			return
		}
		_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

		h.handleMessage(ctx, sess, conv.Controller, msg)
	}
}

func (h *WebSocketHandler) handleMessage(ctx context.Context, sess *session, ctrl *chatservice.Controller, msg inboundMessage) {
	switch msg.Type {
	case "draft":
		ctrl.UpdateDraft(msg.Text)
	case "submit":
		ctrl.Submit(ctx, msg.Text)
	default:
		sess.push(newOutgoing("error", map[string]string{"message": "unsupported message type: " + msg.Type}))
	}
}

func (h *WebSocketHandler) writeLoop(conn *websocket.Conn, sess *session, logger zerolog.Logger) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-sess.done:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		case msg := <-sess.out:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Error().Err(err).Msg("failed to marshal outgoing message")
				continue
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Debug().Err(err).Msg("write failed")
				sess.close()
				_ = conn.Close()
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				sess.close()
				_ = conn.Close()
				return
			}
		}
	}
}
