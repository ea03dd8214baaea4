package message

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/metrics"
	"github.com/anythingboes/studio-chat/internal/service/responder"
	"github.com/anythingboes/studio-chat/pkg/utils"
)

// Handler serves the message-answering endpoint.
type Handler struct {
	responder responder.Responder
	logger    zerolog.Logger
}

// New creates the message handler.
func New(r responder.Responder, logger zerolog.Logger) *Handler {
	return &Handler{
		responder: r,
		logger:    logger.With().Str("component", "message").Str("responder", r.Name()).Logger(),
	}
}

// RegisterRoutes mounts the message routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/message", h.handleMessage)
}

// handleMessage answers {"message": ...} with {"response": ...}.
func (h *Handler) handleMessage(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Message any `json:"message"`
	}

	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	err := decoder.Decode(&payload)
	text, ok := messageText(payload.Message)
	if err != nil || !ok {
		metrics.MessagesAnswered.WithLabelValues(h.responder.Name(), "rejected").Inc()
		utils.RespondError(w, http.StatusBadRequest, "No message provided")
		return
	}

	reply, err := h.responder.Reply(r.Context(), text)
	if err != nil {
		metrics.MessagesAnswered.WithLabelValues(h.responder.Name(), "failed").Inc()
		h.logger.Error().Err(err).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("error processing request")
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	metrics.MessagesAnswered.WithLabelValues(h.responder.Name(), "answered").Inc()
	utils.RespondJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// messageText renders any JSON message value as text. Empty values (null,
// "", false, zero, empty array or object) count as no message.
func messageText(v any) (string, bool) {
	switch m := v.(type) {
	case nil:
		return "", false
	case string:
		return m, m != ""
	case bool:
		if !m {
			return "", false
		}
		return "True", true
	case json.Number:
		if f, err := m.Float64(); err == nil && f == 0 {
			return "", false
		}
		return m.String(), true
	case []any:
		if len(m) == 0 {
			return "", false
		}
	case map[string]any:
		if len(m) == 0 {
			return "", false
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(raw), true
}
