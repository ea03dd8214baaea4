package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anythingboes/studio-chat/internal/service/responder"
)

func TestRouterServesMessage(t *testing.T) {
	router := NewRouter(responder.Echo{}, []string{"*"}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewBufferString(`{"message":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"response":"You said: hello"}`, resp.Body.String())
}

func TestRouterCORSPreflight(t *testing.T) {
	router := NewRouter(responder.Echo{}, []string{"https://anything-boes.web.app"}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodOptions, "/message", nil)
	req.Header.Set("Origin", "https://anything-boes.web.app")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, "https://anything-boes.web.app", resp.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterHealthz(t *testing.T) {
	router := NewRouter(responder.Echo{}, []string{"*"}, zerolog.Nop())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok","responder":"echo"}`, resp.Body.String())
}

func TestRouterMetrics(t *testing.T) {
	router := NewRouter(responder.Echo{}, []string{"*"}, zerolog.Nop())
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "studio_chat_http_requests_total")
}
