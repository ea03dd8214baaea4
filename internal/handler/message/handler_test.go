package message

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anythingboes/studio-chat/internal/service/responder"
)

type failingResponder struct{}

func (failingResponder) Name() string { return "failing" }

func (failingResponder) Reply(context.Context, string) (string, error) {
	return "", errors.New("model offline")
}

func setupRouter(r responder.Responder) *chi.Mux {
	router := chi.NewRouter()
	New(r, zerolog.Nop()).RegisterRoutes(router)
	return router
}

func postMessage(router http.Handler, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/message", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestMessageEchoesBack(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"message": "hello"})
	resp := postMessage(setupRouter(responder.Echo{}), payload)

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"response":"You said: hello"}`, resp.Body.String())
}

func TestMessageMissingField(t *testing.T) {
	for name, body := range map[string]string{
		"empty object":  `{}`,
		"empty message": `{"message":""}`,
		"invalid json":  `{"message":`,
		"null message":  `{"message":null}`,
		"zero":          `{"message":0}`,
		"false":         `{"message":false}`,
		"empty array":   `{"message":[]}`,
	} {
		t.Run(name, func(t *testing.T) {
			resp := postMessage(setupRouter(responder.Echo{}), []byte(body))

			assert.Equal(t, http.StatusBadRequest, resp.Code)
			assert.JSONEq(t, `{"error":"No message provided"}`, resp.Body.String())
		})
	}
}

func TestMessageNonStringValues(t *testing.T) {
	for body, want := range map[string]string{
		`{"message":42}`:        "You said: 42",
		`{"message":1.5}`:       "You said: 1.5",
		`{"message":true}`:      "You said: True",
		`{"message":[1,2]}`:     "You said: [1,2]",
		`{"message":{"a":"b"}}`: `You said: {"a":"b"}`,
	} {
		t.Run(body, func(t *testing.T) {
			resp := postMessage(setupRouter(responder.Echo{}), []byte(body))

			require.Equal(t, http.StatusOK, resp.Code)
			var got map[string]string
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
			assert.Equal(t, want, got["response"])
		})
	}
}

func TestMessageResponderFailure(t *testing.T) {
	payload, _ := json.Marshal(map[string]string{"message": "hello"})
	resp := postMessage(setupRouter(failingResponder{}), payload)

	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.JSONEq(t, `{"error":"Internal server error"}`, resp.Body.String())
}

func TestMessageRejectsGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/message", nil)
	resp := httptest.NewRecorder()
	setupRouter(responder.Echo{}).ServeHTTP(resp, req)

	assert.Equal(t, http.StatusMethodNotAllowed, resp.Code)
}
