package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/anythingboes/studio-chat/internal/handler/message"
	middlewarePkg "github.com/anythingboes/studio-chat/internal/middleware"
	"github.com/anythingboes/studio-chat/internal/service/responder"
	"github.com/anythingboes/studio-chat/pkg/utils"
)

// NewRouter wires the answering backend routes.
func NewRouter(r responder.Responder, allowedOrigins []string, logger zerolog.Logger) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewarePkg.Metrics)
	router.Use(middlewarePkg.Logger(logger))
	router.Use(middleware.Recoverer)
	// The deployed widget calls from another origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         300,
	}))

	message.New(r, logger).RegisterRoutes(router)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"responder": r.Name(),
		})
	})
	router.Handle("/metrics", promhttp.Handler())

	return router
}
