package widget

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	middlewarePkg "github.com/anythingboes/studio-chat/internal/middleware"
	chatservice "github.com/anythingboes/studio-chat/internal/service/chat"
	"github.com/anythingboes/studio-chat/pkg/utils"
	"github.com/anythingboes/studio-chat/web"
)

// Options configures the widget router.
type Options struct {
	// DevProxy, when set, serves /api/* in development builds.
	DevProxy http.Handler
}

// NewRouter wires the page, the view bridge and the optional dev proxy.
func NewRouter(chatSvc *chatservice.Service, logger zerolog.Logger, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.Metrics)
	r.Use(middlewarePkg.Logger(logger))
	r.Use(middleware.Recoverer)

	NewWebSocketHandler(chatSvc, logger).RegisterRoutes(r)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"conversations": chatSvc.Count(),
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	if opts.DevProxy != nil {
		r.Handle("/api", opts.DevProxy)
		r.Handle("/api/*", opts.DevProxy)
	}

	r.Handle("/*", web.Handler())

	return r
}
