package widget

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// NewDevProxy forwards /api/* to the locally running backend with the /api
// prefix stripped, so the development build can use a relative endpoint.
func NewDevProxy(backendURL string, logger zerolog.Logger) (http.Handler, error) {
	target, err := url.Parse(backendURL)
	if err != nil || !target.IsAbs() {
		return nil, fmt.Errorf("invalid backend url %q", backendURL)
	}

	logger = logger.With().Str("component", "dev-proxy").Str("target", target.String()).Logger()

	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.Out.URL.Path = stripAPIPrefix(pr.In.URL.Path)
			pr.Out.URL.RawPath = ""
			pr.SetURL(target)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Warn().Err(err).Str("path", r.URL.Path).Msg("backend unreachable")
			w.WriteHeader(http.StatusBadGateway)
		},
	}
	return proxy, nil
}

func stripAPIPrefix(path string) string {
	trimmed := strings.TrimPrefix(path, "/api")
	if trimmed == "" {
		return "/"
	}
	return trimmed
}
