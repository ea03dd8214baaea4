package middleware

import (
	"bufio"
	"errors"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

var errHijackUnsupported = errors.New("middleware: response writer does not support hijacking")

// statusWriter remembers whether the connection was handed off, as with a
// WebSocket upgrade, where no status is ever written through the wrapper.
type statusWriter struct {
	middleware.WrapResponseWriter
	hijacked bool
}

func wrapWriter(w http.ResponseWriter, r *http.Request) *statusWriter {
	return &statusWriter{WrapResponseWriter: middleware.NewWrapResponseWriter(w, r.ProtoMajor)}
}

func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := w.WrapResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, errHijackUnsupported
	}
	conn, rw, err := hj.Hijack()
	if err == nil {
		w.hijacked = true
	}
	return conn, rw, err
}

func (w *statusWriter) Flush() {
	if f, ok := w.WrapResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// status reports 101 for hijacked connections and 200 when the handler
// never wrote a header.
func (w *statusWriter) status() int {
	switch {
	case w.hijacked:
		return http.StatusSwitchingProtocols
	case w.Status() == 0:
		return http.StatusOK
	default:
		return w.Status()
	}
}
