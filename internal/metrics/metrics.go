package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_chat_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "studio_chat_http_request_duration_seconds",
			Help:    "HTTP request duration",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	// Widget side
	ConversationsOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "studio_chat_conversations_open",
			Help: "Conversations whose view is currently mounted",
		},
	)

	AnswerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_chat_answer_requests_total",
			Help: "Outbound calls to the answering endpoint",
		},
		[]string{"result"}, // "ok" or "unusable"
	)

	// Backend side
	MessagesAnswered = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "studio_chat_messages_answered_total",
			Help: "Messages handled by the answering backend",
		},
		[]string{"responder", "outcome"},
	)
)
