package monitoring

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 15, 60},
		},
		[]string{"method", "path"},
	)

	// StoryGenerations counts calls to the language model by outcome
	// (success, error, rate_limited).
	StoryGenerations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_generations_total",
			Help: "Total number of story generation attempts",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(RequestsTotal)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(StoryGenerations)
	})
}

func Handler() http.Handler {
	return promhttp.Handler()
}
