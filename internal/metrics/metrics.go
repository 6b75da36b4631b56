package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "tecnitrama_requests_total", Help: "Total HTTP requests by method and status"},
		[]string{"method", "status"},
	)
	AuthFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tecnitrama_auth_failures_total", Help: "Total rejected authentication attempts"},
	)
	NotificationsFanout = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tecnitrama_notifications_fanout_total", Help: "Total user notification rows created by fan-out"},
	)
	SearchIndexErrors = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "tecnitrama_search_index_errors_total", Help: "Total failed search index operations"},
	)
)

func Register() {
	prometheus.MustRegister(RequestsTotal, AuthFailures, NotificationsFanout, SearchIndexErrors)
}
