package metrics

import "github.com/prometheus/client_golang/prometheus"

// Recommendation pipeline metrics.
var (
	RecommendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "foodrec",
			Name:      "recommend_requests_total",
			Help:      "Total number of recommendation requests",
		},
		[]string{"goal", "diet", "status"},
	)

	RecommendDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "foodrec",
			Name:      "recommend_duration_seconds",
			Help:      "Synthesize, transform and search latency in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	SessionCardsAddedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "foodrec",
			Name:      "session_cards_added_total",
			Help:      "Cards newly added to session result sets",
		},
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodrec",
			Name:      "active_sessions",
			Help:      "Number of live web sessions",
		},
	)

	CatalogRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "foodrec",
			Name:      "catalog_records",
			Help:      "Number of records in the loaded catalog",
		},
	)
)

var registered bool

// Register registers the metrics with the default registry. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(RecommendRequestsTotal)
	prometheus.MustRegister(RecommendDuration)
	prometheus.MustRegister(SessionCardsAddedTotal)
	prometheus.MustRegister(ActiveSessions)
	prometheus.MustRegister(CatalogRecords)
	prometheus.MustRegister(httpRequestDuration)
	prometheus.MustRegister(httpRequestsTotal)
	registered = true
}
