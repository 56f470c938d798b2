package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search outcome label values.
const (
	OutcomeOK         = "ok"
	OutcomeEmptyQuery = "empty_query"
	OutcomeError      = "error"
)

// Search Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipedex",
			Name:      "search_requests_total",
			Help:      "Total number of recipe searches by outcome",
		},
		[]string{"outcome"},
	)

	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recipedex",
			Name:      "search_duration_seconds",
			Help:      "Recipe search duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SearchResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "recipedex",
			Name:      "search_results",
			Help:      "Number of results returned per search",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	ImageLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recipedex",
			Name:      "image_lookups_total",
			Help:      "Image path lookups by result",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	CatalogRecipes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "recipedex",
			Name:      "catalog_recipes",
			Help:      "Number of recipes loaded at startup",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(SearchResults)
	prometheus.MustRegister(ImageLookupsTotal)
	prometheus.MustRegister(CatalogRecipes)
	searchMetricsRegistered = true
}

// ImageLookups records image resolution hits and misses.
type ImageLookups struct{}

// ObserveImageLookup implements images.Observer.
func (ImageLookups) ObserveImageLookup(found bool) {
	if found {
		ImageLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	ImageLookupsTotal.WithLabelValues("miss").Inc()
}
