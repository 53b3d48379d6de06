package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	IdentitySubmissions prometheus.Counter
	IdentityResets      prometheus.Counter
	ReleasesPublished   prometheus.Counter
	PublishRejected     prometheus.Counter
	CatalogQueries      prometheus.Counter
	RequestDuration     *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		IdentitySubmissions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "release_gateway_identity_submissions_total",
			Help: "Total number of identity verification submissions",
		}),
		IdentityResets: promauto.NewCounter(prometheus.CounterOpts{
			Name: "release_gateway_identity_resets_total",
			Help: "Total number of identity record resets",
		}),
		ReleasesPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "release_gateway_releases_published_total",
			Help: "Total number of releases published through the issuer flow",
		}),
		PublishRejected: promauto.NewCounter(prometheus.CounterOpts{
			Name: "release_gateway_publish_rejected_total",
			Help: "Total number of publish attempts rejected by validation",
		}),
		CatalogQueries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "release_gateway_catalog_queries_total",
			Help: "Total number of catalog search queries served",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "release_gateway_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

func (m *Metrics) IncrementIdentitySubmissions() { m.IdentitySubmissions.Inc() }
func (m *Metrics) IncrementIdentityResets()      { m.IdentityResets.Inc() }
func (m *Metrics) IncrementReleasesPublished()   { m.ReleasesPublished.Inc() }
func (m *Metrics) IncrementPublishRejected()     { m.PublishRejected.Inc() }
func (m *Metrics) IncrementCatalogQueries()      { m.CatalogQueries.Inc() }
