package metrics

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeExpired  = "expired"
	OutcomeError    = "error"
	OutcomeConflict = "conflict"
	OutcomeCanceled = "canceled"
)

var (
	// ShareIssues counts generate-link attempts by outcome.
	ShareIssues = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "framevault_share_issues_total",
		Help: "Share links issued, by outcome",
	}, []string{"outcome"})

	// ShareResolutions counts token resolutions by outcome.
	ShareResolutions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "framevault_share_resolutions_total",
		Help: "Share token resolutions, by outcome",
	}, []string{"outcome"})

	// StoreRequestDuration times record store calls made by the web app.
	StoreRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "framevault_store_request_duration_seconds",
		Help:    "Record store request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection", "method", "outcome"})

	// StoreUp is 1 while the web app's last record store ping succeeded.
	StoreUp = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "framevault_store_up",
		Help: "Whether the record store answered the last readiness ping",
	})

	recordsDesc = prometheus.NewDesc(
		"framevault_records",
		"Number of records held by the record store, by collection",
		[]string{"collection"},
		nil,
	)
)

// CountFunc returns the current number of records per collection.
type CountFunc func(ctx context.Context) (map[string]int, error)

// RecordCollector is a custom Prometheus collector that counts records in
// the backend on each scrape.
type RecordCollector struct {
	count CountFunc
}

// Describe sends the metric descriptor to the channel.
func (c *RecordCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- recordsDesc
}

// Collect asks the backend for record counts and emits them as gauges.
func (c *RecordCollector) Collect(ch chan<- prometheus.Metric) {
	counts, err := c.count(context.Background())
	if err != nil {
		slog.Error("failed to collect record counts", "error", err)
		return
	}
	for collection, n := range counts {
		ch <- prometheus.MustNewConstMetric(recordsDesc, prometheus.GaugeValue, float64(n), collection)
	}
}

var (
	appOnce   sync.Once
	storeOnce sync.Once
)

// InitApp registers the web app's metrics. Safe to call more than once.
func InitApp() {
	appOnce.Do(func() {
		prometheus.MustRegister(ShareIssues, ShareResolutions, StoreRequestDuration, StoreUp)
	})
}

// InitStore registers the record store's collector. Safe to call more than once.
func InitStore(count CountFunc) {
	storeOnce.Do(func() {
		prometheus.MustRegister(&RecordCollector{count: count})
	})
}

// Handler serves the default registry in the Prometheus text format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
