// Package metrics collects per-run Prometheus metrics and exports them
// in the node_exporter textfile format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Fetch outcomes used as the "outcome" label.
const (
	OutcomeOK           = "ok"
	OutcomeUnauthorized = "unauthorized"
	OutcomeStatus       = "status"
	OutcomeNetwork      = "network"
	OutcomeDecode       = "decode"
)

// Recorder owns a private registry so each CLI run exports only its own series.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	TMDBRequests    *prometheus.CounterVec
	TMDBDuration    prometheus.Histogram
	SitemapURLs     *prometheus.GaugeVec
	SitemapFindings *prometheus.GaugeVec
	LastRun         prometheus.Gauge
}

// New creates a Recorder with all collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		TMDBRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scenestill_tmdb_requests_total",
				Help: "Movie detail requests sent to TMDB, by outcome.",
			},
			[]string{"outcome"},
		),
		TMDBDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "scenestill_tmdb_request_duration_seconds",
				Help:    "Duration of TMDB movie detail requests.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
		),
		SitemapURLs: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scenestill_sitemap_urls",
				Help: "URL entries in the generated sitemap, by section.",
			},
			[]string{"section"},
		),
		SitemapFindings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "scenestill_sitemap_findings",
				Help: "Validator findings for the last checked sitemap, by kind.",
			},
			[]string{"kind"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "scenestill_last_run_timestamp_seconds",
				Help: "Unix time the last run finished.",
			},
		),
	}

	r.registry.MustRegister(r.TMDBRequests, r.TMDBDuration, r.SitemapURLs, r.SitemapFindings, r.LastRun)
	return r
}

// Registry exposes the gatherer, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// ObserveFetch records one TMDB request.
func (r *Recorder) ObserveFetch(outcome string, elapsed time.Duration) {
	if r == nil {
		return
	}
	r.TMDBRequests.WithLabelValues(outcome).Inc()
	r.TMDBDuration.Observe(elapsed.Seconds())
}

// SetSitemapURLs records the entry count of one sitemap section.
func (r *Recorder) SetSitemapURLs(section string, n int) {
	if r == nil {
		return
	}
	r.SitemapURLs.WithLabelValues(section).Set(float64(n))
}

// SetFindings records validator totals (issues, warnings, urls, unique).
func (r *Recorder) SetFindings(kind string, n int) {
	if r == nil {
		return
	}
	r.SitemapFindings.WithLabelValues(kind).Set(float64(n))
}

// MarkRun stamps the completion time.
func (r *Recorder) MarkRun(at time.Time) {
	if r == nil {
		return
	}
	r.LastRun.Set(float64(at.Unix()))
}

// WriteTextfile writes all series to path. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics textfile %s: %w", path, err)
	}
	return nil
}
