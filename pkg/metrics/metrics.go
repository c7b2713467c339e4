// Package metrics exposes Prometheus metrics for the rinkside service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registry is custom to keep the scrape surface limited to our own series.
var registry = prometheus.NewRegistry()

var (
	gamesProcessed = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "rinkside",
		Name:      "games_processed_total",
		Help:      "Games assembled into a play-by-play table",
	})

	gamesFailed = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "rinkside",
		Name:      "games_failed_total",
		Help:      "Games that could not be assembled",
	})

	eventsNormalized = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "rinkside",
		Name:      "events_normalized_total",
		Help:      "Raw plays normalized into events",
	})

	fetchRetries = promauto.With(registry).NewCounter(prometheus.CounterOpts{
		Namespace: "rinkside",
		Name:      "fetch_retries_total",
		Help:      "Retried upstream fetch attempts",
	})

	assemblyDuration = promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
		Namespace: "rinkside",
		Name:      "assembly_duration_seconds",
		Help:      "Time to fetch and assemble one game",
		Buckets:   prometheus.DefBuckets,
	})

	httpRequests = promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rinkside",
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status"},
	)

	backfillJobsActive = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "rinkside",
		Name:      "backfill_jobs_active",
		Help:      "Backfill jobs currently running",
	})

	wsClients = promauto.With(registry).NewGauge(prometheus.GaugeOpts{
		Namespace: "rinkside",
		Name:      "websocket_clients",
		Help:      "Connected progress-feed clients",
	})
)

// RecordGameProcessed counts one successfully assembled game.
func RecordGameProcessed() { gamesProcessed.Inc() }

// RecordGameFailed counts one game that failed assembly.
func RecordGameFailed() { gamesFailed.Inc() }

// RecordEventsNormalized counts normalized events.
func RecordEventsNormalized(n int) { eventsNormalized.Add(float64(n)) }

// RecordFetchRetry counts one retried fetch attempt.
func RecordFetchRetry() { fetchRetries.Inc() }

// RecordAssemblyDuration records one game's assembly time in seconds.
func RecordAssemblyDuration(seconds float64) { assemblyDuration.Observe(seconds) }

// RecordHTTPRequest counts one served HTTP request.
func RecordHTTPRequest(route, method, status string) {
	httpRequests.WithLabelValues(route, method, status).Inc()
}

// BackfillJobStarted and BackfillJobFinished track the active-job gauge.
func BackfillJobStarted()  { backfillJobsActive.Inc() }
func BackfillJobFinished() { backfillJobsActive.Dec() }

// ClientConnected and ClientDisconnected track the websocket client gauge.
func ClientConnected()    { wsClients.Inc() }
func ClientDisconnected() { wsClients.Dec() }

// Handler serves the registry for scraping.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
