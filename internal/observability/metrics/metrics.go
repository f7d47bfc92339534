package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var (
	once                         sync.Once
	metricsRouter                *chi.Mux
	timelockOperationsCounter    *prometheus.CounterVec
	redemptionDurationHistogram  *prometheus.HistogramVec
	clientLatency                *prometheus.HistogramVec
	dbLatency                    *prometheus.HistogramVec
	queuePublishErrorCounter     prometheus.Counter
	allocatedTreasuryGauge       prometheus.Gauge
	totalTreasuryGauge           prometheus.Gauge
	queuedActionsGauge           prometheus.Gauge
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	timelockOperationsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "timelock_operations_total",
			Help: "Total number of timelock operations by operation and outcome.",
		},
		[]string{"operation", "outcome"},
	)

	redemptionDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redemption_duration_seconds",
			Help:    "Histogram of redemption call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"outcome"},
	)

	clientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "client_request_duration_seconds",
			Help:    "Histogram of outgoing client request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"client", "method", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_latency_seconds",
			Help:    "Histogram of database operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	queuePublishErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_publish_error_total",
			Help: "Total number of failed audit event publishes.",
		},
	)

	allocatedTreasuryGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "treasury_allocated_wei",
			Help: "Treasury value earmarked by live proposals.",
		},
	)

	totalTreasuryGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "treasury_total_wei",
			Help: "Total native value held by the treasury.",
		},
	)

	queuedActionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "timelock_queued_actions",
			Help: "Number of actions currently queued in the timelock.",
		},
	)

	prometheus.MustRegister(
		timelockOperationsCounter,
		redemptionDurationHistogram,
		clientLatency,
		dbLatency,
		queuePublishErrorCounter,
		allocatedTreasuryGauge,
		totalTreasuryGauge,
		queuedActionsGauge,
	)
}

func RecordTimelockOperation(operation string, outcome Outcome) {
	if timelockOperationsCounter == nil {
		return
	}
	timelockOperationsCounter.WithLabelValues(operation, outcome.String()).Inc()
}

func ObserveRedemptionDuration(duration time.Duration, outcome Outcome) {
	if redemptionDurationHistogram == nil {
		return
	}
	redemptionDurationHistogram.WithLabelValues(outcome.String()).Observe(duration.Seconds())
}

func ObserveClientLatency(client, method string, duration time.Duration, outcome Outcome) {
	if clientLatency == nil {
		return
	}
	clientLatency.WithLabelValues(client, method, outcome.String()).Observe(duration.Seconds())
}

func ObserveDbLatency(method string, duration time.Duration, outcome Outcome) {
	if dbLatency == nil {
		return
	}
	dbLatency.WithLabelValues(method, outcome.String()).Observe(duration.Seconds())
}

func RecordQueuePublishError() {
	if queuePublishErrorCounter == nil {
		return
	}
	queuePublishErrorCounter.Inc()
}

func SetAllocatedTreasury(wei float64) {
	if allocatedTreasuryGauge == nil {
		return
	}
	allocatedTreasuryGauge.Set(wei)
}

func SetTotalTreasury(wei float64) {
	if totalTreasuryGauge == nil {
		return
	}
	totalTreasuryGauge.Set(wei)
}

func IncQueuedActions() {
	if queuedActionsGauge == nil {
		return
	}
	queuedActionsGauge.Inc()
}

func DecQueuedActions() {
	if queuedActionsGauge == nil {
		return
	}
	queuedActionsGauge.Dec()
}
