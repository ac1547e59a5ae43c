package metrics

import (
	"errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"strconv"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_board_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "offer_board_backend_request_duration_seconds",
			Help:    "Duration of requests to the offers backend in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "status"},
	)
	SubmittedOffersCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offer_board_offers_submitted_total",
			Help: "Total number of offers accepted by the backend.",
		},
	)
	FailedSubmitsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "offer_board_offer_submits_failed_total",
			Help: "Total number of offer submits that the backend rejected or that did not reach it.",
		},
	)
	StatsCacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "offer_board_stats_cache_hits_total",
			Help: "Dashboard stats served from cache.",
		},
		[]string{"key"},
	)
)

func StartMetricsServer(port int) *http.Server {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(BackendRequestDuration)
	prometheus.MustRegister(SubmittedOffersCounter)
	prometheus.MustRegister(FailedSubmitsCounter)
	prometheus.MustRegister(StatsCacheHits)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	server := &http.Server{Addr: ":" + strconv.Itoa(port), Handler: mux}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()
	return server
}
