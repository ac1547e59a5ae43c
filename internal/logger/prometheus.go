package logger

import (
	"github.com/maxaizer/offer-board/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

const unknownErrorType = "unknown"

// errorCounterHook counts error entries by their error_type. Entries logged by
// the loki pusher itself carry no type and are counted as "loki".
type errorCounterHook struct {
	errors *prometheus.CounterVec
}

func errorTypeOf(entry *log.Entry) string {
	if errorType, ok := entry.Data[ErrorTypeField].(string); ok && errorType != "" {
		return errorType
	}
	if source, ok := entry.Data["source"].(string); ok && source != "" {
		return source
	}
	return unknownErrorType
}

func (h *errorCounterHook) Fire(entry *log.Entry) error {
	h.errors.WithLabelValues(errorTypeOf(entry)).Inc()
	return nil
}

func (h *errorCounterHook) Levels() []log.Level {
	return []log.Level{
		log.ErrorLevel,
		log.FatalLevel,
		log.PanicLevel,
	}
}

func addPrometheusHook() {
	log.AddHook(&errorCounterHook{errors: metrics.ErrorsCounter})
	log.Info("Prometheus logging enabled")
}
