// Package telemetry records per-step analysis metrics and traces.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Step outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors for the insights engine.
type Metrics struct {
	StepsTotal      *prometheus.CounterVec
	StepDuration    *prometheus.HistogramVec
	RecordsAnalyzed *prometheus.CounterVec
	ForecastMethod  *prometheus.CounterVec
}

// NewMetrics registers the engine metrics on reg under namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StepsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "analysis_steps_total",
				Help:      "Analysis steps run, by step and outcome",
			},
			[]string{"step", "outcome"},
		),
		StepDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "analysis_step_duration_seconds",
				Help:      "Wall time of each analysis step",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 15},
			},
			[]string{"step"},
		),
		RecordsAnalyzed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_analyzed_total",
				Help:      "Normalized work orders fed into an analysis, by operation",
			},
			[]string{"operation"},
		),
		ForecastMethod: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "forecast_method_total",
				Help:      "Forecasts produced, by method",
			},
			[]string{"method"},
		),
	}
}

// ObserveStep records one step run. A nil receiver is a no-op.
func (m *Metrics) ObserveStep(step string, seconds float64, ok bool) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if !ok {
		outcome = OutcomeError
	}
	m.StepsTotal.WithLabelValues(step, outcome).Inc()
	m.StepDuration.WithLabelValues(step).Observe(seconds)
}

func (m *Metrics) ObserveRecords(operation string, n int) {
	if m == nil {
		return
	}
	m.RecordsAnalyzed.WithLabelValues(operation).Add(float64(n))
}

func (m *Metrics) ObserveForecast(method string) {
	if m == nil || method == "" {
		return
	}
	m.ForecastMethod.WithLabelValues(method).Inc()
}
