package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the forecast service.
type Metrics struct {
	Forecasts     *prometheus.CounterVec   // labels: outcome={success,invalid_date,model_unavailable,prediction_failure,error}
	ModelDuration *prometheus.HistogramVec // labels: pollutant
	OutOfRange    *prometheus.CounterVec   // labels: pollutant
	ForecastCache *prometheus.CounterVec   // labels: result={hit,miss}
	LastAQI       prometheus.Gauge
}

// NewMetrics creates and registers all forecast metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Forecasts,
		m.ModelDuration,
		m.OutOfRange,
		m.ForecastCache,
		m.LastAQI,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, so tests can
// build as many as they need.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		Forecasts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aqi",
			Name:      "forecasts_total",
			Help:      "Forecast requests by outcome.",
		}, []string{"outcome"}),
		ModelDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "aqi",
			Name:      "model_duration_seconds",
			Help:      "Per-pollutant model invocation duration in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"pollutant"}),
		OutOfRange: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aqi",
			Name:      "out_of_range_total",
			Help:      "Predicted concentrations outside the pollutant's breakpoint table.",
		}, []string{"pollutant"}),
		ForecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "aqi",
			Name:      "forecast_cache_total",
			Help:      "Forecast cache lookups by result.",
		}, []string{"result"}),
		LastAQI: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "aqi",
			Name:      "last_forecast_value",
			Help:      "AQI of the most recently computed forecast.",
		}),
	}
}
