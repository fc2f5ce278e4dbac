package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mark-chris/tmgen/internal/threat"
)

// Recorder collects threat generation metrics in its own registry
type Recorder struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	threats     *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

// NewRecorder creates a recorder with a fresh registry
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmgen_generations_total",
				Help: "Total number of threat generation calls",
			},
			[]string{"mode", "methodology"},
		),
		threats: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tmgen_threats_generated_total",
				Help: "Total number of threats generated",
			},
			[]string{"mode", "methodology"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tmgen_generation_duration_seconds",
				Help:    "Time taken to generate threats for one element",
				Buckets: []float64{.00001, .00005, .0001, .0005, .001, .005, .01},
			},
			[]string{"mode"},
		),
	}

	r.registry.MustRegister(r.generations, r.threats, r.duration)
	return r
}

// ObserveGeneration implements threat.Observer
func (r *Recorder) ObserveGeneration(mode threat.Mode, m threat.Methodology, threats int, elapsed time.Duration) {
	r.generations.WithLabelValues(string(mode), string(m)).Inc()
	r.threats.WithLabelValues(string(mode), string(m)).Add(float64(threats))
	r.duration.WithLabelValues(string(mode)).Observe(elapsed.Seconds())
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Handler serves the recorder's metrics
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
