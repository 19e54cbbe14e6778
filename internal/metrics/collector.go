package metrics

import (
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/san-kum/rkstep/internal/dynamo"
)

// Collector exports run statistics in Prometheus format. It owns its
// registry so several collectors can coexist in one process.
type Collector struct {
	registry    *prometheus.Registry
	steps       *prometheus.CounterVec
	evaluations *prometheus.CounterVec
	maxRelErr   *prometheus.GaugeVec
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := []string{"method", "engine"}

	return &Collector{
		registry: reg,
		steps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rkstep_steps_total",
			Help: "Total number of Runge-Kutta steps taken",
		}, labels),
		evaluations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "rkstep_evaluations_total",
			Help: "Total number of derivative evaluations",
		}, labels),
		maxRelErr: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "rkstep_max_relative_error",
			Help: "Maximum relative error of the last run against the exact solution",
		}, labels),
	}
}

// Observe adds a finished run. The error gauge is only set when the run
// carries a max_relative_error metric.
func (c *Collector) Observe(method, engine string, result *dynamo.Result) {
	c.steps.WithLabelValues(method, engine).Add(float64(result.StepsTaken))
	c.evaluations.WithLabelValues(method, engine).Add(float64(result.Evaluations))
	if v, ok := result.Metrics["max_relative_error"]; ok {
		c.maxRelErr.WithLabelValues(method, engine).Set(v)
	}
}

func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// WriteText writes every collected family in the Prometheus text format.
func (c *Collector) WriteText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
