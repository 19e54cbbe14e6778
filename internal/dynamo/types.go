package dynamo

import "math"

type Config struct {
	H             float64
	Steps         int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		H:             0.01,
		Steps:         100,
		ValidateState: true,
	}
}

// Observer is notified with every point of the solution, including the
// initial one.
type Observer interface {
	OnStep(step int, x, y float64)
}

type Metric interface {
	Name() string
	Observe(x, y float64)
	Value() float64
	Reset()
}

type Result struct {
	Xs          []float64
	Ys          []float64
	Metrics     map[string]float64
	StepsTaken  int
	Evaluations int
	Errors      []error
}

// Final returns the last point of the solution.
func (r *Result) Final() (x, y float64) {
	n := len(r.Xs)
	if n == 0 {
		return math.NaN(), math.NaN()
	}
	return r.Xs[n-1], r.Ys[n-1]
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
