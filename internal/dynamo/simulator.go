package dynamo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/san-kum/rkstep/internal/rk"
)

type Simulator struct {
	f         rk.Func[float64]
	stepper   rk.Stepper[float64]
	metrics   []Metric
	observers []Observer
	logger    zerolog.Logger
	k         []float64
}

func New(f rk.Func[float64], stepper rk.Stepper[float64]) *Simulator {
	return &Simulator{
		f:         f,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		logger:    zerolog.Nop(),
		k:         rk.Buffer(stepper),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// WithLogger sets the logger used for run summaries and returns s.
func (s *Simulator) WithLogger(l zerolog.Logger) *Simulator {
	s.logger = l
	return s
}

func (s *Simulator) Stepper() rk.Stepper[float64] { return s.stepper }

// EngineName reports which stepping engine the simulator drives.
func EngineName(st rk.Stepper[float64]) string {
	switch st.(type) {
	case *rk.Static[float64]:
		return "specialized"
	case *rk.Generic[float64]:
		return "generic"
	default:
		return fmt.Sprintf("%T", st)
	}
}

// Step advances y(x) to y(x+h) with a single engine step.
func (s *Simulator) Step(x, y, h float64) float64 {
	return s.stepper.Step(s.f, y, y, x, h, s.k)
}

func (s *Simulator) Run(ctx context.Context, x0, y0 float64, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	result := &Result{
		Xs:      make([]float64, 0, cfg.Steps+1),
		Ys:      make([]float64, 0, cfg.Steps+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	counter := &rk.Counter[float64]{F: s.f}
	x, y := x0, y0
	s.record(result, 0, x, y)

	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			result.Evaluations = counter.Calls
			return result, ctx.Err()
		default:
		}

		newY := s.stepper.Step(counter, y, y, x, cfg.H, s.k)
		// x is recomputed from the step index so rounding does not accumulate.
		newX := x0 + float64(i+1)*cfg.H

		if cfg.ValidateState && !isFinite(newY) {
			result.Errors = append(result.Errors, &SimulationError{Step: i, X: x, Y: newY, Wrapped: ErrInvalidState})
			break
		}

		x, y = newX, newY
		result.StepsTaken++
		s.record(result, i+1, x, y)
	}

	result.Evaluations = counter.Calls
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	tab := s.stepper.Tableau()
	s.logger.Debug().
		Str("method", tab.Name()).
		Str("engine", EngineName(s.stepper)).
		Float64("h", cfg.H).
		Int("steps", result.StepsTaken).
		Int("evaluations", result.Evaluations).
		Int("errors", len(result.Errors)).
		Msg("run finished")

	return result, nil
}

func (s *Simulator) record(result *Result, step int, x, y float64) {
	result.Xs = append(result.Xs, x)
	result.Ys = append(result.Ys, y)
	for _, m := range s.metrics {
		m.Observe(x, y)
	}
	for _, obs := range s.observers {
		obs.OnStep(step, x, y)
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.H <= 0 || !isFinite(cfg.H) {
		return fmt.Errorf("%w: step size must be positive, got %f", ErrInvalidConfig, cfg.H)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("%w: step count must be positive, got %d", ErrInvalidConfig, cfg.Steps)
	}
	return nil
}

// RunWithCallback steps until cfg.Steps are done, the callback returns
// false, or ctx is canceled. Nothing is recorded.
func (s *Simulator) RunWithCallback(ctx context.Context, x0, y0 float64, cfg Config, callback func(x, y float64) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	x, y := x0, y0
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if !callback(x, y) {
			return nil
		}

		y = s.Step(x, y, cfg.H)
		x = x0 + float64(i+1)*cfg.H

		if cfg.ValidateState && !isFinite(y) {
			return &SimulationError{Step: i, X: x, Y: y, Wrapped: ErrInvalidState}
		}
	}

	callback(x, y)
	return nil
}
