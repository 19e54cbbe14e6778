package rk

import "github.com/san-kum/rkstep/internal/tableau"

// Integrator pairs a stepper with its own derivative buffer so callers can
// advance a solution without managing scratch space.
type Integrator[T tableau.Float] struct {
	stepper Stepper[T]
	k       []T
}

func NewIntegrator[T tableau.Float](s Stepper[T]) *Integrator[T] {
	return &Integrator[T]{stepper: s, k: Buffer(s)}
}

// Advance returns y(x+h) starting from y(x).
func (in *Integrator[T]) Advance(f Func[T], x, y, h T) T {
	return in.stepper.Step(f, y, y, x, h, in.k)
}

func (in *Integrator[T]) Stepper() Stepper[T] { return in.stepper }
