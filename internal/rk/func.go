package rk

import "github.com/san-kum/rkstep/internal/tableau"

// Func is the right-hand side of y' = f(x, y). Engines call Evaluate once per
// evaluated stage, in stage order, with non-decreasing x inside a step for
// methods whose nodes are ordered.
type Func[T tableau.Float] interface {
	Evaluate(x, y T) T
}

// FuncOf adapts an ordinary function to Func.
type FuncOf[T tableau.Float] func(x, y T) T

func (f FuncOf[T]) Evaluate(x, y T) T { return f(x, y) }

// Counter wraps a Func and counts evaluations.
type Counter[T tableau.Float] struct {
	F     Func[T]
	Calls int
}

func (c *Counter[T]) Evaluate(x, y T) T {
	c.Calls++
	return c.F.Evaluate(x, y)
}
