// Package rk advances y' = f(x, y) by one explicit Runge-Kutta step for an
// arbitrary [tableau.Tableau].
//
// Two engines share the same stage recurrence:
//
//   - [Step] and [Generic] take the tableau as a plain value and evaluate
//     every stage, keeping each stage derivative in k[i].
//   - [Static] is built once per tableau by [Specialize]. It drops stages
//     the sparsity analysis proves dead and stores only the derivatives
//     that must outlive the following stage, so its buffer shrinks to
//     [tableau.Tableau.KBufferSize] slots.
//
// For finite values both engines produce bit-identical results.
//
// # Example
//
//	f := rk.FuncOf[float64](func(x, y float64) float64 { return y })
//	s := rk.Specialize(tableau.RK4)
//	k := rk.Buffer[float64](s)
//	y = s.Step(f, y, y, x, h, k)
//
// # Thread Safety
//
// Engines are read-only after construction. The derivative buffer is
// scratch space owned by exactly one Step call at a time.
package rk
