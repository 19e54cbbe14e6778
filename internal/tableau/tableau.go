package tableau

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Float is the element type bound shared by tableaus and the stepping engines.
type Float = constraints.Float

// Tableau is the coefficient set (A, B, C) of an explicit Runge-Kutta method.
type Tableau[T Float] struct {
	name string
	a    Triangular[T]
	b    []T
	c    []T

	used     []bool
	recorded []bool
	kNum     int
}

// New builds a tableau from B, C and the N-1 rows of A, where N = len(b).
// Row i of A must hold exactly i+1 coefficients. The inputs are copied.
func New[T Float](b, c []T, a ...[]T) (*Tableau[T], error) {
	n := len(b)
	if n <= 1 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewStages, n)
	}
	if len(c) != n-1 {
		return nil, &ShapeError{Field: "C", Got: len(c), Want: n - 1}
	}
	if len(a) != n-1 {
		return nil, &ShapeError{Field: "A", Got: len(a), Want: n - 1}
	}
	for i, row := range a {
		if len(row) != i+1 {
			return nil, &ShapeError{Field: fmt.Sprintf("A[%d]", i), Got: len(row), Want: i + 1}
		}
	}

	t := &Tableau[T]{
		a: newTriangular(a),
		b: append([]T(nil), b...),
		c: append([]T(nil), c...),
	}
	t.analyze()
	return t, nil
}

// MustNew is like New but panics on a malformed tableau. It is meant for
// package-level method definitions.
func MustNew[T Float](b, c []T, a ...[]T) *Tableau[T] {
	t, err := New(b, c, a...)
	if err != nil {
		panic(err)
	}
	return t
}

// WithName returns a copy of t labelled with name. Coefficients are shared.
func (t *Tableau[T]) WithName(name string) *Tableau[T] {
	cp := *t
	cp.name = name
	return &cp
}

// Name returns the label set by WithName, or "" for anonymous tableaus.
func (t *Tableau[T]) Name() string { return t.name }

// Stages returns N, the number of stages.
func (t *Tableau[T]) Stages() int { return len(t.b) }

// A returns the stage coupling matrix.
func (t *Tableau[T]) A() Triangular[T] { return t.a }

// B returns a copy of the final weights.
func (t *Tableau[T]) B() []T { return append([]T(nil), t.b...) }

// C returns a copy of the abscissas for stages 1..N-1.
func (t *Tableau[T]) C() []T { return append([]T(nil), t.c...) }

// Weight returns B[i] without copying.
func (t *Tableau[T]) Weight(i int) T { return t.b[i] }

// Node returns C[i-1], the step fraction at which stage i evaluates.
// Stage 0 always returns zero.
func (t *Tableau[T]) Node(i int) T {
	if i == 0 {
		return 0
	}
	return t.c[i-1]
}

// Coupling returns row i-1 of A: the weights stage i applies to earlier
// derivatives. The slice aliases the tableau and must not be modified.
func (t *Tableau[T]) Coupling(i int) []T {
	return t.a.row(i - 1)
}
