package rk

import (
	"fmt"

	"github.com/san-kum/rkstep/internal/tableau"
)

// Stepper is implemented by both engines.
type Stepper[T tableau.Float] interface {
	// Step runs one step from (x, y) with size h, adding every stage
	// contribution to acc and returning it. Passing acc = y yields y(x+h).
	Step(f Func[T], acc, y, x, h T, k []T) T
	// KSize is the minimum derivative buffer length Step accepts.
	KSize() int
	Tableau() *tableau.Tableau[T]
}

// Buffer allocates a derivative buffer sized for s.
func Buffer[T tableau.Float](s Stepper[T]) []T {
	return make([]T, s.KSize())
}

func requireBuffer[T tableau.Float](k []T, n int) {
	if len(k) < n {
		panic(fmt.Sprintf("rk: derivative buffer has %d slots, need %d", len(k), n))
	}
}

// Step is the generic engine: every stage of tab is evaluated and K[i] is
// kept in k[i]. k must hold at least tab.Stages() values.
func Step[T tableau.Float](f Func[T], tab *tableau.Tableau[T], acc, y, x, h T, k []T) T {
	n := tab.Stages()
	requireBuffer(k, n)

	for i := 0; i < n; i++ {
		if i == 0 {
			k[0] = f.Evaluate(x, y)
		} else {
			yi := y
			for j, a := range tab.Coupling(i) {
				yi = yi + a*k[j]*h
			}
			k[i] = f.Evaluate(x+tab.Node(i)*h, yi)
		}
		acc = acc + k[i]*tab.Weight(i)*h
	}
	return acc
}

// Generic binds a tableau to the generic engine.
type Generic[T tableau.Float] struct {
	tab *tableau.Tableau[T]
}

func NewGeneric[T tableau.Float](tab *tableau.Tableau[T]) *Generic[T] {
	return &Generic[T]{tab: tab}
}

func (g *Generic[T]) Step(f Func[T], acc, y, x, h T, k []T) T {
	return Step(f, g.tab, acc, y, x, h, k)
}

func (g *Generic[T]) KSize() int                   { return g.tab.Stages() }
func (g *Generic[T]) Tableau() *tableau.Tableau[T] { return g.tab }
