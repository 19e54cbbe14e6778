package rk

import "github.com/san-kum/rkstep/internal/tableau"

// carry marks a term that reads the derivative of the stage evaluated just
// before, which is held outside the buffer.
const carry = -1

type term[T tableau.Float] struct {
	coef T
	slot int
}

type stage[T tableau.Float] struct {
	index  int
	node   T
	weight T
	// slot is the buffer index for recorded stages, or -1.
	slot  int
	terms []term[T]
}

// Static is the specializing engine for one fixed tableau. The stage plan
// is computed once by Specialize and reused by every Step.
type Static[T tableau.Float] struct {
	tab    *tableau.Tableau[T]
	stages []stage[T]
	kSize  int
}

// Specialize builds the stage plan for tab. Dead stages are dropped, zero
// couplings become absent terms, and buffer slots are assigned only to
// recorded stages, in stage order.
func Specialize[T tableau.Float](tab *tableau.Tableau[T]) *Static[T] {
	n := tab.Stages()

	slots := make([]int, n)
	next := 0
	for p := 0; p < n; p++ {
		slots[p] = -1
		if tab.NeedRecordK(p) {
			slots[p] = next
			next++
		}
	}

	s := &Static[T]{tab: tab, kSize: tab.KBufferSize()}
	for i := 0; i < n; i++ {
		if !tab.IsUseK(i) {
			continue
		}
		st := stage[T]{
			index:  i,
			node:   tab.Node(i),
			weight: tab.Weight(i),
			slot:   slots[i],
		}
		if i > 0 {
			for j, a := range tab.Coupling(i) {
				if a == 0 {
					continue
				}
				// A non-zero coupling to j < i-1 implies NeedRecordK(j).
				src := slots[j]
				if j == i-1 {
					src = carry
				}
				st.terms = append(st.terms, term[T]{coef: a, slot: src})
			}
		}
		s.stages = append(s.stages, st)
	}
	return s
}

// Step runs one step, evaluating only the live stages. k must hold at
// least KSize values.
func (s *Static[T]) Step(f Func[T], acc, y, x, h T, k []T) T {
	requireBuffer(k, s.kSize)

	var prev T
	for i := range s.stages {
		st := &s.stages[i]

		var ki T
		if st.index == 0 {
			ki = f.Evaluate(x, y)
		} else {
			yi := y
			for _, tm := range st.terms {
				kj := prev
				if tm.slot != carry {
					kj = k[tm.slot]
				}
				yi = yi + tm.coef*kj*h
			}
			ki = f.Evaluate(x+st.node*h, yi)
		}

		if st.slot >= 0 {
			k[st.slot] = ki
		}
		prev = ki
		acc = acc + ki*st.weight*h
	}
	return acc
}

func (s *Static[T]) KSize() int                   { return s.kSize }
func (s *Static[T]) Tableau() *tableau.Tableau[T] { return s.tab }

// Live returns the indices of the stages Step evaluates.
func (s *Static[T]) Live() []int {
	idx := make([]int, len(s.stages))
	for i, st := range s.stages {
		idx[i] = st.index
	}
	return idx
}

// Slot returns the buffer slot assigned to stage p, or -1 if its derivative
// is not kept past the next stage.
func (s *Static[T]) Slot(p int) int {
	for _, st := range s.stages {
		if st.index == p {
			return st.slot
		}
	}
	return -1
}
