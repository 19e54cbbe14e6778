package tableau

import "fmt"

// Sparsity summarises which stage derivatives a tableau actually needs.
type Sparsity struct {
	// Used[p] is IsUseK(p).
	Used []bool
	// Recorded[p] is NeedRecordK(p).
	Recorded []bool
	// NeedKNum is the number of recorded stages.
	NeedKNum int
}

// Skipped returns the number of stages whose derivative is never used.
func (s Sparsity) Skipped() int {
	n := 0
	for _, u := range s.Used {
		if !u {
			n++
		}
	}
	return n
}

// analyze fills the memoized sparsity flags. Only exact zeros count as
// absent coefficients.
func (t *Tableau[T]) analyze() {
	n := t.Stages()
	t.used = make([]bool, n)
	t.recorded = make([]bool, n)
	t.kNum = 0

	for p := 0; p < n; p++ {
		// Rows p+1..N-2 are the stages after the one immediately following p.
		for row := n - 2; row > p; row-- {
			if t.a.At(row, p) != 0 {
				t.recorded[p] = true
				break
			}
		}
		if t.recorded[p] {
			t.kNum++
		}

		used := t.b[p] != 0 || t.recorded[p]
		if p < n-1 && t.a.At(p, p) != 0 {
			used = true
		}
		t.used[p] = used
	}
}

func (t *Tableau[T]) checkStage(p int) {
	if p < 0 || p >= t.Stages() {
		panic(fmt.Sprintf("tableau: stage %d out of range [0, %d)", p, t.Stages()))
	}
}

// IsUseK reports whether the derivative of stage p can influence the step
// result, either through its weight B[p] or through a later stage.
func (t *Tableau[T]) IsUseK(p int) bool {
	t.checkStage(p)
	return t.used[p]
}

// NeedRecordK reports whether the derivative of stage p must outlive the
// next stage, i.e. some stage after p+1 references it.
func (t *Tableau[T]) NeedRecordK(p int) bool {
	t.checkStage(p)
	return t.recorded[p]
}

// NeedKNum returns the number of stages for which NeedRecordK holds.
func (t *Tableau[T]) NeedKNum() int { return t.kNum }

// KBufferSize is the derivative buffer length a specialized engine needs:
// NeedKNum with a floor of one.
func (t *Tableau[T]) KBufferSize() int {
	return max(1, t.kNum)
}

// Sparsity returns a copy of the per-stage analysis.
func (t *Tableau[T]) Sparsity() Sparsity {
	return Sparsity{
		Used:     append([]bool(nil), t.used...),
		Recorded: append([]bool(nil), t.recorded...),
		NeedKNum: t.kNum,
	}
}
