package metrics

import "math"

// Exact is a closed-form solution y(x).
type Exact func(x float64) float64

// MaxRelativeError tracks max |y - exact(x)| / |exact(x)| over a run. Points
// where the exact solution is zero contribute their absolute error.
type MaxRelativeError struct {
	exact Exact
	max   float64
}

func NewMaxRelativeError(exact Exact) *MaxRelativeError {
	return &MaxRelativeError{exact: exact}
}

func (m *MaxRelativeError) Name() string { return "max_relative_error" }

func (m *MaxRelativeError) Observe(x, y float64) {
	want := m.exact(x)
	diff := math.Abs(y - want)
	if want != 0 {
		diff /= math.Abs(want)
	}
	m.max = math.Max(m.max, diff)
}

func (m *MaxRelativeError) Value() float64 { return m.max }
func (m *MaxRelativeError) Reset()         { m.max = 0 }

// MeanAbsError is the mean absolute deviation from the exact solution.
type MeanAbsError struct {
	exact   Exact
	sum     float64
	samples int
}

func NewMeanAbsError(exact Exact) *MeanAbsError {
	return &MeanAbsError{exact: exact}
}

func (m *MeanAbsError) Name() string { return "mean_abs_error" }

func (m *MeanAbsError) Observe(x, y float64) {
	m.sum += math.Abs(y - m.exact(x))
	m.samples++
}

func (m *MeanAbsError) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanAbsError) Reset() {
	m.sum = 0
	m.samples = 0
}

// FinalValue reports the last observed y.
type FinalValue struct {
	last float64
}

func NewFinalValue() *FinalValue { return &FinalValue{} }

func (f *FinalValue) Name() string         { return "final_value" }
func (f *FinalValue) Observe(x, y float64) { f.last = y }
func (f *FinalValue) Value() float64       { return f.last }
func (f *FinalValue) Reset()               { f.last = 0 }
