package rk

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rkstep/internal/compare"
	"github.com/san-kum/rkstep/internal/tableau"
)

func identity[T tableau.Float]() FuncOf[T] {
	return func(x, y T) T { return y }
}

func expVec[T tableau.Float](n int, x0, dx float64) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = T(math.Exp(x0))
		x0 += dx
	}
	return out
}

func TestStep_TracksExponential(t *testing.T) {
	heun := tableau.MustNew([]float32{0.5, 0.5}, []float32{1}, []float32{1})
	const h = float32(0.01)
	f := identity[float32]()

	static := Specialize(heun)
	k := make([]float32, heun.Stages())

	x, y := float32(0), float32(1)
	result := make([]float32, 100)
	for i := range result {
		result[i] = y
		y = static.Step(f, y, y, x, h, k)
		x += h
	}
	assert.Less(t, compare.Diff(compare.Max, true, expVec[float32](100, 0, 0.01), result), 1e-3)

	for i := range result {
		result[i] = y
		y = Step[float32](f, heun, y, y, x, h, k)
		x += h
	}
	assert.Less(t, compare.Diff(compare.Max, true, expVec[float32](100, 1, 0.01), result), 1e-3)
}

func TestStep_UnitWeights(t *testing.T) {
	// With B = [1, 1] both stages carry full weight, so one step of y' = y
	// multiplies y by (1+h)^2 and the solution follows e^(2x), not e^x.
	tab := tableau.MustNew([]float64{1, 1}, []float64{1}, []float64{1})
	f := identity[float64]()
	k := make([]float64, tab.Stages())

	for _, h := range []float64{0.5, 0.1, 0.01} {
		got := Step[float64](f, tab, 1, 1, 0, h, k)
		assert.InDelta(t, (1+h)*(1+h), got, 1e-15)
		assert.Equal(t, got, Specialize(tab).Step(f, 1, 1, 0, h, k))
	}
}

func TestStep_Order(t *testing.T) {
	// Halving h must shrink the global error by about 2^order.
	tests := []struct {
		tab   *tableau.Tableau[float64]
		order float64
	}{
		{tableau.Heun, 2},
		{tableau.Midpoint, 2},
		{tableau.Ralston, 2},
		{tableau.Kutta3, 3},
		{tableau.RK4, 4},
		{tableau.RK38, 4},
		{tableau.RKF45, 4},
		{tableau.DoPri5, 5},
	}

	f := FuncOf[float64](func(x, y float64) float64 { return math.Cos(x) * y })
	exact := math.Exp(math.Sin(1))

	solve := func(s Stepper[float64], n int) float64 {
		in := NewIntegrator(s)
		h := 1.0 / float64(n)
		y := 1.0
		for i := 0; i < n; i++ {
			y = in.Advance(f, float64(i)*h, y, h)
		}
		return math.Abs(y - exact)
	}

	for _, tt := range tests {
		t.Run(tt.tab.Name(), func(t *testing.T) {
			s := Specialize(tt.tab)
			coarse := solve(s, 20)
			fine := solve(s, 40)
			observed := math.Log2(coarse / fine)
			assert.InDelta(t, tt.order, observed, 0.35, "coarse=%g fine=%g", coarse, fine)
		})
	}
}

func TestStatic_SkipsDeadStages(t *testing.T) {
	tests := []struct {
		tab   *tableau.Tableau[float64]
		calls int
	}{
		{tableau.Euler2, 1},
		{tableau.Heun, 2},
		{tableau.RK4, 4},
		{tableau.RKF45, 5},
		{tableau.DoPri5, 6},
	}

	for _, tt := range tests {
		t.Run(tt.tab.Name(), func(t *testing.T) {
			static := &Counter[float64]{F: identity[float64]()}
			generic := &Counter[float64]{F: identity[float64]()}

			Specialize(tt.tab).Step(static, 1, 1, 0, 0.1, make([]float64, tt.tab.KBufferSize()))
			Step(generic, tt.tab, 1, 1, 0, 0.1, make([]float64, tt.tab.Stages()))

			assert.Equal(t, tt.calls, static.Calls)
			assert.Equal(t, tt.tab.Stages(), generic.Calls)
		})
	}
}

func TestStatic_Plan(t *testing.T) {
	s := Specialize(tableau.DoPri5)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, s.Live())
	assert.Equal(t, 5, s.KSize())
	for p := 0; p < 5; p++ {
		assert.Equal(t, p, s.Slot(p))
	}
	assert.Equal(t, -1, s.Slot(5))
	assert.Equal(t, -1, s.Slot(6))

	rk4 := Specialize(tableau.RK4)
	assert.Equal(t, 1, rk4.KSize())
	assert.Equal(t, -1, rk4.Slot(0))
}

func TestStatic_SlotCompaction(t *testing.T) {
	// Stage 1 is dead; stages 0 and 2 are read by stage 3.
	tab := tableau.MustNew(
		[]float64{0, 0, 0, 1},
		[]float64{1, 1, 1},
		[]float64{0},
		[]float64{1, 0},
		[]float64{1, 0, 1},
	)
	s := Specialize(tab)

	assert.Equal(t, []int{0, 2, 3}, s.Live())
	assert.Equal(t, 1, s.KSize())
	assert.Equal(t, 0, s.Slot(0))
	assert.Equal(t, -1, s.Slot(2))

	f := FuncOf[float64](func(x, y float64) float64 { return x + y })
	want := Step(f, tab, 2, 2, 0.5, 0.25, make([]float64, 4))
	got := s.Step(f, 2, 2, 0.5, 0.25, make([]float64, s.KSize()))
	assert.Equal(t, want, got)
}

func TestEngines_ShortBufferPanics(t *testing.T) {
	f := identity[float64]()

	assert.PanicsWithValue(t, "rk: derivative buffer has 3 slots, need 4", func() {
		Step(f, tableau.RK4, 1, 1, 0, 0.1, make([]float64, 3))
	})
	assert.Panics(t, func() {
		Specialize(tableau.DoPri5).Step(f, 1, 1, 0, 0.1, make([]float64, 4))
	})
	assert.Panics(t, func() {
		NewGeneric(tableau.Heun).Step(f, 1, 1, 0, 0.1, nil)
	})
}

func TestEngines_AccumulatorOffset(t *testing.T) {
	// The accumulator only collects increments; its start value passes through.
	f := identity[float64]()
	s := Specialize(tableau.RK4)
	k := Buffer[float64](s)

	full := s.Step(f, 1, 1, 0, 0.1, k)
	inc := s.Step(f, 0, 1, 0, 0.1, k)
	assert.InDelta(t, full-1, inc, 1e-15)
}

func TestIntegrator(t *testing.T) {
	in := NewIntegrator[float64](NewGeneric(tableau.RK4))
	require.Equal(t, 4, len(in.k))
	assert.Equal(t, tableau.RK4, in.Stepper().Tableau())

	y := in.Advance(identity[float64](), 0, 1, 0.1)
	assert.InDelta(t, math.Exp(0.1), y, 1e-6)
}

func randomTableau(r *rand.Rand, n int) *tableau.Tableau[float64] {
	pick := func() float64 {
		if r.Intn(2) == 0 {
			return 0
		}
		return r.Float64()*2 - 1
	}
	b := make([]float64, n)
	for i := range b {
		b[i] = pick()
	}
	c := make([]float64, n-1)
	a := make([][]float64, n-1)
	for i := range a {
		c[i] = r.Float64()
		a[i] = make([]float64, i+1)
		for j := range a[i] {
			a[i][j] = pick()
		}
	}
	return tableau.MustNew(b, c, a...)
}

func TestEngines_BitIdentical(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	f := FuncOf[float64](func(x, y float64) float64 { return math.Sin(x) - 0.5*y })

	properties.Property("generic and specialized steps agree exactly", prop.ForAll(
		func(seed int64, n int, y float64) bool {
			tab := randomTableau(rand.New(rand.NewSource(seed)), n)
			s := Specialize(tab)

			k := make([]float64, s.KSize())
			kg := make([]float64, n)
			ys, yg := y, y
			for i := 0; i < 5; i++ {
				x := 0.1 * float64(i)
				ys = s.Step(f, ys, ys, x, 0.1, k)
				yg = Step(f, tab, yg, yg, x, 0.1, kg)
			}
			return ys == yg
		},
		gen.Int64(), gen.IntRange(2, 10), gen.Float64Range(-10, 10),
	))

	properties.Property("specialized buffer never overflows", prop.ForAll(
		func(seed int64, n int) (ok bool) {
			tab := randomTableau(rand.New(rand.NewSource(seed)), n)
			defer func() {
				if recover() != nil {
					ok = false
				}
			}()
			s := Specialize(tab)
			s.Step(f, 1, 1, 0, 0.1, make([]float64, tab.KBufferSize()))
			return true
		},
		gen.Int64(), gen.IntRange(2, 10),
	))

	properties.TestingRun(t)
}
