package tableau

import (
	"fmt"
	"sort"
)

// Classic explicit methods. Zero entries are written out so the sparsity
// analysis sees them.
var (
	// Euler2 is forward Euler padded to two stages; its second stage is dead.
	Euler2 = MustNew(
		[]float64{1, 0},
		[]float64{0},
		[]float64{0},
	).WithName("euler2")

	Heun = MustNew(
		[]float64{0.5, 0.5},
		[]float64{1},
		[]float64{1},
	).WithName("heun")

	Midpoint = MustNew(
		[]float64{0, 1},
		[]float64{0.5},
		[]float64{0.5},
	).WithName("midpoint")

	Ralston = MustNew(
		[]float64{1.0 / 4.0, 3.0 / 4.0},
		[]float64{2.0 / 3.0},
		[]float64{2.0 / 3.0},
	).WithName("ralston")

	Kutta3 = MustNew(
		[]float64{1.0 / 6.0, 2.0 / 3.0, 1.0 / 6.0},
		[]float64{0.5, 1},
		[]float64{0.5},
		[]float64{-1, 2},
	).WithName("kutta3")

	RK4 = MustNew(
		[]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0},
		[]float64{0.5, 0.5, 1},
		[]float64{0.5},
		[]float64{0, 0.5},
		[]float64{0, 0, 1},
	).WithName("rk4")

	RK38 = MustNew(
		[]float64{1.0 / 8.0, 3.0 / 8.0, 3.0 / 8.0, 1.0 / 8.0},
		[]float64{1.0 / 3.0, 2.0 / 3.0, 1},
		[]float64{1.0 / 3.0},
		[]float64{-1.0 / 3.0, 1},
		[]float64{1, -1, 1},
	).WithName("rk38")

	// RKF45 uses the fourth order Fehlberg weights; the sixth stage only
	// feeds the fifth order solution and is dead here.
	RKF45 = MustNew(
		[]float64{25.0 / 216.0, 0, 1408.0 / 2565.0, 2197.0 / 4104.0, -1.0 / 5.0, 0},
		[]float64{1.0 / 4.0, 3.0 / 8.0, 12.0 / 13.0, 1, 1.0 / 2.0},
		[]float64{1.0 / 4.0},
		[]float64{3.0 / 32.0, 9.0 / 32.0},
		[]float64{1932.0 / 2197.0, -7200.0 / 2197.0, 7296.0 / 2197.0},
		[]float64{439.0 / 216.0, -8, 3680.0 / 513.0, -845.0 / 4104.0},
		[]float64{-8.0 / 27.0, 2, -3544.0 / 2565.0, 1859.0 / 4104.0, -11.0 / 40.0},
	).WithName("rkf45")

	// DoPri5 uses the fifth order Dormand-Prince weights. The seventh (FSAL)
	// stage only serves error estimation and is dead here.
	DoPri5 = MustNew(
		[]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0, 0},
		[]float64{1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1, 1},
		[]float64{1.0 / 5.0},
		[]float64{3.0 / 40.0, 9.0 / 40.0},
		[]float64{44.0 / 45.0, -56.0 / 15.0, 32.0 / 9.0},
		[]float64{19372.0 / 6561.0, -25360.0 / 2187.0, 64448.0 / 6561.0, -212.0 / 729.0},
		[]float64{9017.0 / 3168.0, -355.0 / 33.0, 46732.0 / 5247.0, 49.0 / 176.0, -5103.0 / 18656.0},
		[]float64{35.0 / 384.0, 0, 500.0 / 1113.0, 125.0 / 192.0, -2187.0 / 6784.0, 11.0 / 84.0},
	).WithName("dopri5")
)

var catalog = map[string]*Tableau[float64]{
	Euler2.Name():   Euler2,
	Heun.Name():     Heun,
	Midpoint.Name(): Midpoint,
	Ralston.Name():  Ralston,
	Kutta3.Name():   Kutta3,
	RK4.Name():      RK4,
	RK38.Name():     RK38,
	RKF45.Name():    RKF45,
	DoPri5.Name():   DoPri5,
}

// Lookup returns the catalogue method with the given name.
func Lookup(name string) (*Tableau[float64], error) {
	t, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownMethod, name)
	}
	return t, nil
}

// Methods lists the catalogue names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
