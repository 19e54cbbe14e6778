// Package problems provides scalar initial value problems with closed-form
// solutions, used to exercise and measure the stepping engines.
package problems

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/rkstep/internal/rk"
)

var ErrUnknownProblem = errors.New("problems: unknown problem")

// Problem is a scalar ODE y' = f(x, y) with a known solution through
// its initial point. SetInitial moves that point and re-anchors Exact.
type Problem interface {
	rk.Func[float64]
	Name() string
	Initial() (x0, y0 float64)
	SetInitial(x0, y0 float64)
	Exact(x float64) float64
}

// Configurable problems expose their parameters by name.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// anchor is the initial point shared by every problem.
type anchor struct {
	X0, Y0 float64
}

func (a *anchor) Initial() (float64, float64) { return a.X0, a.Y0 }
func (a *anchor) SetInitial(x0, y0 float64)   { a.X0, a.Y0 = x0, y0 }

// Growth implements y' = rate*y, by default with y(0) = 1.
type Growth struct {
	anchor
	name string
	Rate float64
}

func NewExp() *Growth   { return &Growth{anchor: anchor{Y0: 1}, name: "exp", Rate: 1} }
func NewDecay() *Growth { return &Growth{anchor: anchor{Y0: 1}, name: "decay", Rate: -2} }

func (g *Growth) Name() string                  { return g.name }
func (g *Growth) Evaluate(_, y float64) float64 { return g.Rate * y }

func (g *Growth) Exact(x float64) float64 {
	return g.Y0 * math.Exp(g.Rate*(x-g.X0))
}

func (g *Growth) GetParams() map[string]float64 {
	return map[string]float64{"rate": g.Rate}
}

func (g *Growth) SetParam(name string, value float64) error {
	if name != "rate" {
		return fmt.Errorf("%s: unknown parameter %q", g.name, name)
	}
	g.Rate = value
	return nil
}

// Logistic implements y' = r*y*(1 - y/k), by default with y(0) = 0.5.
type Logistic struct {
	anchor
	R, K float64
}

func NewLogistic() *Logistic {
	return &Logistic{anchor: anchor{Y0: 0.5}, R: 1, K: 1}
}

func (l *Logistic) Name() string { return "logistic" }

func (l *Logistic) Evaluate(_, y float64) float64 {
	return l.R * y * (1 - y/l.K)
}

func (l *Logistic) Exact(x float64) float64 {
	if l.Y0 == 0 {
		return 0
	}
	return l.K / (1 + (l.K/l.Y0-1)*math.Exp(-l.R*(x-l.X0)))
}

func (l *Logistic) GetParams() map[string]float64 {
	return map[string]float64{"r": l.R, "k": l.K}
}

func (l *Logistic) SetParam(name string, value float64) error {
	switch name {
	case "r":
		l.R = value
	case "k":
		if value == 0 {
			return fmt.Errorf("logistic: k must be non-zero")
		}
		l.K = value
	default:
		return fmt.Errorf("logistic: unknown parameter %q", name)
	}
	return nil
}

// Cosine implements y' = cos(x), by default with y(0) = 0; f ignores y.
type Cosine struct {
	anchor
}

func NewCosine() *Cosine { return &Cosine{} }

func (c *Cosine) Name() string                  { return "cosine" }
func (c *Cosine) Evaluate(x, _ float64) float64 { return math.Cos(x) }

func (c *Cosine) Exact(x float64) float64 {
	return c.Y0 + math.Sin(x) - math.Sin(c.X0)
}

// Poly implements y' = 3x², by default with y(0) = 1. Methods of order
// >= 3 solve it exactly up to rounding.
type Poly struct {
	anchor
}

func NewPoly() *Poly { return &Poly{anchor: anchor{Y0: 1}} }

func (p *Poly) Name() string                  { return "poly" }
func (p *Poly) Evaluate(x, _ float64) float64 { return 3 * x * x }

func (p *Poly) Exact(x float64) float64 {
	return p.Y0 + x*x*x - p.X0*p.X0*p.X0
}

var registry = map[string]func() Problem{
	"exp":      func() Problem { return NewExp() },
	"decay":    func() Problem { return NewDecay() },
	"logistic": func() Problem { return NewLogistic() },
	"cosine":   func() Problem { return NewCosine() },
	"poly":     func() Problem { return NewPoly() },
}

// Lookup returns a fresh instance of the named problem.
func Lookup(name string) (Problem, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProblem, name)
	}
	return fn(), nil
}

// Names lists the available problems in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
