package experiment

import (
	"errors"
	"fmt"
	"sort"

	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/metrics"
	"github.com/san-kum/rkstep/internal/problems"
	"github.com/san-kum/rkstep/internal/rk"
	"github.com/san-kum/rkstep/internal/tableau"
)

var ErrUnknownEngine = errors.New("experiment: unknown engine")

type Registry struct {
	problems map[string]func() problems.Problem
	engines  map[string]func(*tableau.Tableau[float64]) rk.Stepper[float64]
}

func NewRegistry() *Registry {
	r := &Registry{
		problems: make(map[string]func() problems.Problem),
		engines:  make(map[string]func(*tableau.Tableau[float64]) rk.Stepper[float64]),
	}

	for _, name := range problems.Names() {
		r.problems[name] = func() problems.Problem {
			p, _ := problems.Lookup(name)
			return p
		}
	}

	r.engines["generic"] = func(tab *tableau.Tableau[float64]) rk.Stepper[float64] { return rk.NewGeneric(tab) }
	r.engines["specialized"] = func(tab *tableau.Tableau[float64]) rk.Stepper[float64] { return rk.Specialize(tab) }

	return r
}

func (r *Registry) GetProblem(name string) (problems.Problem, error) {
	fn, ok := r.problems[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", problems.ErrUnknownProblem, name)
	}
	return fn(), nil
}

func (r *Registry) GetMethod(name string) (*tableau.Tableau[float64], error) {
	return tableau.Lookup(name)
}

// Engine builds the named stepping engine over tab.
func (r *Registry) Engine(name string, tab *tableau.Tableau[float64]) (rk.Stepper[float64], error) {
	fn, ok := r.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEngine, name)
	}
	return fn(tab), nil
}

func (r *Registry) ListProblems() []string { return sortedKeys(r.problems) }
func (r *Registry) ListEngines() []string  { return sortedKeys(r.engines) }
func (r *Registry) ListMethods() []string  { return tableau.Methods() }

func (r *Registry) DefaultMetrics(p problems.Problem) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewMaxRelativeError(p.Exact),
		metrics.NewMeanAbsError(p.Exact),
		metrics.NewStability(1e6),
		metrics.NewFinalValue(),
	}
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
