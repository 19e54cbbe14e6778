package experiment

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/san-kum/rkstep/internal/config"
	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/problems"
	"github.com/san-kum/rkstep/internal/storage"
	"github.com/san-kum/rkstep/internal/tableau"
)

var ErrNotSetup = errors.New("experiment: not set up")

// Experiment is a fully resolved run: problem, tableau, engine and the
// simulator wired with the default metrics.
type Experiment struct {
	cfg       *config.Config
	problem   problems.Problem
	tab       *tableau.Tableau[float64]
	simulator *dynamo.Simulator
	x0, y0    float64
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(reg *Registry, logger zerolog.Logger) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}

	problem, err := reg.GetProblem(e.cfg.Problem)
	if err != nil {
		return err
	}
	tab, err := e.cfg.BuildTableau()
	if err != nil {
		return err
	}
	stepper, err := reg.Engine(e.cfg.Engine, tab)
	if err != nil {
		return err
	}

	e.x0, e.y0 = e.cfg.Initial(problem.Initial())
	problem.SetInitial(e.x0, e.y0)

	e.problem = problem
	e.tab = tab
	e.simulator = dynamo.New(problem, stepper).WithLogger(logger)
	for _, m := range reg.DefaultMetrics(problem) {
		e.simulator.AddMetric(m)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}
	return e.simulator.Run(ctx, e.x0, e.y0, dynamo.Config{
		H:             e.cfg.H,
		Steps:         e.cfg.Steps,
		ValidateState: true,
	})
}

// Metadata describes the run for storage. Run-derived fields are filled by
// storage.Store.Save.
func (e *Experiment) Metadata() storage.RunMetadata {
	return storage.RunMetadata{
		Problem: e.cfg.Problem,
		Method:  e.cfg.MethodName(),
		Engine:  e.cfg.Engine,
		H:       e.cfg.H,
		Steps:   e.cfg.Steps,
		X0:      e.x0,
		Y0:      e.y0,
	}
}

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *dynamo.Simulator {
	return e.simulator
}

func (e *Experiment) Problem() problems.Problem          { return e.problem }
func (e *Experiment) Tableau() *tableau.Tableau[float64] { return e.tab }
func (e *Experiment) Initial() (float64, float64)        { return e.x0, e.y0 }
