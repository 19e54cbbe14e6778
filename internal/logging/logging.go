// Package logging builds the zerolog loggers used by the CLI and adapts them
// to simulation observers.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New returns a logger writing to w at the named level ("debug", "info",
// ...). pretty selects the human-readable console format.
func New(w io.Writer, level string, pretty bool) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("logging: %w", err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly, NoColor: true}
	}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// StepObserver logs solution points at trace level, one in every Every steps.
type StepObserver struct {
	logger zerolog.Logger
	every  int
}

func NewStepObserver(logger zerolog.Logger, every int) *StepObserver {
	if every <= 0 {
		every = 1
	}
	return &StepObserver{logger: logger, every: every}
}

func (o *StepObserver) OnStep(step int, x, y float64) {
	if step%o.every != 0 {
		return
	}
	o.logger.Trace().
		Int("step", step).
		Float64("x", x).
		Float64("y", y).
		Msg("step")
}
