package main

import (
	"context"
	"errors"
	"sort"

	"github.com/san-kum/rkstep/internal/config"
	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/experiment"
	"github.com/san-kum/rkstep/internal/problems"
	"github.com/san-kum/rkstep/internal/storage"
	"github.com/san-kum/rkstep/internal/tableau"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorConfig   = 4
	ExitErrorCanceled = 130
)

func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.Is(err, config.ErrInvalid),
		errors.Is(err, dynamo.ErrInvalidConfig),
		errors.Is(err, tableau.ErrShape),
		errors.Is(err, tableau.ErrTooFewStages),
		errors.Is(err, tableau.ErrUnknownMethod),
		errors.Is(err, problems.ErrUnknownProblem),
		errors.Is(err, experiment.ErrUnknownEngine),
		errors.Is(err, storage.ErrNotFound):
		return ExitErrorConfig
	default:
		return ExitErrorGeneric
	}
}

func sortedMetricNames(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
