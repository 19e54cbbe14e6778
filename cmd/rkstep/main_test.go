package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/rkstep/internal/config"
	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/storage"
	"github.com/san-kum/rkstep/internal/tableau"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMethodsCommand(t *testing.T) {
	out, err := execute(t, "methods")
	require.NoError(t, err)
	for _, name := range tableau.Methods() {
		assert.Contains(t, out, name)
	}
	assert.Regexp(t, regexp.MustCompile(`dopri5\s+7\s+6\s+5\s+5`), out)
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect", "rkf45")
	require.NoError(t, err)
	assert.Contains(t, out, "rkf45 (6 stages)")
	assert.Contains(t, out, "dead")

	_, err = execute(t, "inspect", "rk99")
	assert.ErrorIs(t, err, tableau.ErrUnknownMethod)
	assert.Equal(t, ExitErrorConfig, exitCode(err))
}

func TestRunStoreAndExport(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "run", "exp", "--data", dir, "--method", "heun", "--engine", "generic", "--h", "0.1", "--steps", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "running exp with heun (generic engine)")
	assert.Contains(t, out, "evaluations: 20")

	match := regexp.MustCompile(`run id: (\S+)`).FindStringSubmatch(out)
	require.Len(t, match, 2)
	runID := match[1]

	out, err = execute(t, "list", "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, runID)

	out, err = execute(t, "export-csv", runID, "--data", dir)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "step,x,y\n0,0,1\n"), out)
	assert.Equal(t, 12, strings.Count(out, "\n"))

	out, err = execute(t, "export-json", runID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, `"method": "heun"`)

	out, err = execute(t, "plot", runID, "--data", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "samples: 11")

	_, err = execute(t, "plot", "missing", "--data", dir)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestRunWithConfigAndFlags(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "run.yaml")
	cfg := config.DefaultConfig()
	cfg.Problem = "decay"
	cfg.Method = "midpoint"
	cfg.Steps = 4
	require.NoError(t, config.Save(path, cfg))

	out, err := execute(t, "run", "--data", dir, "--config", path, "--steps", "6", "--no-save")
	require.NoError(t, err)
	assert.Contains(t, out, "running decay with midpoint")
	assert.Contains(t, out, "steps: 6")
	assert.NotContains(t, out, "run id:")
}

func TestRunPresetAndMetrics(t *testing.T) {
	out, err := execute(t, "run", "exp", "--data", t.TempDir(), "--preset", "dead-stage", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "running exp with euler2 (specialized engine)")
	assert.Contains(t, out, "evaluations: 10")
	assert.Contains(t, out, `rkstep_steps_total{engine="specialized",method="euler2"} 10`)

	_, err = execute(t, "run", "exp", "--preset", "nope")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestRunInvalidFlags(t *testing.T) {
	_, err := execute(t, "run", "exp", "--no-save", "--h", "-1")
	assert.Equal(t, ExitErrorConfig, exitCode(err))

	_, err = execute(t, "run", "exp", "--no-save", "--engine", "jit")
	assert.Equal(t, ExitErrorConfig, exitCode(err))

	_, err = execute(t, "run", "lorenz", "--no-save")
	assert.Equal(t, ExitErrorConfig, exitCode(err))

	_, err = execute(t, "run", "exp", "--no-save", "--log-level", "loud")
	assert.Equal(t, ExitErrorConfig, exitCode(err))
}

func TestCompareCommand(t *testing.T) {
	out, err := execute(t, "compare", "cosine", "rk4", "dopri5", "--h", "0.1", "--steps", "10", "--metrics")
	require.NoError(t, err)
	assert.Contains(t, out, "comparing methods for cosine")
	assert.Regexp(t, regexp.MustCompile(`dopri5\s+generic\s+7\s+7\s+70`), out)
	assert.Regexp(t, regexp.MustCompile(`dopri5\s+specialized\s+7\s+6\s+60`), out)
	assert.Contains(t, out, "rkstep_evaluations_total")

	_, err = execute(t, "compare", "cosine", "rk99")
	assert.ErrorIs(t, err, tableau.ErrUnknownMethod)
}

func TestPresetsCommand(t *testing.T) {
	out, err := execute(t, "presets", "logistic")
	require.NoError(t, err)
	assert.Contains(t, out, "low-start")

	out, err = execute(t, "presets", "lorenz")
	require.NoError(t, err)
	assert.Contains(t, out, "no presets")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, exitCode(nil))
	assert.Equal(t, ExitErrorGeneric, exitCode(errors.New("boom")))
	assert.Equal(t, ExitErrorGeneric, exitCode(os.ErrPermission))
	assert.Equal(t, ExitErrorConfig, exitCode(dynamo.ErrInvalidConfig))
	assert.Equal(t, ExitErrorConfig, exitCode(&tableau.ShapeError{Field: "c", Got: 1, Want: 2}))
}
