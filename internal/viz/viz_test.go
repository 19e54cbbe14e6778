package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rkstep/internal/dynamo"
	"github.com/san-kum/rkstep/internal/rk"
	"github.com/san-kum/rkstep/internal/tableau"
)

func TestSparsityReport(t *testing.T) {
	out := SparsityReport(tableau.DoPri5)

	for _, want := range []string{"dopri5", "7 stages", "dead", "5 specialized"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

func TestSparsityReportAnonymous(t *testing.T) {
	tab := tableau.MustNew([]float64{0.5, 0.5}, []float64{1}, []float64{1})
	out := SparsityReport(tab)
	if !strings.Contains(out, "tableau (2 stages)") {
		t.Errorf("unexpected header:\n%s", out)
	}
}

func TestPlot(t *testing.T) {
	if Plot(nil, "empty") != "" {
		t.Error("expected empty plot for no data")
	}
	out := Plot([]float64{1, 2, 3, 2, 1}, "tent")
	if !strings.Contains(out, "tent") {
		t.Errorf("expected caption in plot:\n%s", out)
	}
	if got := PlotAgainst([]float64{1, 2}, []float64{1, 2.1}, "both"); !strings.Contains(got, "both") {
		t.Errorf("expected caption in plot:\n%s", got)
	}
}

func TestSparklineChart(t *testing.T) {
	got := SparklineChart([]float64{0, 1, 2, 3, 4, 5, 6, 7}, 8)
	if got != "▁▂▃▄▅▆▇█" {
		t.Errorf("got %q", got)
	}
	if got := SparklineChart(nil, 3); got != "───" {
		t.Errorf("got %q for empty input", got)
	}
	if got := SparklineChart([]float64{1, math.NaN(), 2}, 3); []rune(got)[1] != ' ' {
		t.Errorf("expected gap for NaN, got %q", got)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("default")

	if GetTheme("nope").Name != "default" {
		t.Error("expected fallback to default theme")
	}
	SetTheme("retro")
	if CurrentTheme.Name != "retro" {
		t.Errorf("expected retro, got %s", CurrentTheme.Name)
	}
	if nextTheme("minimal") != "default" {
		t.Error("expected theme cycle to wrap")
	}
}

func newLive(maxSteps int) LiveModel {
	tab, _ := tableau.Lookup("rk4")
	sim := dynamo.New(rk.FuncOf[float64](func(_, y float64) float64 { return y }), rk.Specialize(tab))
	return NewLiveModel(sim, math.Exp, "exp", 0, 1, 0.1, maxSteps)
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLiveModelTicks(t *testing.T) {
	var model tea.Model = newLive(3)

	for i := 0; i < 5; i++ {
		var cmd tea.Cmd
		model, cmd = model.Update(TickMsg{})
		if cmd == nil {
			t.Fatal("expected next tick to be scheduled")
		}
	}

	step, x, y := model.(LiveModel).Point()
	if step != 3 {
		t.Errorf("expected to stop at 3 steps, got %d", step)
	}
	if math.Abs(x-0.3) > 1e-12 || math.Abs(y-math.Exp(0.3)) > 1e-6 {
		t.Errorf("unexpected point (%v, %v)", x, y)
	}
	if !strings.Contains(model.View(), "DONE") {
		t.Error("expected DONE status")
	}
}

func TestLiveModelKeys(t *testing.T) {
	var model tea.Model = newLive(0)

	model, _ = model.Update(key(" "))
	model, _ = model.Update(TickMsg{})
	if step, _, _ := model.(LiveModel).Point(); step != 0 {
		t.Errorf("paused model stepped to %d", step)
	}
	if !strings.Contains(model.View(), "PAUSED") {
		t.Error("expected PAUSED status")
	}

	model, _ = model.Update(key("n"))
	model, _ = model.Update(key("n"))
	if step, _, _ := model.(LiveModel).Point(); step != 2 {
		t.Errorf("expected 2 single steps, got %d", step)
	}

	model, _ = model.Update(key("r"))
	if step, x, y := model.(LiveModel).Point(); step != 0 || x != 0 || y != 1 {
		t.Errorf("reset left (%d, %v, %v)", step, x, y)
	}

	_, cmd := model.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
