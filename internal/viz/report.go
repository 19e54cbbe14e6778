package viz

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rkstep/internal/rk"
	"github.com/san-kum/rkstep/internal/tableau"
)

// SparsityReport renders one row per stage of tab: node, weight, whether the
// stage is evaluated, whether its derivative is recorded, and the buffer
// slot the specializing engine assigns to it.
func SparsityReport(tab *tableau.Tableau[float64]) string {
	st := rk.Specialize(tab)
	sp := tab.Sparsity()

	rows := make([][]string, 0, tab.Stages())
	for p := 0; p < tab.Stages(); p++ {
		slot := "-"
		if s := st.Slot(p); s >= 0 {
			slot = strconv.Itoa(s)
		}
		rows = append(rows, []string{
			strconv.Itoa(p),
			formatCoef(tab.Node(p)),
			formatCoef(tab.Weight(p)),
			yesNo(sp.Used[p], "yes", "dead"),
			yesNo(sp.Recorded[p], "yes", "no"),
			slot,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(CurrentTheme.Muted)).
		Headers("stage", "c", "b", "evaluated", "recorded", "slot").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := lipgloss.NewStyle().Padding(0, 1)
			switch {
			case row == table.HeaderRow:
				return style.Bold(true).Foreground(CurrentTheme.Primary)
			case col == 3 && !sp.Used[row]:
				return style.Foreground(CurrentTheme.Warning)
			}
			return style.Foreground(CurrentTheme.Text)
		})

	name := tab.Name()
	if name == "" {
		name = "tableau"
	}

	var b strings.Builder
	b.WriteString(headerStyle().Render(fmt.Sprintf("%s (%d stages)", name, tab.Stages())) + "\n")
	b.WriteString(t.Render() + "\n")
	b.WriteString(labelStyle().Render("recorded") + valueStyle().Render(strconv.Itoa(tab.NeedKNum())) + "\n")
	b.WriteString(labelStyle().Render("buffer") + valueStyle().Render(fmt.Sprintf("%d generic, %d specialized", tab.Stages(), tab.KBufferSize())) + "\n")
	b.WriteString(labelStyle().Render("skipped") + valueStyle().Render(strconv.Itoa(sp.Skipped())) + "\n")
	return b.String()
}

// Plot charts values with asciigraph. It returns "" for an empty series.
func Plot(values []float64, caption string) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// PlotAgainst charts a numerical solution together with a reference curve.
func PlotAgainst(values, reference []float64, caption string) string {
	if len(values) == 0 {
		return ""
	}
	if len(reference) != len(values) {
		return Plot(values, caption)
	}
	return asciigraph.PlotMany([][]float64{values, reference},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Default),
		asciigraph.Caption(caption),
	)
}

func formatCoef(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func yesNo(ok bool, yes, no string) string {
	if ok {
		return yes
	}
	return no
}
