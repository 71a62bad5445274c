package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/born-ml/scalarad/internal/autodiff/graph"
	"github.com/born-ml/scalarad/internal/autodiff/mono"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Padding(0, 1).Bold(true)
)

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 12, 64)
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// renderGraph prints the value and per-input gradient of a graph evaluation.
func renderGraph(w io.Writer, g *graph.Graph, inputs []float64, value float64, grads []float64) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("graph (%d nodes)", g.NumNodes())))
	fmt.Fprintf(w, "value: %s\n", formatFloat(value))

	t := newTable("input", "x", "∂f/∂x")
	for i, x := range inputs {
		t.Row(strconv.Itoa(i), formatFloat(x), formatFloat(grads[i]))
	}
	fmt.Fprintln(w, t.Render())
}

// renderChain prints the value and derivative of a chain evaluation.
func renderChain(w io.Writer, chain []mono.Op, x, value, grad float64) {
	fmt.Fprintln(w, titleStyle.Render("f(x) = "+mono.FormatChain(chain)))
	fmt.Fprintf(w, "x: %s\n", formatFloat(x))
	fmt.Fprintf(w, "value: %s\n", formatFloat(value))
	fmt.Fprintf(w, "derivative: %s\n", formatFloat(grad))
}

// renderBatch prints one row per batch item.
func renderBatch(w io.Writer, batch [][]float64, results []graph.Result) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("batch (%d items)", len(results))))
	t := newTable("item", "inputs", "value", "gradient")
	for i, r := range results {
		t.Row(strconv.Itoa(i), fmt.Sprint(batch[i]), formatFloat(r.Value), formatGradient(r.Gradient))
	}
	fmt.Fprintln(w, t.Render())
}

func formatGradient(grads []float64) string {
	s := "["
	for i, g := range grads {
		if i > 0 {
			s += " "
		}
		s += formatFloat(g)
	}
	return s + "]"
}
