// Package tui provides an interactive explorer: adjust the solver
// parameters and watch the anomaly curve and residual respond.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/kepsolve/internal/analysis"
	"github.com/san-kum/kepsolve/internal/kepler"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const gridPoints = 48

type param int

const (
	paramEcc param = iota
	paramOrder
	paramShape
	paramSpan
	paramCount
)

var paramNames = [paramCount]string{"eccentricity", "order", "shape", "span"}

type model struct {
	ecc    float64
	order  int
	shape  float64
	span   float64 // mean anomalies run over (0, span]
	cursor param

	ms       []float64
	roots    []float64
	maxRes   float64
	failures int

	width  int
	height int
}

func NewExplorer() *model {
	m := &model{
		ecc:    2.0,
		order:  32,
		shape:  1.0,
		span:   20.0,
		width:  80,
		height: 24,
	}
	m.solve()
	return m
}

func RunExplorer() error {
	_, err := tea.NewProgram(NewExplorer(), tea.WithAltScreen()).Run()
	return err
}

func (m *model) solve() {
	m.ms = make([]float64, gridPoints)
	for i := range m.ms {
		m.ms[i] = m.span * float64(i+1) / gridPoints
	}

	opts := kepler.Options{Order: m.order, Eccentricity: m.ecc, Shape: m.shape}
	res, err := kepler.Solve(m.ms, opts)
	if err != nil {
		m.roots = nil
		return
	}

	m.roots = res.Roots
	m.maxRes = analysis.MaxResidual(m.ms, res, m.ecc)
	m.failures = 0
	for _, e := range res.Errors {
		if e != nil {
			m.failures++
		}
	}
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < paramCount-1 {
				m.cursor++
			}
		case "left", "h":
			m.adjust(-1)
			m.solve()
		case "right", "l":
			m.adjust(1)
			m.solve()
		case "r":
			m.ecc, m.order, m.shape, m.span = 2.0, 32, 1.0, 20.0
			m.solve()
		}
	}
	return m, nil
}

func (m *model) adjust(dir int) {
	switch m.cursor {
	case paramEcc:
		m.ecc += 0.1 * float64(dir)
		if m.ecc < 1.05 {
			m.ecc = 1.05
		}
	case paramOrder:
		if dir > 0 {
			m.order *= 2
		} else {
			m.order /= 2
		}
		if m.order < 2 {
			m.order = 2
		}
		if m.order > 512 {
			m.order = 512
		}
	case paramShape:
		m.shape += 0.1 * float64(dir)
		if m.shape < 0.1 {
			m.shape = 0.1
		}
		if m.shape > 2.0 {
			m.shape = 2.0
		}
	case paramSpan:
		m.span += 5 * float64(dir)
		if m.span < 5 {
			m.span = 5
		}
	}
}

func (m *model) View() string {
	var b strings.Builder

	b.WriteString(cyan.Render("kepsolve explorer"))
	b.WriteString(dim.Render("  e·sinh(z) − z = M"))
	b.WriteString("\n\n")

	values := [paramCount]string{
		fmt.Sprintf("%.2f", m.ecc),
		fmt.Sprintf("%d", m.order),
		fmt.Sprintf("%.2f", m.shape),
		fmt.Sprintf("%.0f", m.span),
	}
	for p := param(0); p < paramCount; p++ {
		marker := "  "
		style := white
		if p == m.cursor {
			marker = dim.Render("> ")
			style = yellow
		}
		fmt.Fprintf(&b, "%s%-14s %s\n", marker, paramNames[p], style.Render(values[p]))
	}
	b.WriteString("\n")

	if len(m.roots) > 0 {
		graphWidth := m.width - 12
		if graphWidth < 20 {
			graphWidth = 20
		}
		b.WriteString(asciigraph.Plot(m.roots,
			asciigraph.Height(10),
			asciigraph.Width(graphWidth),
			asciigraph.Caption(fmt.Sprintf("z(M), M in (0, %.0f]", m.span)),
		))
		b.WriteString("\n\n")

		fmt.Fprintf(&b, "%s %s", dim.Render("max residual"), green.Render(fmt.Sprintf("%.3e", m.maxRes)))
		if m.failures > 0 {
			fmt.Fprintf(&b, "   %s", red.Render(fmt.Sprintf("%d flagged", m.failures)))
		}
		b.WriteString("\n")
	}

	b.WriteString(dim.Render("\n↑/↓ select  ←/→ adjust  r reset  q quit\n"))
	return b.String()
}
