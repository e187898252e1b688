package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/basin/internal/converge"
	"github.com/san-kum/basin/internal/phase"
	"github.com/san-kum/basin/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const (
	canvasWidth  = 60
	canvasHeight = 18
)

type tickMsg time.Time

func tick(fps int) tea.Cmd {
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg { return tickMsg(t) })
}

// model replays a finished convergence run step by step. The run itself is
// computed up front; the view only animates the recorded curve.
type model struct {
	curve      *converge.Curve
	attractors []phase.Point
	fps        int
	step       int
	paused     bool
	done       bool
}

// Run animates a curve over the field's attractor positions.
func Run(curve *converge.Curve, attractors []phase.Point, fps int) error {
	if fps <= 0 {
		fps = 30
	}
	m := model{curve: curve, attractors: attractors, fps: fps}
	_, err := tea.NewProgram(m).Run()
	return err
}

func (m model) Init() tea.Cmd { return tick(m.fps) }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.step = 0
			m.done = false
		}
	case tickMsg:
		if !m.paused && !m.done {
			m.step++
			if m.step >= len(m.curve.Points) {
				m.step = len(m.curve.Points) - 1
				m.done = true
			}
		}
		return m, tick(m.fps)
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder

	sb.WriteString(cyan.Render("basin live") + "\n\n")
	sb.WriteString(viz.TrajectoryPlot(m.curve.Points[:m.step+1], m.attractors, canvasWidth, canvasHeight))
	sb.WriteString("\n")

	pos := m.curve.Points[m.step]
	sb.WriteString(fmt.Sprintf("%s %s   %s %d/%d",
		dim.Render("input"), white.Render(fmt.Sprintf("%g", m.curve.Origin)),
		dim.Render("step"), m.step, m.curve.Steps()))
	if len(pos) >= 2 {
		sb.WriteString(fmt.Sprintf("   %s (%.2f, %.2f)", dim.Render("pos"), pos[0], pos[1]))
	}
	if m.step < len(m.curve.Dominant) {
		sb.WriteString(fmt.Sprintf("   %s A%d", dim.Render("pulling"), m.curve.Dominant[m.step]))
	}
	sb.WriteString("\n")

	if m.done {
		status := green.Render(fmt.Sprintf("reached A%d", m.curve.FinalAttractor))
		if !m.curve.Converged {
			status = yellow.Render("step cap reached")
		}
		sb.WriteString(status + "\n")
	}

	sb.WriteString(dim.Render("\nspace pause · r restart · q quit\n"))
	return sb.String()
}
