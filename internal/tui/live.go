// Package tui replays an integrated orbit in the terminal: the trajectory is
// drawn progressively on a braille canvas while a status line tracks phi and
// r. Keys: space pauses, +/- change speed, r restarts, q quits.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"bhsim/internal/engine"
	"bhsim/internal/viz"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	green  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	yellow = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	red    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const (
	canvasWidth  = 72
	canvasHeight = 24
)

type model struct {
	res   *engine.OrbitResult
	scene *viz.Scene

	idx    int
	speed  int
	paused bool
	done   bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(33*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func newModel(res *engine.OrbitResult) model {
	scene := viz.NewScene(res.Trajectory, res.Meta.Horizon, res.Meta.PhotonSphere, canvasWidth, canvasHeight)
	speed := res.Points / 600
	if speed < 1 {
		speed = 1
	}
	return model{res: res, scene: scene, idx: 1, speed: speed}
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "+", "=":
			m.speed *= 2
		case "-":
			if m.speed > 1 {
				m.speed /= 2
			}
		case "r":
			m.idx = 1
			m.done = false
			m.paused = false
		}
		return m, nil
	case tickMsg:
		if !m.paused && !m.done {
			m.idx += m.speed
			if m.idx >= m.res.Points {
				m.idx = m.res.Points
				m.done = true
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder

	title := fmt.Sprintf("%s / %s", m.res.Meta.Metric, m.res.Meta.Particle)
	sb.WriteString(cyan.Render(title) + "\n")
	sb.WriteString(m.scene.Render(m.idx))

	i := m.idx - 1
	if i < 0 {
		i = 0
	}
	status := fmt.Sprintf("phi %7.3f  r %8.4f  sample %d/%d  speed x%d",
		m.res.Phi[i], m.res.R[i], m.idx, m.res.Points, m.speed)
	sb.WriteString(yellow.Render(status) + "\n")

	if m.done {
		if m.res.Captured {
			sb.WriteString(red.Render("captured by the horizon") + "\n")
		} else {
			sb.WriteString(green.Render("orbit complete") + "\n")
		}
	}
	sb.WriteString(dim.Render("space pause  +/- speed  r restart  q quit") + "\n")

	return sb.String()
}

// Run replays the orbit until the user quits.
func Run(res *engine.OrbitResult) error {
	if res.Points == 0 {
		return fmt.Errorf("nothing to replay: trajectory has no valid samples")
	}
	p := tea.NewProgram(newModel(res))
	_, err := p.Run()
	return err
}
