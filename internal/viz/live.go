package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/steerlab/internal/sim"
)

const (
	roadWidth       = 41
	roadScale       = 4.0 // terminal columns per world unit
	historyCapacity = 240
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(36)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// LiveModel steps the closed loop and renders the camera view, the vehicle,
// and a rolling offset graph.
type LiveModel struct {
	stepper   *sim.Stepper
	track     string
	frameRate int
	maxCycles int

	cycle   int
	last    sim.Cycle
	offsets []float64
	done    bool
	err     error
}

func NewLive(stepper *sim.Stepper, track string, frameRate, maxCycles int) LiveModel {
	if frameRate <= 0 {
		frameRate = 30
	}
	return LiveModel{
		stepper:   stepper,
		track:     track,
		frameRate: frameRate,
		maxCycles: maxCycles,
		offsets:   make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.frameRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m LiveModel) Init() tea.Cmd {
	return m.tick()
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case TickMsg:
		if m.done {
			return m, nil
		}

		cyc, err := m.stepper.Step()
		if err != nil {
			m.err = err
			m.done = true
			return m, nil
		}

		m.cycle++
		m.last = cyc
		m.offsets = append(m.offsets, cyc.Offset)
		if len(m.offsets) > historyCapacity {
			m.offsets = m.offsets[1:]
		}

		if m.maxCycles > 0 && m.cycle >= m.maxCycles {
			m.done = true
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m LiveModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("steerlab live — %s", m.track))

	canvas := canvasStyle.Render(m.renderRoad())
	stats := statsStyle.Render(m.renderStats())
	body := lipgloss.JoinHorizontal(lipgloss.Top, canvas, stats)

	graph := ""
	if len(m.offsets) > 1 {
		graph = graphStyle.Render(asciigraph.Plot(m.offsets,
			asciigraph.Height(6),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("lateral offset"),
		))
	}

	help := helpStyle.Render("q: quit")
	if m.err != nil {
		help = helpStyle.Render(fmt.Sprintf("stopped: %v — q: quit", m.err))
	} else if m.done {
		help = helpStyle.Render("finished — q: quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, graph, help)
}

// renderRoad draws the current perception frame in the camera view: one
// line per scan row with the perceived road center, the vehicle fixed at
// the center column.
func (m LiveModel) renderRoad() string {
	mid := roadWidth / 2

	var b strings.Builder
	for _, p := range m.last.Frame {
		line := []rune(strings.Repeat(" ", roadWidth))
		line[0], line[roadWidth-1] = '.', '.'

		col := mid + int(p.X*roadScale)
		if col >= 0 && col < roadWidth {
			line[col] = '#'
		}
		b.WriteString(string(line))
		b.WriteByte('\n')
	}

	car := []rune(strings.Repeat(" ", roadWidth))
	car[mid] = '^'
	b.WriteString(string(car))

	if m.last.Dropout {
		b.WriteString("\n(frame dropped)")
	}
	return b.String()
}

func (m LiveModel) renderStats() string {
	row := func(label string, format string, args ...any) string {
		return labelStyle.Render(label) + valueStyle.Render(fmt.Sprintf(format, args...))
	}

	lines := []string{
		row("cycle", "%d", m.cycle),
		row("time", "%.2fs", m.last.T),
		row("offset", "%+.3f", m.last.Offset),
		row("angle", "%+.3f", m.last.Angle),
		row("p error", "%+.3f", m.last.Cmd.Error),
		row("slope", "%+.3f", m.last.Cmd.Slope),
		row("dropouts", "%d", m.stepper.Dropouts()),
	}
	return strings.Join(lines, "\n")
}
