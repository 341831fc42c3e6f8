package viz

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/schedule"
)

const frameRate = 30

type TickMsg time.Time

// App is the interactive Bubble Tea program. Window resizes and parameter
// edits go through the scheduler; the view replays the terminal backend.
type App struct {
	sched    *schedule.Scheduler
	term     *Terminal
	initial  field.Parameters
	theme    Theme
	fields   []string
	selected int
	cols     int
	rows     int
	frame    int
	showHelp bool
}

func NewApp(sched *schedule.Scheduler, term *Terminal, initial field.Parameters, theme Theme) App {
	return App{
		sched:   sched,
		term:    term,
		initial: initial,
		theme:   theme,
		fields:  field.Fields(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m App) Init() tea.Cmd {
	return tick()
}

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		w, h := m.diagramSize()
		m.sched.Resize(float64(w*2), float64(h*4))
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			m.selected = (m.selected + 1) % len(m.fields)
		case "shift+tab":
			m.selected = (m.selected + len(m.fields) - 1) % len(m.fields)
		case "up", "k":
			m.adjust(1.05)
		case "down", "j":
			m.adjust(0.95)
		case "u":
			unit := m.sched.Status().Params.Unit.Toggle()
			_ = m.sched.Apply(field.FieldUnit, unit.String())
		case "r":
			_ = m.sched.SetParameters(m.initial)
		case "t":
			m.theme = NextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		m.frame++
		return m, tick()
	}
	return m, nil
}

// adjust scales the selected field's displayed value.
func (m *App) adjust(factor float64) {
	name := m.fields[m.selected]
	v, err := m.sched.Status().Params.Display(name)
	if err != nil {
		return
	}
	_ = m.sched.Apply(name, strconv.FormatFloat(v*factor, 'g', -1, 64))
}

// diagramSize is the canvas size in cells left of the panel.
func (m App) diagramSize() (int, int) {
	return max(m.cols-panelWidth-2, 10), max(m.rows-2, 5)
}

func (m App) View() string {
	w, h := m.diagramSize()
	canvas := m.term.Frame(w, h)
	canvasView := canvasStyle.Render(canvas.Render(m.theme))
	panel := panelStyle.Render(m.panel())
	view := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, panel)
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m App) panel() string {
	st := m.sched.Status()
	p := st.Params

	var s strings.Builder
	s.WriteString(headerStyle(m.theme).Render("ROD FIELD") + "\n")

	switch {
	case st.Error != "":
		s.WriteString(errorStyle(m.theme).Render(st.Error) + "\n\n")
	case st.Loading || st.Passes == 0 || m.sched.Pending():
		s.WriteString(AnimatedSpinner(m.frame) + " drawing\n\n")
	default:
		s.WriteString("\n\n")
	}

	s.WriteString(labelStyle.Render("E") + valueStyle.Render(fmt.Sprintf("%.3e N/C", st.Magnitude)) + "\n")
	s.WriteString(labelStyle.Render("") + valueStyle.Render(fmt.Sprintf("%.3f kN/C", st.KiloNewtons())) + "\n\n")

	s.WriteString("PARAMETERS (" + p.Unit.String() + ")\n")
	for i, name := range m.fields {
		v, _ := p.Display(name)
		unit := p.Unit.Suffix()
		if name == field.FieldChargeDensity {
			unit = p.Unit.DensityLabel()
		}
		line := fmt.Sprintf("%-14s %10.4g %s", name, v, unit)
		if i == m.selected {
			s.WriteString(activeStyle(m.theme).Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + valueStyle.Render(line) + "\n")
		}
	}

	if chart := profileChart(p); chart != "" {
		s.WriteString("\n" + chart + "\n")
	}

	s.WriteString("\n" + swatch(m.theme.Rod) + " charged rod  " + swatch(m.theme.Field) + " field lines  " + swatch(m.theme.Point) + " point\n")
	s.WriteString(helpStyle.Render("TAB:Field ↑↓:Tune U:Units\nR:Reset T:Theme ?:Help Q:Quit"))
	return s.String()
}

// profileChart plots E against distance around the measurement point.
func profileChart(p field.Parameters) string {
	if p.Validate() != nil {
		return ""
	}
	samples, err := field.Profile(p, p.Distance/4, p.Distance*3, 30)
	if err != nil {
		return ""
	}
	return asciigraph.Plot(field.Magnitudes(samples),
		asciigraph.Height(4),
		asciigraph.Width(30),
		asciigraph.Caption("E vs distance"))
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Tab      - Next parameter           ║
║  Up/K     - Increase value (+5%)     ║
║  Down/J   - Decrease value (-5%)     ║
║  U        - Toggle meters/cm         ║
║  R        - Reset parameters         ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// Run starts the interactive program and blocks until it exits.
func Run(sched *schedule.Scheduler, term *Terminal, initial field.Parameters, theme Theme) error {
	sched.Start()
	defer sched.Close()

	p := tea.NewProgram(NewApp(sched, term, initial, theme), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
