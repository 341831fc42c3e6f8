package viz

import (
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/rodfield/internal/field"
	"github.com/san-kum/rodfield/internal/layout"
	"github.com/san-kum/rodfield/internal/schedule"
)

func newTestApp(t *testing.T) (App, *schedule.Scheduler, *schedule.ManualClock) {
	t.Helper()
	clock := schedule.NewManualClock()
	term := NewTerminal(nil)
	sched := schedule.New(term, schedule.WithClock(clock))
	sched.Start()
	t.Cleanup(sched.Close)
	return NewApp(sched, term, field.DefaultParameters(), ThemeClassic), sched, clock
}

func send(m App, msg tea.Msg) App {
	next, _ := m.Update(msg)
	return next.(App)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestAppResizeSchedulesRender(t *testing.T) {
	m, sched, clock := newTestApp(t)
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})

	want := layout.Viewport{Width: float64((120 - panelWidth - 2) * 2), Height: float64((40 - 2) * 4)}
	if got := sched.Status().Container; got != want {
		t.Errorf("container = %+v, want %+v", got, want)
	}
	if !sched.Pending() {
		t.Fatal("resize should schedule a render pass")
	}

	clock.Advance(schedule.DefaultDelay)
	st := sched.Status()
	if st.Passes != 1 {
		t.Errorf("passes = %d, want one pass for the coalesced start and resize", st.Passes)
	}
	if st.Layout == nil {
		t.Error("layout missing after the pass")
	}
	if m.View() == "" {
		t.Error("empty view")
	}
}

func TestAppTuneSelectedField(t *testing.T) {
	m, sched, _ := newTestApp(t)

	m = send(m, tea.KeyMsg{Type: tea.KeyUp})
	if got := sched.Status().Params.ChargeDensity; math.Abs(got-1.05e-6) > 1e-12 {
		t.Errorf("charge density = %g, want 1.05e-6", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m = send(m, runeKey('j'))
	if got := sched.Status().Params.Length; math.Abs(got-1.9) > 1e-9 {
		t.Errorf("length = %g, want 1.9", got)
	}

	m = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.selected != 0 {
		t.Errorf("selected = %d after shift+tab", m.selected)
	}

	send(m, runeKey('r'))
	if got := sched.Status().Params; got != field.DefaultParameters() {
		t.Errorf("reset params = %v", got)
	}
}

func TestAppToggleUnit(t *testing.T) {
	m, sched, _ := newTestApp(t)
	before := sched.Status().Magnitude

	m = send(m, runeKey('u'))
	st := sched.Status()
	if st.Params.Unit != field.Centimeters {
		t.Fatalf("unit = %v", st.Params.Unit)
	}
	if st.Magnitude != before {
		t.Errorf("unit toggle changed the field: %g -> %g", before, st.Magnitude)
	}
	if !strings.Contains(m.panel(), "centimeters") {
		t.Error("panel should show the active unit system")
	}

	send(m, runeKey('u'))
	if sched.Status().Params.Unit != field.Meters {
		t.Error("second toggle should restore meters")
	}
}

func TestAppThemeHelpQuit(t *testing.T) {
	m, _, _ := newTestApp(t)

	m = send(m, runeKey('t'))
	if m.theme.Name != ThemeRetroGreen.Name {
		t.Errorf("theme = %s", m.theme.Name)
	}
	m = send(m, runeKey('?'))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}

	_, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestAppPanelShowsError(t *testing.T) {
	m, sched, _ := newTestApp(t)
	if err := sched.Apply(field.FieldLength, "abc"); err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(m.panel(), "length") {
		t.Error("panel should list parameters")
	}
	if sched.Status().Error == "" {
		t.Error("error message not recorded")
	}
	if sched.Status().Magnitude != 0 {
		t.Error("magnitude should be zeroed on error")
	}
}
