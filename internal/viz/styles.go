package viz

import (
	"github.com/charmbracelet/lipgloss"
)

const panelWidth = 44

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 1)
	panelStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(panelWidth - 2)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	helpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

func headerStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Accent).Bold(true).MarginBottom(1)
}

func activeStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Accent).Bold(true)
}

func errorStyle(th Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(th.Error).Bold(true)
}

func swatch(c lipgloss.Color) string {
	return lipgloss.NewStyle().Foreground(c).Render("■")
}

// AnimatedSpinner returns frame of animated spinner
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}
