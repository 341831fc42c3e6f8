package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the diagram and panel colors.
type Theme struct {
	Name   string
	Rod    lipgloss.Color
	Field  lipgloss.Color
	Point  lipgloss.Color
	Axis   lipgloss.Color
	Accent lipgloss.Color
	Text   lipgloss.Color
	Muted  lipgloss.Color
	Error  lipgloss.Color
}

var (
	ThemeClassic = Theme{
		Name:   "classic",
		Rod:    lipgloss.Color("#ff4d4d"),
		Field:  lipgloss.Color("#4d88ff"),
		Point:  lipgloss.Color("#33cc33"),
		Axis:   lipgloss.Color("#888888"),
		Accent: lipgloss.Color("#00ccff"),
		Text:   lipgloss.Color("#ffffff"),
		Muted:  lipgloss.Color("#666688"),
		Error:  lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:   "retro",
		Rod:    lipgloss.Color("#88ff88"), // Green phosphor
		Field:  lipgloss.Color("#00cc00"),
		Point:  lipgloss.Color("#ffff00"),
		Axis:   lipgloss.Color("#005500"),
		Accent: lipgloss.Color("#88ff88"),
		Text:   lipgloss.Color("#00ff00"),
		Muted:  lipgloss.Color("#005500"),
		Error:  lipgloss.Color("#ff0000"),
	}

	ThemeSunset = Theme{
		Name:   "sunset",
		Rod:    lipgloss.Color("#ff6b6b"), // Coral
		Field:  lipgloss.Color("#feca57"),
		Point:  lipgloss.Color("#5fd068"),
		Axis:   lipgloss.Color("#8b6b8c"),
		Accent: lipgloss.Color("#ff9ff3"),
		Text:   lipgloss.Color("#fff5f5"),
		Muted:  lipgloss.Color("#8b6b8c"),
		Error:  lipgloss.Color("#ff4757"),
	}

	Themes = []Theme{
		ThemeClassic,
		ThemeRetroGreen,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme cycles to the theme after t.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return ThemeClassic
}
