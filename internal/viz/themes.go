package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the colour scheme for the scene and the stats panel.
type Theme struct {
	Name       string
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Water      lipgloss.Color
	Floor      lipgloss.Color
	Prediction lipgloss.Color
	Path       lipgloss.Color
	Droplet    lipgloss.Color
	Ring       lipgloss.Color
	Sand       lipgloss.Color
}

var (
	ThemeOcean = Theme{
		Name:       "ocean",
		Primary:    lipgloss.Color("#00a8cc"),
		Muted:      lipgloss.Color("#4488aa"),
		Water:      lipgloss.Color("#0077be"),
		Floor:      lipgloss.Color("#c2a060"),
		Prediction: lipgloss.Color("#e0f0ff"),
		Path:       lipgloss.Color("#ffd700"),
		Droplet:    lipgloss.Color("#9fdfff"),
		Ring:       lipgloss.Color("#ffffff"),
		Sand:       lipgloss.Color("#d9b77a"),
	}

	ThemeRetroGreen = Theme{
		Name:       "retro",
		Primary:    lipgloss.Color("#00ff00"),
		Muted:      lipgloss.Color("#005500"),
		Water:      lipgloss.Color("#00cc00"),
		Floor:      lipgloss.Color("#007700"),
		Prediction: lipgloss.Color("#88ff88"),
		Path:       lipgloss.Color("#ccffcc"),
		Droplet:    lipgloss.Color("#88ff88"),
		Ring:       lipgloss.Color("#ffffff"),
		Sand:       lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:       "minimal",
		Primary:    lipgloss.Color("#ffffff"),
		Muted:      lipgloss.Color("#888888"),
		Water:      lipgloss.Color("#cccccc"),
		Floor:      lipgloss.Color("#888888"),
		Prediction: lipgloss.Color("#ffffff"),
		Path:       lipgloss.Color("#0088ff"),
		Droplet:    lipgloss.Color("#cccccc"),
		Ring:       lipgloss.Color("#ffffff"),
		Sand:       lipgloss.Color("#aaaaaa"),
	}

	CurrentTheme = ThemeOcean

	Themes = []Theme{
		ThemeOcean,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name, falling back to ocean.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeOcean
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeOcean
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
