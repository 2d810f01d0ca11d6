package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/splashsim/internal/dynamo"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(44)

	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	activeParamStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	graphStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)

	StatusIdle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#888899"))
	StatusActive = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

// ClassStyle colours a density class the same way the body is drawn.
func ClassStyle(c dynamo.DensityClass) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(classColor(c))
}

func classColor(c dynamo.DensityClass) lipgloss.Color { return lipgloss.Color(c.Color()) }

// ParamBar renders value/max as a fixed-width bar.
func ParamBar(value, max float64, width int) string {
	ratio := 0.0
	if max > 0 {
		ratio = dynamo.Clamp(value/max, 0, 1)
	}
	filled := int(ratio * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat("-", width-filled) + "]"
}
