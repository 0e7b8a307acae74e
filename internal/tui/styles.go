// Package tui renders carbon footprint results with lipgloss and runs the
// interactive bubbletea calculator.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/carbonfocus/internal/footprint"
)

// Palette. Lipgloss drops colour automatically when output is not a terminal.
const (
	ColorHeader    = lipgloss.Color("39")
	ColorBorder    = lipgloss.Color("240")
	ColorLabel     = lipgloss.Color("245")
	ColorValue     = lipgloss.Color("252")
	ColorMuted     = lipgloss.Color("241")
	ColorOK        = lipgloss.Color("42")
	ColorWarning   = lipgloss.Color("214")
	ColorError     = lipgloss.Color("196")
	ColorHighlight = lipgloss.Color("212")
	ColorSpinner   = lipgloss.Color("205")
)

// Glyphs used across views.
const (
	IconArrowUp    = "↑"
	IconArrowDown  = "↓"
	IconArrowRight = "→"
	IconArrowLeft  = "←"
	IconBar        = "█"
	IconCursor     = "▌"
	IconFocus      = "›"
)

// categoryColors follow the usual pie palette for the four categories.
//
//nolint:gochecknoglobals // Read-only palette.
var categoryColors = map[footprint.Category]lipgloss.Color{
	footprint.CategoryTransportation: lipgloss.Color("#ff9999"),
	footprint.CategoryElectricity:    lipgloss.Color("#66b3ff"),
	footprint.CategoryDiet:           lipgloss.Color("#99ff99"),
	footprint.CategoryWaste:          lipgloss.Color("#ffcc99"),
}

// CategoryColor returns the display colour for c.
func CategoryColor(c footprint.Category) lipgloss.Color {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return ColorValue
}
