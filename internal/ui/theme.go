package ui

import (
	"github.com/charmbracelet/lipgloss"

	"tasktracker/internal/models"
)

type palette struct {
	background       lipgloss.Color
	foreground       lipgloss.Color
	activeBackground lipgloss.Color
	activeForeground lipgloss.Color
	checkbox         lipgloss.Color
	accent           lipgloss.Color
}

var palettes = map[models.Theme]palette{
	models.ThemeClassic: {
		background:       "#D9D9D9",
		foreground:       "#000000",
		activeBackground: "#BFBFBF",
		activeForeground: "#000000",
		checkbox:         "#D9D9D9",
		accent:           "#3A6EA5",
	},
	models.ThemeLight: {
		background:       "#F0F0F0",
		foreground:       "#000000",
		activeBackground: "#C0C0C0",
		activeForeground: "#000000",
		checkbox:         "#F0F0F0",
		accent:           "#2E8B57",
	},
	models.ThemeDark: {
		background:       "#1E1E1E",
		foreground:       "#FFFFFF",
		activeBackground: "#505050",
		activeForeground: "#FFFFFF",
		checkbox:         "#1E1E1E",
		accent:           "#6CA0DC",
	},
}

func paletteFor(theme models.Theme) palette {
	if p, ok := palettes[theme]; ok {
		return p
	}
	return palettes[models.ThemeClassic]
}

type styles struct {
	app         lipgloss.Style
	title       lipgloss.Style
	label       lipgloss.Style
	input       lipgloss.Style
	inputFocus  lipgloss.Style
	row         lipgloss.Style
	selectedRow lipgloss.Style
	doneRow     lipgloss.Style
	checkbox    lipgloss.Style
	info        lipgloss.Style
	warning     lipgloss.Style
	err         lipgloss.Style
	help        lipgloss.Style
}

func newStyles(theme models.Theme) styles {
	p := paletteFor(theme)
	base := lipgloss.NewStyle().Background(p.background).Foreground(p.foreground)

	return styles{
		app:         base.Padding(1, 2),
		title:       base.Bold(true).MarginBottom(1),
		label:       base,
		input:       base.Border(lipgloss.NormalBorder()).BorderForeground(p.activeBackground).Padding(0, 1),
		inputFocus:  base.Border(lipgloss.ThickBorder()).BorderForeground(p.accent).Padding(0, 1),
		row:         base.Border(lipgloss.NormalBorder(), false, false, true, false).BorderForeground(p.activeBackground).Padding(0, 1),
		selectedRow: lipgloss.NewStyle().Background(p.activeBackground).Foreground(p.activeForeground).Padding(0, 1),
		doneRow:     base.Strikethrough(true),
		checkbox:    lipgloss.NewStyle().Background(p.checkbox).Foreground(p.foreground),
		info:        base.Italic(true),
		warning:     base.Bold(true),
		err:         base.Bold(true).Underline(true),
		help:        base.Faint(true).MarginTop(1),
	}
}
