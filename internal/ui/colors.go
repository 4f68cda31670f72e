package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/threesixnine/archive/internal/models"
)

// Theme accents from the archive's stylesheet.
const (
	accentPurple = "#b266ff"
	accentPink   = "#ff66b2"
	accentMint   = "#66b2ff"
)

var themePalettes = map[models.Theme]*Palette{
	models.ThemePurple: NewPalette(accentPurple, "#04B575", "#FF0000", "#FFA500", "#626262"),
	models.ThemePink:   NewPalette(accentPink, "#04B575", "#FF0000", "#FFA500", "#626262"),
	models.ThemeMint:   NewPalette(accentMint, "#04B575", "#FF0000", "#FFA500", "#626262"),
}

// PaletteFor returns the stylesheet for a theme, defaulting to mint.
func PaletteFor(theme models.Theme) *Palette {
	if p, ok := themePalettes[theme]; ok {
		return p
	}
	return themePalettes[models.ThemeMint]
}

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
