package app

import (
	"github.com/Nadercr7/Shamel/internal/models"
	"github.com/Nadercr7/Shamel/internal/prefs"
	"github.com/charmbracelet/lipgloss"
)

// Theme is the set of styles for one preferences snapshot
type Theme struct {
	Title     lipgloss.Style
	Status    lipgloss.Style
	Menu      lipgloss.Style
	Selected  lipgloss.Style
	Input     lipgloss.Style
	UserMsg   lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Correct   lipgloss.Style
	Help      lipgloss.Style
	Listening lipgloss.Style
	Modal     lipgloss.Style
	Body      lipgloss.Style
	Align     lipgloss.Position
	WrapWidth int
	RTL       bool
}

// NewTheme builds the styles for snap at the given terminal width
func NewTheme(snap prefs.Snapshot, termWidth int) Theme {
	accent := lipgloss.Color("86")
	secondary := lipgloss.Color("39")
	muted := lipgloss.Color("241")
	danger := lipgloss.Color("196")
	success := lipgloss.Color("42")
	fg := lipgloss.NoColor{}

	if snap.HighContrast {
		accent = lipgloss.Color("226")
		secondary = lipgloss.Color("226")
		muted = lipgloss.Color("15")
		danger = lipgloss.Color("226")
		success = lipgloss.Color("15")
	}

	align := lipgloss.Left
	if snap.Direction() == models.RightToLeft {
		align = lipgloss.Right
	}
	width := WrapWidth(termWidth, snap.FontSize)

	base := lipgloss.NewStyle()
	if snap.HighContrast {
		base = base.Foreground(lipgloss.Color("15")).Background(lipgloss.Color("0"))
	} else {
		base = base.Foreground(fg)
	}
	// large text sizes render bold to stand out
	large := snap.FontSize > prefs.DefaultFontSize

	return Theme{
		Title: base.
			Bold(true).
			Foreground(accent).
			MarginBottom(1),

		Status: base.
			Foreground(muted),

		Menu: base.
			MarginLeft(2),

		Selected: base.
			Foreground(accent).
			Bold(true),

		Input: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Width(width),

		UserMsg: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1).
			Bold(large).
			Width(width),

		Assistant: base.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(secondary).
			Padding(0, 1).
			Bold(large).
			Width(width),

		Error: base.
			Foreground(danger).
			Bold(true),

		Correct: base.
			Foreground(success).
			Bold(true),

		Help: base.
			Foreground(muted).
			MarginTop(1),

		Listening: base.
			Foreground(danger).
			Bold(true),

		Modal: base.
			Border(lipgloss.DoubleBorder()).
			BorderForeground(danger).
			Padding(1, 2).
			Width(width),

		Body: base.
			Bold(large).
			Width(width).
			Align(align),

		Align:     align,
		WrapWidth: width,
		RTL:       snap.Direction() == models.RightToLeft,
	}
}

// WrapWidth narrows the text column as the font size grows so larger text means fewer
// characters per line
func WrapWidth(termWidth, fontSize int) int {
	if termWidth <= 0 {
		termWidth = 80
	}
	if fontSize <= 0 {
		fontSize = prefs.DefaultFontSize
	}
	usable := termWidth - 4
	width := usable * prefs.DefaultFontSize / fontSize
	if width > usable {
		width = usable
	}
	if width < 20 {
		width = 20
	}
	return width
}
