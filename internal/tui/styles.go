package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every view.
var (
	ColorHeader    = lipgloss.AdaptiveColor{Light: "#1F4E79", Dark: "#7FB8F0"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#B0B0B0", Dark: "#4A4A4A"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#C2185B", Dark: "#FF79C6"}
	ColorLabel     = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#A0A0A0"}
	ColorValue     = lipgloss.AdaptiveColor{Light: "#111111", Dark: "#F0F0F0"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#6C6C6C"}
	ColorLink      = lipgloss.AdaptiveColor{Light: "#0B6BCB", Dark: "#8AB4F8"}
	ColorError     = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	ColorSpinner   = lipgloss.AdaptiveColor{Light: "#6A1B9A", Dark: "#BD93F9"}
)

// Styles used by the job list screen.
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorHeader).
			Bold(true).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	SelectedCardStyle = CardStyle.
				BorderForeground(ColorHighlight)

	FadingCardStyle = CardStyle.
			BorderForeground(ColorMuted)

	TitleStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	PlaceStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ReadMoreStyle = lipgloss.NewStyle().Foreground(ColorLink).Underline(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
	SpinnerStyle  = lipgloss.NewStyle().Foreground(ColorSpinner)
	StatusStyle   = lipgloss.NewStyle().Foreground(ColorMuted).Padding(0, 1)
)
