package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/jobfeed/internal/jobs"
)

// Card labels.
const (
	NoTitleLabel    = "No Title"
	NoLocationLabel = "No Location"
	ReadMoreLabel   = "Read more"
)

const (
	// collapsedTitleLines is how many title lines a collapsed card shows.
	collapsedTitleLines = 2
	// cardChrome is the border plus horizontal padding of a card.
	cardChrome       = 4
	cardPadding      = 2
	minCardTextWidth = 10
	ellipsis         = "…"
)

// RenderCard renders a posting. A collapsed card shows at most two title
// lines followed by a "Read more" affordance; an expanded card shows the
// whole title.
func RenderCard(p jobs.Posting, expanded, selected bool, width int) string {
	style := CardStyle
	if selected {
		style = SelectedCardStyle
	}
	return renderCard(p, expanded, style, width)
}

func renderCard(p jobs.Posting, expanded bool, style lipgloss.Style, width int) string {
	textWidth := max(width-cardChrome, minCardTextWidth)

	title := p.Title
	if strings.TrimSpace(title) == "" {
		title = NoTitleLabel
	}

	lines := wrap(title, textWidth)
	if !expanded && len(lines) > collapsedTitleLines {
		lines = lines[:collapsedTitleLines]
		lines[collapsedTitleLines-1] = withEllipsis(lines[collapsedTitleLines-1], textWidth)
	}

	body := make([]string, 0, len(lines)+2)
	for _, l := range lines {
		body = append(body, TitleStyle.Render(l))
	}
	if !expanded {
		body = append(body, ReadMoreStyle.Render(ReadMoreLabel))
	}

	place := p.Place
	if !p.HasPlace() {
		place = NoLocationLabel
	}
	body = append(body, PlaceStyle.Render(truncateLine(place, textWidth)))

	// lipgloss widths include padding but not the border.
	return style.Width(textWidth + cardPadding).Render(strings.Join(body, "\n"))
}

// wrap word-wraps text to width and strips the padding lipgloss adds.
func wrap(text string, width int) []string {
	wrapped := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(wrapped, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

// withEllipsis marks a line as cut, shortening it if the mark would not fit.
func withEllipsis(line string, width int) string {
	runes := []rune(line)
	for len(runes) > 0 && lipgloss.Width(string(runes))+lipgloss.Width(ellipsis) > width {
		runes = runes[:len(runes)-1]
	}
	return strings.TrimRight(string(runes), " ") + ellipsis
}

func truncateLine(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	return withEllipsis(s, width)
}
