package tui

import (
	"strings"
)

// Screen labels.
const (
	InitialLoadingLabel = "Loading jobs..."
	LoadingMoreLabel    = "Loading more jobs..."
	RefreshingLabel     = "Refreshing..."
	EmptyLabel          = "No Jobs Found"
)

// View renders the job list screen.
func (m *JobsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(m.opts.Greeting))
	b.WriteString("\n\n")

	if m.state.ShowInitialLoading() {
		b.WriteString(m.spinner.View() + " " + InitialLoadingLabel)
		b.WriteString("\n")
		m.renderError(&b)
		return b.String()
	}

	if m.state.Refreshing {
		b.WriteString(m.spinner.View() + " " + MutedStyle.Render(RefreshingLabel))
		b.WriteString("\n")
	}

	if m.state.ShowEmpty() {
		b.WriteString(MutedStyle.Render(EmptyLabel))
		b.WriteString("\n")
	} else if list := m.list.View(); list != "" {
		b.WriteString(list)
		b.WriteString("\n")
	}

	if m.state.ShowLoadingMore() {
		b.WriteString(m.spinner.View() + " " + MutedStyle.Render(LoadingMoreLabel))
		b.WriteString("\n")
	}

	m.renderError(&b)

	b.WriteString(StatusStyle.Render(m.statusLine()))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *JobsModel) renderError(b *strings.Builder) {
	if m.state.LastError == "" {
		return
	}
	b.WriteString(ErrorStyle.Render(m.state.LastError))
	b.WriteString("\n")
}

// statusLine summarises how much has been loaded.
func (m *JobsModel) statusLine() string {
	n := len(m.state.Items)
	if n == 0 {
		return m.printer.Sprintf("no jobs loaded")
	}
	line := m.printer.Sprintf("%d of %d jobs", m.list.Selected()+1, n)
	if !m.state.HasMore {
		line += " · end of list"
	}
	return line
}
