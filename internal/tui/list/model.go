package listview

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// halfViewportDivisor is used to calculate half the viewport height for centering.
const halfViewportDivisor = 2

// RenderFunc renders an item. The result may span several lines.
type RenderFunc[T any] func(item T, selected bool) string

// VirtualListModel renders the window of items around the selection.
type VirtualListModel[T any] struct {
	items      []T
	renderFunc RenderFunc[T]

	// selected is the currently selected item index (0-based)
	selected int

	// visibleFrom/visibleTo bound the window, visibleTo exclusive
	visibleFrom int
	visibleTo   int

	// height is the viewport height in items
	height int
	width  int
}

// NewVirtualListModel creates a list showing height items at a time.
func NewVirtualListModel[T any](items []T, height, width int, renderFunc RenderFunc[T]) *VirtualListModel[T] {
	m := &VirtualListModel[T]{
		items:      items,
		renderFunc: renderFunc,
		height:     max(height, 1),
		width:      width,
	}

	m.updateVisibleRange()
	return m
}

// Init initializes the model (required for tea.Model interface).
func (m *VirtualListModel[T]) Init() tea.Cmd {
	return nil
}

// Update handles navigation keys. Resizing is driven by the parent through
// SetSize because the parent decides how many items fit.
func (m *VirtualListModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKeyMsg(keyMsg), nil
	}
	return m, nil
}

// handleKeyMsg processes keyboard input for navigation.
//
//nolint:exhaustive // Only navigation keys are relevant.
func (m *VirtualListModel[T]) handleKeyMsg(msg tea.KeyMsg) tea.Model {
	if len(m.items) == 0 {
		return m
	}

	switch msg.Type {
	case tea.KeyUp:
		m.move(-1)
	case tea.KeyDown:
		m.move(1)
	case tea.KeyPgUp:
		m.move(-m.height)
	case tea.KeyPgDown:
		m.move(m.height)
	case tea.KeyHome:
		m.SetSelected(0)
	case tea.KeyEnd:
		m.SetSelected(len(m.items) - 1)
	case tea.KeyRunes:
		if len(msg.Runes) > 0 {
			switch msg.Runes[0] {
			case 'j':
				m.move(1)
			case 'k':
				m.move(-1)
			}
		}
	default:
		// Ignore other key types (Ctrl combinations, function keys, etc.)
	}

	return m
}

func (m *VirtualListModel[T]) move(delta int) {
	m.SetSelected(m.selected + delta)
}

// updateVisibleRange keeps the selected item inside the window.
func (m *VirtualListModel[T]) updateVisibleRange() {
	if len(m.items) == 0 {
		m.visibleFrom = 0
		m.visibleTo = 0
		return
	}

	halfViewport := m.height / halfViewportDivisor

	idealFrom := m.selected - halfViewport
	idealTo := idealFrom + m.height

	if idealFrom < 0 {
		idealFrom = 0
		idealTo = m.height
	}

	if idealTo > len(m.items) {
		idealTo = len(m.items)
		idealFrom = max(idealTo-m.height, 0)
	}

	m.visibleFrom = idealFrom
	m.visibleTo = idealTo
}

// View renders the visible window.
func (m *VirtualListModel[T]) View() string {
	if len(m.items) == 0 {
		return ""
	}

	rendered := make([]string, 0, m.visibleTo-m.visibleFrom)
	for i := m.visibleFrom; i < m.visibleTo; i++ {
		rendered = append(rendered, m.renderFunc(m.items[i], i == m.selected))
	}
	return strings.Join(rendered, "\n")
}

// SetItems replaces the items, keeping the selection within bounds.
func (m *VirtualListModel[T]) SetItems(items []T) {
	m.items = items
	m.SetSelected(m.selected)
}

// SetSize sets the viewport height (in items) and width (in columns).
func (m *VirtualListModel[T]) SetSize(height, width int) {
	m.height = max(height, 1)
	m.width = width
	m.updateVisibleRange()
}

// ItemCount returns the total number of items in the list.
func (m *VirtualListModel[T]) ItemCount() int {
	return len(m.items)
}

// Selected returns the currently selected item index.
func (m *VirtualListModel[T]) Selected() int {
	return m.selected
}

// SetSelected sets the selected item index, capping to valid bounds.
func (m *VirtualListModel[T]) SetSelected(index int) {
	if len(m.items) == 0 {
		m.selected = 0
		m.updateVisibleRange()
		return
	}

	m.selected = min(max(index, 0), len(m.items)-1)
	m.updateVisibleRange()
}

// NearEnd reports whether the selection is within threshold items of the
// last item. An empty list is never near its end.
func (m *VirtualListModel[T]) NearEnd(threshold int) bool {
	if len(m.items) == 0 {
		return false
	}
	return m.selected >= len(m.items)-1-threshold
}

// VisibleFrom returns the first visible item index (inclusive).
func (m *VirtualListModel[T]) VisibleFrom() int {
	return m.visibleFrom
}

// VisibleTo returns the last visible item index (exclusive).
func (m *VirtualListModel[T]) VisibleTo() int {
	return m.visibleTo
}

// Height returns the viewport height in items.
func (m *VirtualListModel[T]) Height() int {
	return m.height
}

// Width returns the viewport width.
func (m *VirtualListModel[T]) Width() int {
	return m.width
}

// GetSelectedItem returns the currently selected item, or nil if the list is empty.
func (m *VirtualListModel[T]) GetSelectedItem() *T {
	if len(m.items) == 0 || m.selected < 0 || m.selected >= len(m.items) {
		return nil
	}
	return &m.items[m.selected]
}
