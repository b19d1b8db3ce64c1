package listview_test

import (
	"strconv"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	listview "github.com/rshade/jobfeed/internal/tui/list"
)

func numbered(n int) []string {
	items := make([]string, n)
	for i := range items {
		items[i] = "item" + strconv.Itoa(i)
	}
	return items
}

func plain(item string, selected bool) string {
	if selected {
		return "> " + item
	}
	return item
}

func TestVirtualListModel_NewModel(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(5), 3, 80, plain)

	assert.Equal(t, 5, model.ItemCount())
	assert.Equal(t, 3, model.Height())
	assert.Equal(t, 80, model.Width())
	assert.Equal(t, 0, model.Selected())
	assert.Equal(t, 0, model.VisibleFrom())
	assert.Equal(t, 3, model.VisibleTo())
}

func TestVirtualListModel_ZeroHeightClampsToOne(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(5), 0, 80, plain)
	assert.Equal(t, 1, model.Height())
}

func TestVirtualListModel_VisibleRangeCalculation(t *testing.T) {
	tests := []struct {
		name           string
		totalItems     int
		viewportHeight int
		selectedIndex  int
		expectFrom     int
		expectTo       int
	}{
		{"first page", 100, 20, 0, 0, 20},
		{"middle page", 100, 20, 50, 40, 60},
		{"last page", 100, 20, 99, 80, 100},
		{"fewer items than viewport", 10, 20, 5, 0, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := listview.NewVirtualListModel(numbered(tt.totalItems), tt.viewportHeight, 80, plain)
			model.SetSelected(tt.selectedIndex)

			assert.Equal(t, tt.expectFrom, model.VisibleFrom())
			assert.Equal(t, tt.expectTo, model.VisibleTo())
		})
	}
}

func TestVirtualListModel_KeyboardNavigation(t *testing.T) {
	tests := []struct {
		name   string
		start  int
		key    tea.KeyMsg
		expect int
	}{
		{"down", 0, tea.KeyMsg{Type: tea.KeyDown}, 1},
		{"up", 3, tea.KeyMsg{Type: tea.KeyUp}, 2},
		{"up at top stays", 0, tea.KeyMsg{Type: tea.KeyUp}, 0},
		{"down at bottom stays", 9, tea.KeyMsg{Type: tea.KeyDown}, 9},
		{"j moves down", 0, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}}, 1},
		{"k moves up", 2, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}}, 1},
		{"page down", 0, tea.KeyMsg{Type: tea.KeyPgDown}, 4},
		{"page up clamps", 2, tea.KeyMsg{Type: tea.KeyPgUp}, 0},
		{"home", 7, tea.KeyMsg{Type: tea.KeyHome}, 0},
		{"end", 0, tea.KeyMsg{Type: tea.KeyEnd}, 9},
		{"other runes ignored", 4, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model := listview.NewVirtualListModel(numbered(10), 4, 80, plain)
			model.SetSelected(tt.start)

			updated, cmd := model.Update(tt.key)
			assert.Nil(t, cmd)
			assert.Equal(t, tt.expect, updated.(*listview.VirtualListModel[string]).Selected())
		})
	}
}

func TestVirtualListModel_EmptyList(t *testing.T) {
	model := listview.NewVirtualListModel[string](nil, 4, 80, plain)

	model.Update(tea.KeyMsg{Type: tea.KeyDown})

	assert.Equal(t, 0, model.Selected())
	assert.Empty(t, model.View())
	assert.Nil(t, model.GetSelectedItem())
	assert.False(t, model.NearEnd(3))
}

func TestVirtualListModel_View(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(10), 3, 80, plain)
	model.SetSelected(1)

	view := model.View()
	lines := strings.Split(view, "\n")

	require.Len(t, lines, 3)
	assert.Equal(t, "item0", lines[0])
	assert.Equal(t, "> item1", lines[1])
	assert.NotContains(t, view, "item5")
}

func TestVirtualListModel_SetItemsKeepsSelection(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(5), 3, 80, plain)
	model.SetSelected(4)

	model.SetItems(numbered(10))
	assert.Equal(t, 4, model.Selected())
	assert.Equal(t, 10, model.ItemCount())

	model.SetItems(numbered(2))
	assert.Equal(t, 1, model.Selected(), "selection clamps to the shorter list")

	item := model.GetSelectedItem()
	require.NotNil(t, item)
	assert.Equal(t, "item1", *item)
}

func TestVirtualListModel_NearEnd(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(10), 3, 80, plain)

	assert.False(t, model.NearEnd(2))

	model.SetSelected(6)
	assert.False(t, model.NearEnd(2))

	model.SetSelected(7)
	assert.True(t, model.NearEnd(2))

	model.SetSelected(9)
	assert.True(t, model.NearEnd(0))
}

func TestVirtualListModel_SetSize(t *testing.T) {
	model := listview.NewVirtualListModel(numbered(100), 10, 80, plain)
	model.SetSelected(50)

	model.SetSize(4, 120)

	assert.Equal(t, 4, model.Height())
	assert.Equal(t, 120, model.Width())
	assert.Equal(t, 48, model.VisibleFrom())
	assert.Equal(t, 52, model.VisibleTo())
}
