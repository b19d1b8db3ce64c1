// Package listview provides a windowed list component for Bubble Tea screens.
//
// Only the items around the selection are rendered, so the job list stays
// responsive however many pages have been appended. Key features:
//   - Windowed rendering with O(viewport) cost per frame
//   - Keyboard navigation (up/down, pgup/pgdn, home/end, j/k)
//   - Multi-line items: the viewport height is measured in items
//   - End-of-list detection used to trigger infinite scroll
package listview
