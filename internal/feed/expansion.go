package feed

// Expansion maps posting IDs to their expanded flag. Missing IDs are
// collapsed. Entries are never evicted.
type Expansion map[int64]bool

// IsExpanded reports whether id is expanded.
func (e Expansion) IsExpanded(id int64) bool {
	return e[id]
}

// Toggle returns a copy of e with id flipped. e itself is unchanged.
func (e Expansion) Toggle(id int64) Expansion {
	next := make(Expansion, len(e)+1)
	for k, v := range e {
		next[k] = v
	}
	next[id] = !e[id]
	return next
}
