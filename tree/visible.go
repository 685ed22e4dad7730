package tree

// IsVisible reports whether every ancestor of path is expanded. A root
// path has no ancestors and is always visible. Rendering and keyboard
// traversal both go through this predicate.
func IsVisible(path string, exp Expansion) bool {
	for p := Parent(path); p != ""; p = Parent(p) {
		if !exp[p] {
			return false
		}
	}
	return true
}

// Visible keeps the entries that are currently on screen, in their
// input pre-order.
func Visible(entries []FlatEntry, exp Expansion) []FlatEntry {
	visible := make([]FlatEntry, 0, len(entries))
	for _, e := range entries {
		if IsVisible(e.Path, exp) {
			visible = append(visible, e)
		}
	}
	return visible
}
