package tree

// Selection holds the single selected path.
type Selection struct {
	Path   string
	seeded bool
}

// Select overwrites the current selection.
func (s Selection) Select(path string) Selection {
	return Selection{Path: path, seeded: true}
}

// EnsureDefault selects the first entry when nothing has ever been
// selected. Once a default was applied it never fires again.
func (s Selection) EnsureDefault(entries []FlatEntry) Selection {
	if s.seeded || s.Path != "" || len(entries) == 0 {
		return s
	}
	return Selection{Path: entries[0].Path, seeded: true}
}

// Rebase follows a node that moved from one path to another.
func (s Selection) Rebase(from, to string) Selection {
	if p, ok := Rebase(s.Path, from, to); ok {
		s.Path = p
	}
	return s
}
