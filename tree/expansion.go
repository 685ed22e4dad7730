package tree

// Expansion maps directory paths to their expanded flag. A missing key
// reads as collapsed. Every method returns a new map and leaves the
// receiver untouched, so a published Expansion can be shared freely.
type Expansion map[string]bool

func (e Expansion) IsExpanded(path string) bool {
	return e[path]
}

func (e Expansion) clone() Expansion {
	c := make(Expansion, len(e))
	for k, v := range e {
		c[k] = v
	}
	return c
}

// Initialize seeds every directory as expanded. It only applies on first
// load, when the map is empty, so later renders keep user toggles.
func (e Expansion) Initialize(entries []FlatEntry) Expansion {
	if len(e) > 0 {
		return e
	}
	c := make(Expansion)
	for _, entry := range entries {
		if entry.Kind != Directory {
			continue
		}
		if _, ok := c[entry.Path]; !ok {
			c[entry.Path] = true
		}
	}
	return c
}

// Toggle flips path. An unseeded path counts as collapsed, so its first
// toggle expands it.
func (e Expansion) Toggle(path string) Expansion {
	c := e.clone()
	c[path] = !e[path]
	return c
}

func (e Expansion) Expand(path string) Expansion {
	if e[path] {
		return e
	}
	c := e.clone()
	c[path] = true
	return c
}

// Prune drops keys for paths not present in entries.
func (e Expansion) Prune(entries []FlatEntry) Expansion {
	live := make(map[string]bool, len(entries))
	for _, entry := range entries {
		live[entry.Path] = true
	}
	c := make(Expansion, len(e))
	for k, v := range e {
		if live[k] {
			c[k] = v
		}
	}
	return c
}

// Rebase re-keys from and everything below it to sit under to.
func (e Expansion) Rebase(from, to string) Expansion {
	c := make(Expansion, len(e))
	for k, v := range e {
		if nk, ok := Rebase(k, from, to); ok {
			c[nk] = v
			continue
		}
		if _, taken := c[k]; !taken {
			c[k] = v
		}
	}
	return c
}
