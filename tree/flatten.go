package tree

// FlatEntry is one node of a flattened tree.
type FlatEntry struct {
	Name  string `json:"name"`
	Kind  Kind   `json:"kind"`
	Level int    `json:"level"`
	Path  string `json:"path"`
}

func (e FlatEntry) IsDir() bool {
	return e.Kind == Directory
}

// Flatten lists every node of root in pre-order, each annotated with its
// depth and path. The result is freshly allocated on every call.
func Flatten(root *Node) []FlatEntry {
	if root == nil {
		return nil
	}
	type frame struct {
		node   *Node
		level  int
		parent string
	}
	var entries []FlatEntry
	stack := []frame{{node: root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		path := PathOf(f.node.Name, f.parent)
		entries = append(entries, FlatEntry{
			Name:  f.node.Name,
			Kind:  f.node.Kind,
			Level: f.level,
			Path:  path,
		})
		if f.node.Kind != Directory {
			continue
		}
		//push in reverse so the first child pops first
		for i := len(f.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{node: f.node.Children[i], level: f.level + 1, parent: path})
		}
	}
	return entries
}

// IndexOf returns the position of path in entries, or -1.
func IndexOf(entries []FlatEntry, path string) int {
	for i, e := range entries {
		if e.Path == path {
			return i
		}
	}
	return -1
}
