package tree

// Element is one rendered node header plus its visible children. ID is the
// node path and doubles as the DOM id of the header.
type Element struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Kind       Kind       `json:"kind"`
	Depth      int        `json:"depth"`
	Expanded   bool       `json:"expanded,omitempty"`
	Selected   bool       `json:"selected,omitempty"`
	DropTarget bool       `json:"dropTarget,omitempty"`
	Children   []*Element `json:"children,omitempty"`
}

// Render builds the display tree for a snapshot. Children of a node are
// emitted only when they pass IsVisible, the same predicate Visible uses.
func Render(root *Node, exp Expansion, selected, dropTarget string) *Element {
	if root == nil {
		return nil
	}
	return render(root, "", 0, exp, selected, dropTarget)
}

func render(n *Node, parent string, depth int, exp Expansion, selected, dropTarget string) *Element {
	path := PathOf(n.Name, parent)
	el := &Element{
		ID:         path,
		Name:       n.Name,
		Kind:       n.Kind,
		Depth:      depth,
		Selected:   path == selected,
		DropTarget: n.Kind == Directory && path == dropTarget,
	}
	if n.Kind != Directory {
		return el
	}
	el.Expanded = exp.IsExpanded(path)
	for _, c := range n.Children {
		if !IsVisible(PathOf(c.Name, path), exp) {
			continue
		}
		el.Children = append(el.Children, render(c, path, depth+1, exp, selected, dropTarget))
	}
	return el
}

// Walk visits el and its rendered descendants in pre-order.
func (el *Element) Walk(fn func(*Element)) {
	if el == nil {
		return
	}
	fn(el)
	for _, c := range el.Children {
		c.Walk(fn)
	}
}
