package tree

// Move detaches the node at source and appends it as the last child of the
// directory at target. The input snapshot and expansion are never touched:
// on success a deep copy of the tree is returned together with a new
// expansion in which target is expanded, the moved subtree keeps its own
// flags under its new paths, and paths that no longer exist are dropped.
// On rejection a *MoveError is returned and nothing changes.
func Move(root *Node, exp Expansion, source, target string) (*Node, Expansion, error) {
	reject := func(err error) (*Node, Expansion, error) {
		return nil, nil, &MoveError{Op: "move", Source: source, Target: target, Err: err}
	}
	if source == target {
		return reject(ErrSelfDrop)
	}
	if IsDescendant(target, source) {
		return reject(ErrDescendant)
	}
	src := Find(root, source)
	if src == nil {
		return reject(ErrSourceNotFound)
	}
	dst := Find(root, target)
	if dst == nil {
		return reject(ErrTargetNotFound)
	}
	if dst.Kind != Directory {
		return reject(ErrTargetNotDir)
	}
	parentPath := Parent(source)
	parent := Find(root, parentPath)
	if parent == nil || parent.Child(src.Name) == nil {
		return reject(ErrParentMismatch)
	}
	if parentPath == target {
		return reject(ErrSameParent)
	}
	if dst.Child(src.Name) != nil {
		return reject(ErrNameConflict)
	}

	//mutate a private copy, resolving by path since the copy shares no nodes
	next := root.Clone()
	nparent := Find(next, parentPath)
	ntarget := Find(next, target)
	var moved *Node
	children := make([]*Node, 0, len(nparent.Children))
	for _, c := range nparent.Children {
		if moved == nil && c.Name == src.Name {
			moved = c
			continue
		}
		children = append(children, c)
	}
	nparent.Children = children
	ntarget.Children = append(ntarget.Children, moved)

	dest := PathOf(moved.Name, target)
	nexp := exp.Rebase(source, dest).Expand(target).Prune(Flatten(next))
	return next, nexp, nil
}
