package engine

import (
	"github.com/boypt/simple-explorer/tree"
)

// gesture is the single in-flight drag.
type gesture struct {
	source    string
	candidate string
}

// DragStart begins a gesture on path, replacing any gesture in flight.
func (e *Engine) DragStart(path string) {
	e.mut.Lock()
	e.drag = gesture{source: path}
	e.mut.Unlock()
	log.Debugf("drag start %s", path)
	e.changed()
}

// DragOver marks path as the drop candidate when it is a directory and
// clears the candidate otherwise.
func (e *Engine) DragOver(path string) {
	e.mut.Lock()
	if e.drag.source == "" {
		e.mut.Unlock()
		return
	}
	candidate := ""
	if idx := tree.IndexOf(e.entries, path); idx >= 0 && e.entries[idx].IsDir() {
		candidate = path
	}
	same := candidate == e.drag.candidate
	e.drag.candidate = candidate
	e.mut.Unlock()
	if !same {
		e.changed()
	}
}

// DragLeave clears the candidate when the pointer left that very header.
// Browsers report entering the next header before leaving the previous
// one, so a leave for any other path is stale.
func (e *Engine) DragLeave(path string) {
	e.mut.Lock()
	had := e.drag.candidate != "" && e.drag.candidate == path
	if had {
		e.drag.candidate = ""
	}
	e.mut.Unlock()
	if had {
		e.changed()
	}
}

// DragEnd drops the dragged node onto the current candidate. A missing
// candidate or a rejected move leaves the tree as it was. The gesture is
// always cleared.
func (e *Engine) DragEnd() bool {
	e.mut.Lock()
	g := e.drag
	e.drag = gesture{}
	moved := false
	switch {
	case g.source == "" || g.candidate == "":
		log.Debugf("drag end without target %s", g.source)
	case e.root == nil:
		log.Debugf("drag end on empty engine")
	default:
		next, exp, err := tree.Move(e.root, e.expanded, g.source, g.candidate)
		if err != nil {
			log.Debugf("drop rejected: %v", err)
			break
		}
		dest := tree.PathOf(tree.Base(g.source), g.candidate)
		e.root = next
		e.entries = tree.Flatten(next)
		e.expanded = exp
		e.selection = e.selection.Rebase(g.source, dest)
		if e.scrollTo != "" {
			if p, ok := tree.Rebase(e.scrollTo, g.source, dest); ok {
				e.scrollTo = p
			}
		}
		e.version++
		moved = true
		log.Printf("moved %s -> %s", g.source, dest)
	}
	e.mut.Unlock()
	e.changed()
	return moved
}
