package engine

import (
	"fmt"
	"sync"

	"github.com/boypt/simple-explorer/tree"
)

type Action uint8

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionToggle
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionToggle:
		return "toggle"
	}
	return "none"
}

// Keymap maps browser KeyboardEvent.key names to actions.
type Keymap map[string]Action

func NewKeymap(c Config) (Keymap, error) {
	km := Keymap{}
	bind := func(keys []string, a Action) error {
		for _, k := range keys {
			if k == "" {
				return fmt.Errorf("empty key name for %s", a)
			}
			if prev, ok := km[k]; ok && prev != a {
				return fmt.Errorf("key %q bound to both %s and %s", k, prev, a)
			}
			km[k] = a
		}
		return nil
	}
	if err := bind(c.KeyNext, ActionNext); err != nil {
		return nil, err
	}
	if err := bind(c.KeyPrev, ActionPrev); err != nil {
		return nil, err
	}
	if err := bind(c.KeyToggle, ActionToggle); err != nil {
		return nil, err
	}
	return km, nil
}

// Bind acquires a keyboard binding. Keys are only handled while at least
// one binding is held. The returned release is safe to call more than once.
func (e *Engine) Bind() (release func()) {
	e.mut.Lock()
	e.bindings++
	e.mut.Unlock()
	e.changed()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mut.Lock()
			e.bindings--
			e.mut.Unlock()
			e.changed()
		})
	}
}

// HandleKey applies key and reports whether it was handled. An unhandled
// key should be left to the browser's default behaviour.
func (e *Engine) HandleKey(key string) bool {
	e.mut.Lock()
	if e.bindings == 0 {
		e.mut.Unlock()
		return false
	}
	act, ok := e.keymap[key]
	if !ok {
		e.mut.Unlock()
		return false
	}
	changed := e.apply(act)
	e.mut.Unlock()
	if changed {
		e.changed()
	}
	return true
}

func (e *Engine) apply(act Action) bool {
	visible := tree.Visible(e.entries, e.expanded)
	idx := tree.IndexOf(visible, e.selection.Path)
	if idx < 0 {
		return false
	}
	switch act {
	case ActionNext, ActionPrev:
		next := idx + 1
		if act == ActionPrev {
			next = idx - 1
		}
		if next < 0 || next >= len(visible) {
			return false
		}
		path := visible[next].Path
		e.selection = e.selection.Select(path)
		e.scrollTo = path
		e.scrollSeq++
		return true
	case ActionToggle:
		if !visible[idx].IsDir() {
			return false
		}
		e.expanded = e.expanded.Toggle(visible[idx].Path)
		return true
	}
	return false
}
