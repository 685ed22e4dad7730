package engine

import (
	"errors"
	"fmt"
	"sync"

	"github.com/boypt/simple-explorer/tree"
	"github.com/c2h5oh/datasize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

var ErrNoTree = errors.New("no tree loaded")

// Engine is one explorer session. Every state transition runs under mut,
// which makes it the single event thread for HTTP handlers and the
// payload watcher alike.
type Engine struct {
	mut     sync.Mutex
	config  Config
	keymap  Keymap
	maxSize datasize.ByteSize

	root      *tree.Node
	entries   []tree.FlatEntry
	expanded  tree.Expansion
	seeded    bool
	selection tree.Selection
	drag      gesture

	bindings  int
	scrollTo  string
	scrollSeq int64
	version   int64

	afs     afero.Fs
	watcher *fsnotify.Watcher
	notify  func()
}

// View is the immutable render output handed to the realtime state.
type View struct {
	Root       *tree.Element    `json:"root"`
	Visible    []tree.FlatEntry `json:"visible"`
	Selected   string           `json:"selected"`
	ScrollTo   string           `json:"scrollTo"`
	ScrollSeq  int64            `json:"scrollSeq"`
	Dragging   string           `json:"dragging"`
	DropTarget string           `json:"dropTarget"`
	Bound      bool             `json:"bound"`
	Version    int64            `json:"version"`
}

func New() *Engine {
	c := DefaultConfig()
	km, _ := NewKeymap(c)
	size, _ := parseSize(c.MaxTreeSize)
	return &Engine{
		config:   c,
		keymap:   km,
		maxSize:  size,
		expanded: tree.Expansion{},
		afs:      afero.NewOsFs(),
	}
}

func (e *Engine) Config() Config {
	e.mut.Lock()
	defer e.mut.Unlock()
	return e.config
}

func (e *Engine) Configure(c Config) error {
	km, err := NewKeymap(c)
	if err != nil {
		return err
	}
	size, err := parseSize(c.MaxTreeSize)
	if err != nil {
		return fmt.Errorf("Invalid MaxTreeSize (%s): %w", c.MaxTreeSize, err)
	}
	e.mut.Lock()
	e.config = c
	e.keymap = km
	e.maxSize = size
	e.mut.Unlock()
	log.setDebug(c.Debug)
	return nil
}

// MaxTreeSize is the payload limit in bytes. Zero means unlimited.
func (e *Engine) MaxTreeSize() datasize.ByteSize {
	e.mut.Lock()
	defer e.mut.Unlock()
	return e.maxSize
}

// SetFs swaps the filesystem payload files are read from.
func (e *Engine) SetFs(fs afero.Fs) {
	e.mut.Lock()
	e.afs = fs
	e.mut.Unlock()
}

// SetNotify registers fn to run after every state change. fn is called
// without the engine lock held.
func (e *Engine) SetNotify(fn func()) {
	e.mut.Lock()
	e.notify = fn
	e.mut.Unlock()
}

func (e *Engine) changed() {
	e.mut.Lock()
	fn := e.notify
	e.mut.Unlock()
	if fn != nil {
		fn()
	}
}

// Load publishes root as the current snapshot.
func (e *Engine) Load(root *tree.Node) error {
	if root == nil {
		return ErrNoTree
	}
	e.mut.Lock()
	e.load(root)
	e.mut.Unlock()
	e.changed()
	return nil
}

func (e *Engine) load(root *tree.Node) {
	e.root = root
	e.entries = tree.Flatten(root)
	// directories start expanded on the first load only
	if !e.seeded {
		e.expanded = tree.Expansion{}.Initialize(e.entries)
		e.seeded = true
	}
	e.expanded = e.expanded.Prune(e.entries)
	e.selection = e.selection.EnsureDefault(e.entries)
	if tree.IndexOf(e.entries, e.selection.Path) < 0 {
		e.selection = tree.Selection{}.EnsureDefault(e.entries)
	}
	e.drag = gesture{}
	e.version++
	log.Printf("tree loaded: %s (%d nodes, version %d)", root.Name, len(e.entries), e.version)
}

// Snapshot returns the published tree. It must not be modified.
func (e *Engine) Snapshot() *tree.Node {
	e.mut.Lock()
	defer e.mut.Unlock()
	return e.root
}

// Select marks path as selected. Unknown paths are ignored.
func (e *Engine) Select(path string) bool {
	e.mut.Lock()
	if tree.IndexOf(e.entries, path) < 0 {
		e.mut.Unlock()
		return false
	}
	e.selection = e.selection.Select(path)
	e.mut.Unlock()
	e.changed()
	return true
}

// Toggle flips the expansion of a directory. Files and unknown paths
// are ignored.
func (e *Engine) Toggle(path string) bool {
	e.mut.Lock()
	idx := tree.IndexOf(e.entries, path)
	if idx < 0 || !e.entries[idx].IsDir() {
		e.mut.Unlock()
		return false
	}
	e.expanded = e.expanded.Toggle(path)
	e.mut.Unlock()
	e.changed()
	return true
}

// Expansion returns the current expansion map. It must not be modified.
func (e *Engine) Expansion() tree.Expansion {
	e.mut.Lock()
	defer e.mut.Unlock()
	return e.expanded
}

func (e *Engine) View() View {
	e.mut.Lock()
	defer e.mut.Unlock()
	return View{
		Root:       tree.Render(e.root, e.expanded, e.selection.Path, e.drag.candidate),
		Visible:    tree.Visible(e.entries, e.expanded),
		Selected:   e.selection.Path,
		ScrollTo:   e.scrollTo,
		ScrollSeq:  e.scrollSeq,
		Dragging:   e.drag.source,
		DropTarget: e.drag.candidate,
		Bound:      e.bindings > 0,
		Version:    e.version,
	}
}
