package engine

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/boypt/simple-explorer/tree"
	"github.com/c2h5oh/datasize"
	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// ReadTreeFile decodes the payload at path. The format follows the file
// extension. Files larger than limit are refused before decoding.
func ReadTreeFile(fs afero.Fs, path string, limit datasize.ByteSize) (*tree.Node, error) {
	st, err := fs.Stat(path)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	if limit > 0 && uint64(st.Size()) > limit.Bytes() {
		return nil, fmt.Errorf("%s is %s, exceeds limit %s", path,
			humanize.Bytes(uint64(st.Size())), limit.HumanReadable())
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := io.Reader(f)
	if limit > 0 {
		// the file may have grown since Stat
		r = io.LimitReader(f, int64(limit.Bytes())+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if limit > 0 && uint64(len(data)) > limit.Bytes() {
		return nil, fmt.Errorf("%s exceeds limit %s", path, limit.HumanReadable())
	}

	root, err := tree.Decode(data, tree.FormatOf(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("read tree file %s (%s)", path, humanize.Bytes(uint64(len(data))))
	return root, nil
}

// LoadTreeFile reads path through the engine filesystem and publishes it.
func (e *Engine) LoadTreeFile(path string) error {
	e.mut.Lock()
	fs, limit := e.afs, e.maxSize
	e.mut.Unlock()

	root, err := ReadTreeFile(fs, path, limit)
	if err != nil {
		return err
	}
	return e.Load(root)
}

// LoadTreeBytes decodes an uploaded payload and publishes it.
func (e *Engine) LoadTreeBytes(data []byte, f tree.Format) error {
	limit := e.MaxTreeSize()
	if limit > 0 && uint64(len(data)) > limit.Bytes() {
		return fmt.Errorf("payload is %s, exceeds limit %s",
			humanize.Bytes(uint64(len(data))), limit.HumanReadable())
	}
	root, err := tree.Decode(data, f)
	if err != nil {
		return err
	}
	return e.Load(root)
}

// StartTreeWatcher reloads Config.TreeFile whenever it is written. A
// previous watcher is closed first.
func (e *Engine) StartTreeWatcher() error {
	e.StopTreeWatcher()

	e.mut.Lock()
	file := e.config.TreeFile
	e.mut.Unlock()
	if file == "" {
		return fmt.Errorf("[Watcher] no tree file configured")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// watch the directory so editors that replace the file are seen
	if err := watcher.Add(filepath.Dir(file)); err != nil {
		watcher.Close()
		return err
	}
	e.mut.Lock()
	e.watcher = watcher
	e.mut.Unlock()
	log.Printf("Tree Watcher: watching %s", file)

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(file) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				if err := e.LoadTreeFile(file); err != nil {
					log.Printf("Tree Watcher: reload %s failed: %v", file, err)
				} else {
					log.Printf("Tree Watcher: reloaded %s", file)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Println("Tree Watcher error:", err)
			}
		}
	}()
	return nil
}

func (e *Engine) StopTreeWatcher() {
	e.mut.Lock()
	w := e.watcher
	e.watcher = nil
	e.mut.Unlock()
	if w != nil {
		log.Printf("Tree Watcher: close")
		w.Close()
	}
}

func (e *Engine) Close() {
	e.StopTreeWatcher()
}
