package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/boypt/simple-explorer/common"
	"github.com/boypt/simple-explorer/engine"
	"github.com/boypt/simple-explorer/tree"
)

const (
	// bodies of every action but a tree upload are a few bytes
	maxActionBody = 64 << 10
	respOK        = "OK"
	respIgnored   = "IGNORED"
)

var (
	errUnknownNode = errors.New("Unknown node")
)

func (s *Server) apiPOST(r *http.Request) (string, error) {
	defer r.Body.Close()

	action := strings.TrimPrefix(r.URL.Path, "/api/")

	var body io.Reader = io.LimitReader(r.Body, maxActionBody)
	if action == "tree" {
		body = r.Body
		// one byte over the limit is enough for LoadTreeBytes to refuse it
		if limit := s.engine.MaxTreeSize(); limit > 0 {
			body = io.LimitReader(r.Body, int64(limit.Bytes())+1)
		}
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("Failed to download request body")
	}

	//interface with engine
	switch action {
	case "key":
		if s.engine.HandleKey(string(data)) {
			return respOK, nil
		}
		return respIgnored, nil
	case "select":
		path := string(data)
		if !s.engine.Select(path) {
			return "", fmt.Errorf("%w: %s", errUnknownNode, path)
		}
	case "toggle":
		path := string(data)
		if !s.engine.Toggle(path) {
			return "", fmt.Errorf("%w: %s", errUnknownNode, path)
		}
	case "drag":
		if err := s.apiDrag(string(data)); err != nil {
			return "", err
		}
	case "tree":
		f := tree.JSON
		if strings.Contains(r.Header.Get("Content-Type"), "yaml") {
			f = tree.YAML
		}
		if err := s.engine.LoadTreeBytes(data, f); err != nil {
			return "", err
		}
		log.Printf("[api] tree replaced (%d bytes)", len(data))
	case "configure":
		if err := s.apiConfigure(data); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("Invalid action: %s", action)
	}
	return respOK, nil
}

// apiDrag drives the drag gesture. The body is one of
// start:<path>, over:<path>, leave:<path>, end.
func (s *Server) apiDrag(cmd string) error {
	parts := strings.SplitN(cmd, ":", 2)
	switch parts[0] {
	case "start", "over", "leave":
		if len(parts) != 2 || parts[1] == "" {
			return fmt.Errorf("Invalid request")
		}
		switch parts[0] {
		case "start":
			s.engine.DragStart(parts[1])
		case "over":
			s.engine.DragOver(parts[1])
		default:
			s.engine.DragLeave(parts[1])
		}
	case "end":
		s.engine.DragEnd()
	default:
		return fmt.Errorf("Invalid drag state: %s", parts[0])
	}
	return nil
}

func (s *Server) apiGET(w http.ResponseWriter, r *http.Request) error {
	action := strings.TrimPrefix(r.URL.Path, "/api/")

	var v interface{}
	switch action {
	case "tree":
		v = s.engine.Snapshot()
	case "view":
		v = s.engine.View()
	case "config":
		v = s.engine.Config()
	default:
		return fmt.Errorf("Invalid path")
	}
	w.Header().Set("Content-Type", "application/json")
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	common.HandleError(err)
	return nil
}

func (s *Server) apiConfigure(data []byte) error {
	cur := s.engine.Config()
	if !cur.AllowRuntimeConfigure {
		log.Printf("[api] runtime configure is disabled")
		return errors.New("Runtime configure is disabled")
	}

	c := cur
	if err := json.Unmarshal(data, &c); err != nil {
		return err
	}
	if _, err := c.NormlizeTreeFile(); err != nil {
		return err
	}

	if reflect.DeepEqual(cur, c) {
		log.Printf("[api] configure unchanged")
		return nil
	}

	status := cur.Validate(&c)
	if status&engine.ForbidRuntimeChange > 0 {
		log.Printf("[api] warnning! someone tried to change AllowRuntimeConfigure")
		return errors.New("Nice Try! But this is NOT allowed being changed on runtime")
	}

	if err := s.engine.Configure(c); err != nil {
		return err
	}
	if status&engine.NeedReloadTree > 0 && c.TreeFile != "" {
		if err := s.engine.LoadTreeFile(c.TreeFile); err != nil {
			// keep the old tree but roll the config back so it still matches
			s.engine.Configure(cur)
			return err
		}
		log.Printf("[api] tree reloaded from %s", c.TreeFile)
	}
	if status&engine.NeedRestartWatch > 0 {
		s.restartWatcher(c)
	}

	// now it's safe to save the configure
	cur.SyncViper(c)
	if err := c.WriteYaml(); err != nil {
		log.Printf("[api] config save failed: %v", err)
	} else {
		log.Printf("[api] config saved")
	}

	s.state.Lock()
	s.state.Config = c
	s.state.Unlock()
	s.baseInfo.Title = c.Title
	s.state.Push()
	return nil
}

func (s *Server) restartWatcher(c engine.Config) {
	if !c.WatchTree || c.TreeFile == "" {
		s.engine.StopTreeWatcher()
		return
	}
	if err := s.engine.StartTreeWatcher(); err != nil {
		log.Printf("[api] tree watcher: %v", err)
		return
	}
	log.Printf("[api] tree watcher restarted")
}
