package server

import (
	"fmt"
	"html/template"
	"net/http"
	"strings"

	"github.com/boypt/simple-explorer/common"
	ctstatic "github.com/boypt/simple-explorer/static"
	"github.com/jpillora/velox"
)

var (
	htmlTPL map[string]*template.Template
)

func (s *Server) webHandle(w http.ResponseWriter, r *http.Request) {

	switch r.URL.Path {

	case "/", "/index.html":
		common.HandleError(htmlTPL["index.html"].Execute(w, s.baseInfo))
		return
	case "/sync":
		//handle realtime client connections, setting content-encoding to avoid gzip buffer
		w.Header().Set("Content-Encoding", "identity")
		s.handleSync(w, r)
		return
	case "/js/velox.js":
		velox.JS.ServeHTTP(w, r)
		return
	}

	pathDir := strings.SplitN(r.URL.Path[1:], "/", 2)
	switch pathDir[0] {
	case "api":
		w.Header().Set("Access-Control-Allow-Headers", "authorization")
		s.restAPIhandle(w, r)
	default:
		//no match, assume static file
		s.statich.ServeHTTP(w, r)
	}

}

// handleSync keeps one browser view in sync. The view holds a keyboard
// binding for as long as it is connected.
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	conn, err := velox.Sync(&s.state, w, r)
	if err != nil {
		log.Printf("sync failed: %s", err)
		return
	}
	release := s.engine.Bind()
	defer release()

	select {
	case s.syncConnected <- struct{}{}:
	default:
	}
	s.state.Lock()
	s.state.Users[conn.ID()] = r.RemoteAddr
	s.state.Unlock()
	s.state.Push()
	conn.Wait()
	s.state.Lock()
	delete(s.state.Users, conn.ID())
	s.state.Unlock()
	s.state.Push()
}

// restAPIhandle serves /api/*
func (s *Server) restAPIhandle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case "POST":
		res, err := s.apiPOST(r)
		if err != nil {
			http.Error(w, fmt.Sprintf("%s:%s:%v", r.Method, r.URL, err.Error()), http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err = w.Write([]byte(res))
		common.HandleError(err)
	case "GET":
		if err := s.apiGET(w, r); err != nil {
			http.Error(w, fmt.Sprintf("%s:%s:%v", r.Method, r.URL, err.Error()), http.StatusBadRequest)
			return
		}
	default:
		http.Error(w, fmt.Sprintf("%s:%s:Method Not Allowed", r.Method, r.URL), http.StatusBadRequest)
	}
}

type BaseInfo struct {
	Uptime                int64
	Title                 string
	Version               string
	Runtime               string
	AllowRuntimeConfigure bool
}

func (BaseInfo) GetTemplate(n string) (template.HTML, error) {
	b, err := ctstatic.ReadAll(n)
	if err != nil {
		return "", err
	}
	return template.HTML(b), nil
}

func init() {
	htmlTPL = make(map[string]*template.Template)
	for _, fsn := range []string{"index.html"} {

		c, err := ctstatic.ReadAll(fsn)
		if err != nil {
			log.Fatalln(err)
		}

		htmlTPL[fsn] = template.Must(template.New(fsn).Delims("[[", "]]").Parse(string(c)))
	}
}
