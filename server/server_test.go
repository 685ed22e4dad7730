package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boypt/simple-explorer/engine"
	ctstatic "github.com/boypt/simple-explorer/static"
	"github.com/boypt/simple-explorer/tree"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s := &Server{}
	s.baseInfo = &BaseInfo{Title: "Test Explorer", Version: "test"}
	s.state.Users = map[string]string{}
	s.syncConnected = make(chan struct{})
	s.statich = ctstatic.FileSystemHandler()
	s.engine = engine.New()
	s.engine.SetNotify(s.pushExplorer)
	s.state.Config = s.engine.Config()
	if err := s.engine.Load(tree.NewDir("root",
		tree.NewFile("a"),
		tree.NewDir("b", tree.NewFile("c")),
	)); err != nil {
		t.Fatal(err)
	}
	return s
}

func do(s *Server, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	s.handler().ServeHTTP(rec, req)
	return rec
}

func TestAPI_Status(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name   string
		method string
		path   string
		body   string
		code   int
		resp   string
	}{
		{"select", "POST", "/api/select", "root/a", http.StatusOK, "OK"},
		{"select unknown", "POST", "/api/select", "root/zz", http.StatusBadRequest, ""},
		{"toggle dir", "POST", "/api/toggle", "root/b", http.StatusOK, "OK"},
		{"toggle file", "POST", "/api/toggle", "root/a", http.StatusBadRequest, ""},
		{"key unbound", "POST", "/api/key", "ArrowDown", http.StatusOK, "IGNORED"},
		{"drag start", "POST", "/api/drag", "start:root/a", http.StatusOK, "OK"},
		{"drag over", "POST", "/api/drag", "over:root/b", http.StatusOK, "OK"},
		{"drag leave", "POST", "/api/drag", "leave:root/b", http.StatusOK, "OK"},
		{"drag leave no path", "POST", "/api/drag", "leave", http.StatusBadRequest, ""},
		{"drag end", "POST", "/api/drag", "end", http.StatusOK, "OK"},
		{"drag bad", "POST", "/api/drag", "fling:root/a", http.StatusBadRequest, ""},
		{"drag no path", "POST", "/api/drag", "start:", http.StatusBadRequest, ""},
		{"unknown action", "POST", "/api/magnet", "x", http.StatusBadRequest, ""},
		{"bad tree", "POST", "/api/tree", `{"name":`, http.StatusBadRequest, ""},
		{"bad configure", "POST", "/api/configure", `{`, http.StatusBadRequest, ""},
		{"get unknown", "GET", "/api/nothing", "", http.StatusBadRequest, ""},
		{"method", "PUT", "/api/tree", "", http.StatusBadRequest, ""},
		{"healthz", "GET", "/healthz", "", http.StatusOK, "OK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(s, tt.method, tt.path, tt.body)
			if rec.Code != tt.code {
				t.Errorf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			if tt.resp != "" && rec.Body.String() != tt.resp {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.resp)
			}
		})
	}
}

func TestAPI_KeyWhileBound(t *testing.T) {
	s := newTestServer(t)
	defer s.engine.Bind()()

	if rec := do(s, "POST", "/api/key", "ArrowDown"); rec.Body.String() != "OK" {
		t.Errorf("key = %q, want OK", rec.Body.String())
	}
	if rec := do(s, "POST", "/api/key", "F5"); rec.Body.String() != "IGNORED" {
		t.Errorf("unmapped key = %q, want IGNORED", rec.Body.String())
	}
	if got := s.engine.View().Selected; got != "root/a" {
		t.Errorf("selected = %q", got)
	}
}

func TestAPI_DragMoves(t *testing.T) {
	s := newTestServer(t)
	// the browser reports leaving root/a after entering root/b
	for _, cmd := range []string{"start:root/a", "over:root/a", "over:root/b", "leave:root/a", "end"} {
		if rec := do(s, "POST", "/api/drag", cmd); rec.Code != http.StatusOK {
			t.Fatalf("%s: %d", cmd, rec.Code)
		}
	}
	if tree.Find(s.engine.Snapshot(), "root/b/a") == nil {
		t.Error("root/a not moved under root/b")
	}
}

func TestAPI_TreeRoundTrip(t *testing.T) {
	s := newTestServer(t)
	body := `{"name":"proj","kind":"directory","children":[{"name":"go.mod","kind":"file"}]}`
	if rec := do(s, "POST", "/api/tree", body); rec.Code != http.StatusOK {
		t.Fatalf("POST /api/tree = %d %s", rec.Code, rec.Body.String())
	}
	rec := do(s, "GET", "/api/tree", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/tree = %d", rec.Code)
	}
	var got tree.Node
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Name != "proj" || len(got.Children) != 1 || got.Children[0].Name != "go.mod" {
		t.Errorf("GET /api/tree = %+v", got)
	}

	rec = do(s, "GET", "/api/view", "")
	var view engine.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatal(err)
	}
	if view.Selected != "proj" || view.Root == nil || view.Root.ID != "proj" {
		t.Errorf("GET /api/view = %+v", view)
	}
}

func TestAPI_TreeOversized(t *testing.T) {
	s := newTestServer(t)
	c := s.engine.Config()
	c.MaxTreeSize = "64B"
	if err := s.engine.Configure(c); err != nil {
		t.Fatal(err)
	}
	before := s.engine.Snapshot()
	body := `{"name":"root","children":[{"name":"` + strings.Repeat("x", 4096) + `"}]}`
	rec := do(s, "POST", "/api/tree", body)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if s.engine.Snapshot() != before {
		t.Error("oversized upload replaced the tree")
	}
	if rec := do(s, "POST", "/api/tree", `{"name":"small","children":[]}`); rec.Code != http.StatusOK {
		t.Errorf("small upload = %d %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_TreeYAML(t *testing.T) {
	s := newTestServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/tree", strings.NewReader("name: y\nchildren:\n  - name: z\n"))
	req.Header.Set("Content-Type", "application/yaml")
	s.handler().ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d %s", rec.Code, rec.Body.String())
	}
	if tree.Find(s.engine.Snapshot(), "y/z") == nil {
		t.Error("yaml payload not loaded")
	}
}

func TestAPI_Configure(t *testing.T) {
	s := newTestServer(t)
	if rec := do(s, "POST", "/api/configure", `{"Title":"Renamed"}`); rec.Code != http.StatusOK {
		t.Fatalf("configure = %d %s", rec.Code, rec.Body.String())
	}
	if s.state.Config.Title != "Renamed" || s.engine.Config().Title != "Renamed" {
		t.Errorf("title not applied: %+v", s.state.Config)
	}
	if rec := do(s, "POST", "/api/configure", `{"AllowRuntimeConfigure":false}`); rec.Code != http.StatusBadRequest {
		t.Errorf("forbidden change = %d", rec.Code)
	}
	if rec := do(s, "POST", "/api/configure", `{"MaxTreeSize":"huge"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("bad size = %d", rec.Code)
	}
}

func TestIndex(t *testing.T) {
	s := newTestServer(t)
	rec := do(s, "GET", "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<title>Test Explorer</title>") {
		t.Error("title missing from index")
	}
}

func TestAuth(t *testing.T) {
	s := newTestServer(t)
	s.Auth = "user:pass"
	h := s.handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/api/view", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no credentials = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/api/view", nil)
	req.SetBasicAuth("user", "pass")
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("with credentials = %d", rec.Code)
	}

	// liveness stays reachable without credentials
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}
}

func TestServer_initSample(t *testing.T) {
	s := &Server{ConfigPath: filepath.Join(t.TempDir(), "tree-explorer.yaml")}
	if err := s.init("test"); err != nil {
		t.Fatal(err)
	}
	root := s.engine.Snapshot()
	if root == nil || root.Name != "project-root" {
		t.Fatalf("Snapshot() = %+v, want the sample tree", root)
	}
	if got := s.state.Explorer.Selected; got != "project-root" {
		t.Errorf("pushed selection = %q", got)
	}
}
