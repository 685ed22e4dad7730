package httpmiddleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLiveness(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})
	tests := []struct {
		name  string
		path  string
		ready func() error
		want  int
	}{
		{"healthz", "/healthz", nil, http.StatusOK},
		{"ready", "/healthz", func() error { return nil }, http.StatusOK},
		{"not ready", "/healthz", func() error { return errors.New("no tree") }, http.StatusServiceUnavailable},
		{"passthrough", "/other", nil, http.StatusTeapot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Liveness(next, tt.ready).ServeHTTP(rec, httptest.NewRequest("GET", tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
