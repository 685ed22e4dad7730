package httpmiddleware

import (
	"net/http"

	"github.com/boypt/simple-explorer/common"
)

// Liveness answers /healthz. When ready is set and reports an error the
// probe fails with 503.
func Liveness(h http.Handler, ready func() error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// liveness response
		if r.URL.Path == "/healthz" {
			if ready != nil {
				if err := ready(); err != nil {
					http.Error(w, err.Error(), http.StatusServiceUnavailable)
					return
				}
			}
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte("OK"))
			common.HandleError(err)
			return
		}
		h.ServeHTTP(w, r)
	})
}
