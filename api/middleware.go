package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// serviceKeyAuth guards service-to-service endpoints with a static shared
// key, accepted either as a Bearer token or in the X-Service-Key header.
// An empty configured key disables the check.
func serviceKeyAuth(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			presented := r.Header.Get("X-Service-Key")
			if presented == "" {
				if auth := r.Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
					presented = strings.TrimPrefix(auth, "Bearer ")
				}
			}

			if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
				writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid service key")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
