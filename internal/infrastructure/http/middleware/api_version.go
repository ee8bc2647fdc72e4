package middleware

import (
	"net/http"
	"strings"
)

// APIVersion sets the X-API-Version response header. A client that pins a
// different major version through Accept-Version gets 400.
func APIVersion(version string) func(next http.Handler) http.Handler {
	major := majorOf(version)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-API-Version", version)
			if want := r.Header.Get("Accept-Version"); want != "" && majorOf(want) != major {
				writeErr(w, http.StatusBadRequest, "unsupported api version "+want)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func majorOf(v string) string {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	major, _, _ := strings.Cut(v, ".")
	return major
}
