package server

import (
	"net/http"
	"strings"
)

// PermissionsHeader carries the caller's granted actions, comma separated.
// It is populated by the authentication layer in front of this service.
const PermissionsHeader = "X-Permissions"

// Granted returns the set of actions listed in r's permissions header.
func Granted(r *http.Request) map[string]struct{} {
	out := make(map[string]struct{})
	for _, value := range r.Header.Values(PermissionsHeader) {
		for _, action := range strings.Split(value, ",") {
			if action = strings.TrimSpace(action); action != "" {
				out[action] = struct{}{}
			}
		}
	}
	return out
}

// RequirePermission rejects requests that were not granted action with 403.
// An empty action lets every request through.
func (s *Server) RequirePermission(action string) func(http.Handler) http.Handler {
	action = strings.TrimSpace(action)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if action != "" {
				if _, ok := Granted(r)[action]; !ok {
					s.writeError(w, http.StatusForbidden, "FORBIDDEN", "missing permission "+action)
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
