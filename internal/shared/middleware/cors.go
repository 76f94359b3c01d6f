package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CORS applies Cross-Origin Resource Sharing headers and preflight handling.
// With no allowed hosts configured every origin is accepted; otherwise the
// Origin header must match the allowlist (port ignored) and credentialed
// requests are permitted for it.
func CORS(allowedHosts []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if len(allowedHosts) == 0 {
				w.Header().Set("Access-Control-Allow-Origin", "*")
			} else if origin != "" {
				if !isOriginAllowed(origin, allowedHosts) {
					http.Error(w, "Origin not allowed", http.StatusForbidden)
					return
				}
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
				w.Header().Set("Vary", "Origin")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
			w.Header().Set("Access-Control-Max-Age", "3600")

			// Handle preflight requests
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// isOriginAllowed checks an Origin header value against the host allowlist,
// ignoring scheme and port.
func isOriginAllowed(origin string, allowedHosts []string) bool {
	parsed, err := url.Parse(origin)
	if err != nil || parsed.Hostname() == "" {
		return false
	}

	originHost := strings.ToLower(parsed.Hostname())
	originHostPort := strings.ToLower(parsed.Host)

	for _, allowed := range allowedHosts {
		allowed = strings.ToLower(strings.TrimSpace(allowed))
		allowedHost := allowed
		if idx := strings.Index(allowed, ":"); idx != -1 {
			allowedHost = allowed[:idx]
		}

		if originHostPort == allowed || originHost == allowedHost {
			return true
		}
	}

	return false
}
