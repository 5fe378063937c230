package middleware

import "net/http"

// MethodOverride rewrites POST requests carrying a ?_method=PUT|DELETE query
// parameter, letting HTML forms reach those routes. It must wrap the router
// itself: rewriting inside a gin middleware would run after route matching.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			switch r.URL.Query().Get("_method") {
			case http.MethodPut:
				r.Method = http.MethodPut
			case http.MethodDelete:
				r.Method = http.MethodDelete
			}
		}
		next.ServeHTTP(w, r)
	})
}
