package auth

import (
	"fmt"
	"net/http"
)

// EditorOnly rejects requests from authenticated users that do not carry the
// editor capability. It must run after the auth middleware has loaded the
// user into the request context.
func EditorOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			user, err := UserFromContext(r)
			if err != nil {
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}

			if !user.IsEditor {
				http.Error(w, fmt.Sprintf("user %v is not an editor", user.Id), http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(hfn)
	}
}
