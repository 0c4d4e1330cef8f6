package httpserver

import (
	"net/http"

	"billiardsone/backend/libs/auth"
	"billiardsone/backend/services/api-gateway/internal/http/middleware"
)

// RouterDeps collects handler dependencies.
type RouterDeps struct {
	Login      http.HandlerFunc
	Sessions   http.Handler
	Billing    http.Handler
	TablesFeed http.Handler
	Health     http.HandlerFunc
}

// NewRouter wires HTTP routes. authenticate guards REST routes and
// authenticateWS the websocket feed.
func NewRouter(deps RouterDeps, authenticate, authenticateWS func(http.Handler) http.Handler) http.Handler {
	mux := http.NewServeMux()

	mux.Handle("/health", method(http.MethodGet, deps.Health))
	mux.Handle("/api/auth/login", method(http.MethodPost, deps.Login))

	staff := func(handler http.Handler) http.Handler {
		return middleware.Chain(handler, authenticate, middleware.RequireRole(auth.RoleStaff))
	}

	mux.Handle("/api/sessions/", staff(deps.Sessions))
	mux.Handle("/api/tables/", staff(deps.Sessions))
	mux.Handle("/api/dashboard", method(http.MethodGet, staff(deps.Sessions)))
	mux.Handle("/api/payments", staff(deps.Billing))
	mux.Handle("/api/payments/", staff(deps.Billing))

	if deps.TablesFeed != nil {
		feed := middleware.Chain(deps.TablesFeed, authenticateWS, middleware.RequireRole(auth.RoleStaff))
		mux.Handle("/api/ws/tables", method(http.MethodGet, feed))
	}

	return mux
}

func method(expected string, handler http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
