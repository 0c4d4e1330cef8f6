package httpserver

import "net/http"

// Routes groups handlers.
type Routes struct {
	SessionStart   http.HandlerFunc
	SessionPlayers http.HandlerFunc
	SessionEnd     http.HandlerFunc
	SessionGet     http.HandlerFunc
	TableStatus    http.HandlerFunc
	Dashboard      http.HandlerFunc
	TablesFeed     http.HandlerFunc
	Health         http.HandlerFunc
}

// NewRouter registers endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.SessionStart != nil {
		mux.Handle("/sessions/start", method(http.MethodPost, routes.SessionStart))
	}
	if routes.SessionPlayers != nil {
		mux.Handle("/sessions/{id}/players", method(http.MethodPost, routes.SessionPlayers))
	}
	if routes.SessionEnd != nil {
		mux.Handle("/sessions/{id}/end", method(http.MethodPost, routes.SessionEnd))
	}
	if routes.SessionGet != nil {
		mux.Handle("/sessions/{id}", method(http.MethodGet, routes.SessionGet))
	}
	if routes.TableStatus != nil {
		mux.Handle("/tables/{id}/status", method(http.MethodPut, routes.TableStatus))
	}
	if routes.Dashboard != nil {
		mux.Handle("/dashboard", method(http.MethodGet, routes.Dashboard))
	}
	if routes.TablesFeed != nil {
		mux.Handle("/ws/tables", method(http.MethodGet, routes.TablesFeed))
	}
	if routes.Health != nil {
		mux.Handle("/health", method(http.MethodGet, routes.Health))
	}
	return mux
}

func method(expected string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != expected {
			w.Header().Set("Allow", expected)
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		handler(w, r)
	}
}
