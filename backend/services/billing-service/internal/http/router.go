package httpserver

import "net/http"

// Routes groups HTTP handlers.
type Routes struct {
	PaymentCreate http.HandlerFunc
	PaymentsToday http.HandlerFunc
	Health        http.HandlerFunc
}

// NewRouter registers service endpoints.
func NewRouter(routes Routes) http.Handler {
	mux := http.NewServeMux()
	if routes.PaymentCreate != nil {
		mux.Handle("/payments", method(http.MethodPost, routes.PaymentCreate))
	}
	if routes.PaymentsToday != nil {
		mux.Handle("/payments/today", method(http.MethodGet, routes.PaymentsToday))
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
