package handlers

import (
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"
)

// NewTablesFeedProxy relays the live table feed websocket to sessions-service.
// The query string is dropped so the access token never reaches the upstream.
func NewTablesFeedProxy(target *url.URL, logger *zap.Logger) http.Handler {
	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
			pr.Out.URL.Path = "/ws/tables"
			pr.Out.URL.RawPath = ""
			pr.Out.URL.RawQuery = ""
			pr.Out.Header.Del("Authorization")
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			logger.Error("tables feed proxy failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "sessions service unavailable")
		},
	}
}
