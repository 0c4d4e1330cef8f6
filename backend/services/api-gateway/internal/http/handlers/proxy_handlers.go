package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"billiardsone/backend/libs/auth"
)

const maxBodyBytes = 1 << 20

// Forwarder is implemented by the upstream service clients.
type Forwarder interface {
	Forward(ctx context.Context, method, path string, body []byte, headers map[string]string) (int, []byte, error)
}

// LoginClient is implemented by clients.AuthClient.
type LoginClient interface {
	Login(ctx context.Context, body []byte) (int, []byte, error)
}

// ProxyHandler relays authenticated /api requests to one upstream service
// with the "/api" prefix removed.
type ProxyHandler struct {
	service string
	client  Forwarder
	logger  *zap.Logger
}

// NewProxyHandler returns handler.
func NewProxyHandler(service string, client Forwarder, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{service: service, client: client, logger: logger}
}

func (h *ProxyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	if r.URL.RawQuery != "" {
		path += "?" + r.URL.RawQuery
	}

	status, respBody, err := h.client.Forward(r.Context(), r.Method, path, body, identityHeaders(r.Header))
	if err != nil {
		h.logger.Error("proxy failed", zap.String("service", h.service), zap.String("path", path), zap.Error(err))
		writeError(w, http.StatusBadGateway, h.service+" service unavailable")
		return
	}
	writeRaw(w, status, respBody)
}

// NewLoginHandler handles POST /api/auth/login without authentication.
func NewLoginHandler(client LoginClient, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		status, respBody, err := client.Login(r.Context(), body)
		if err != nil {
			logger.Error("login proxy failed", zap.Error(err))
			writeError(w, http.StatusBadGateway, "auth service unavailable")
			return
		}
		writeRaw(w, status, respBody)
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "invalid body")
		return nil, false
	}
	return body, true
}

func identityHeaders(h http.Header) map[string]string {
	out := make(map[string]string, 3)
	for _, key := range []string{auth.HeaderStaffID, auth.HeaderCafeID, auth.HeaderRole} {
		if v := h.Get(key); v != "" {
			out[key] = v
		}
	}
	return out
}
