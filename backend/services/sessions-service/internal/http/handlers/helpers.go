package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billiardsone/backend/libs/apperr"
	"billiardsone/backend/libs/auth"
	"billiardsone/backend/services/sessions-service/internal/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps an application error onto its HTTP status. Details
// of configuration and unexpected errors stay in the log.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)
	switch {
	case errors.Is(err, apperr.ErrConfiguration):
		logger.Error(op+" failed: configuration", zap.Error(err))
	case status >= http.StatusInternalServerError:
		logger.Error(op+" failed", zap.Error(err))
	default:
		logger.Debug(op+" rejected", zap.Error(err))
	}
	writeError(w, status, apperr.PublicMessage(err))
}

// StaffFromRequest reads the identity forwarded by the gateway.
func StaffFromRequest(r *http.Request) (models.StaffIdentity, bool) {
	identity, err := auth.StaffFromHeaders(r.Header)
	if err != nil {
		return models.StaffIdentity{}, false
	}
	return models.StaffIdentity{StaffID: identity.StaffID, CafeID: identity.CafeID}, true
}

// CafeFromRequest resolves the cafe of the websocket subscriber.
func CafeFromRequest(r *http.Request) (string, bool) {
	staff, ok := StaffFromRequest(r)
	if !ok {
		return "", false
	}
	return staff.CafeID.String(), true
}

func requireStaff(w http.ResponseWriter, r *http.Request) (models.StaffIdentity, bool) {
	staff, ok := StaffFromRequest(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing staff identity headers")
		return models.StaffIdentity{}, false
	}
	return staff, true
}

func pathID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// decodeJSON decodes the body into dst. An empty body is accepted when
// allowEmpty is set.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, allowEmpty bool) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid json")
	return false
}
