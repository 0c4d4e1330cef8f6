package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"billiardsone/backend/libs/apperr"
	"billiardsone/backend/libs/auth"
	"billiardsone/backend/services/billing-service/internal/models"
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

func writeServiceError(w http.ResponseWriter, logger *zap.Logger, op string, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		logger.Error(op+" failed", zap.Error(err))
	}
	writeError(w, status, apperr.PublicMessage(err))
}

func requireStaff(w http.ResponseWriter, r *http.Request) (models.StaffIdentity, bool) {
	identity, err := auth.StaffFromHeaders(r.Header)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "missing staff identity headers")
		return models.StaffIdentity{}, false
	}
	return models.StaffIdentity{StaffID: identity.StaffID, CafeID: identity.CafeID}, true
}
