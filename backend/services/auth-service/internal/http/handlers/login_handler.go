package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"billiardsone/backend/services/auth-service/internal/models"
	"billiardsone/backend/services/auth-service/internal/service"
)

// Authenticator is implemented by service.AuthService.
type Authenticator interface {
	Login(ctx context.Context, mobileNo, pin string) (*models.LoginResult, error)
}

// NewLoginHandler handles POST /auth/login.
func NewLoginHandler(authService Authenticator, logger *zap.Logger) http.HandlerFunc {
	type request struct {
		MobileNo string `json:"mobile_no"`
		PIN      string `json:"pin"`
	}
	type response struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		Role        string `json:"role"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}

		req.MobileNo = strings.TrimSpace(req.MobileNo)
		req.PIN = strings.TrimSpace(req.PIN)
		if req.MobileNo == "" || req.PIN == "" {
			writeError(w, http.StatusBadRequest, "mobile_no and pin are required")
			return
		}

		result, err := authService.Login(r.Context(), req.MobileNo, req.PIN)
		if err != nil {
			if errors.Is(err, service.ErrInvalidCredentials) {
				w.Header().Set("WWW-Authenticate", "Bearer")
				writeError(w, http.StatusUnauthorized, "incorrect mobile number or PIN")
				return
			}
			logger.Error("login failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to login")
			return
		}

		writeJSON(w, http.StatusOK, response{
			AccessToken: result.AccessToken,
			TokenType:   "bearer",
			Role:        result.Role,
		})
	}
}
