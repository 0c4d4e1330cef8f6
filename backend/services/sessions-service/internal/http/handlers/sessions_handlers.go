package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"billiardsone/backend/services/sessions-service/internal/models"
	"billiardsone/backend/services/sessions-service/internal/service"
)

// SessionsService is the lifecycle API the handlers drive.
type SessionsService interface {
	OpenSession(ctx context.Context, staff models.StaffIdentity, input service.OpenSessionInput) (*models.Session, error)
	RecordPlayerChange(ctx context.Context, staff models.StaffIdentity, input service.RecordPlayerChangeInput) error
	CloseSession(ctx context.Context, staff models.StaffIdentity, input service.CloseSessionInput) (*models.Bill, error)
	GetSession(ctx context.Context, staff models.StaffIdentity, sessionID uuid.UUID) (*models.SessionDetails, error)
	SetTableStatus(ctx context.Context, staff models.StaffIdentity, tableID uuid.UUID, status models.TableStatus) (*models.Table, error)
	Dashboard(ctx context.Context, staff models.StaffIdentity) (*models.Dashboard, error)
}

// SessionsHandler serves the session and table endpoints.
type SessionsHandler struct {
	svc    SessionsService
	logger *zap.Logger
}

// NewSessionsHandler builds handler set.
func NewSessionsHandler(svc SessionsService, logger *zap.Logger) *SessionsHandler {
	return &SessionsHandler{svc: svc, logger: logger}
}

type startSessionRequest struct {
	TableID            uuid.UUID `json:"table_id"`
	InitialPlayerCount int       `json:"initial_player_count"`
}

type playerChangeRequest struct {
	NewPlayerCount int `json:"new_player_count"`
}

type endSessionRequest struct {
	ReleaseTo models.TableStatus `json:"release_to"`
}

type tableStatusRequest struct {
	Status models.TableStatus `json:"status"`
}

// HandleStart handles POST /sessions/start.
func (h *SessionsHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	var req startSessionRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}
	if req.TableID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "table_id is required")
		return
	}

	session, err := h.svc.OpenSession(r.Context(), staff, service.OpenSessionInput{
		TableID:            req.TableID,
		InitialPlayerCount: req.InitialPlayerCount,
	})
	if err != nil {
		writeServiceError(w, h.logger, "open session", err)
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// HandlePlayers handles POST /sessions/{id}/players.
func (h *SessionsHandler) HandlePlayers(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req playerChangeRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	if err := h.svc.RecordPlayerChange(r.Context(), staff, service.RecordPlayerChangeInput{
		SessionID:      sessionID,
		NewPlayerCount: req.NewPlayerCount,
	}); err != nil {
		writeServiceError(w, h.logger, "record player change", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"session_id":      sessionID,
		"current_players": req.NewPlayerCount,
	})
}

// HandleEnd handles POST /sessions/{id}/end and returns the bill.
func (h *SessionsHandler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req endSessionRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	bill, err := h.svc.CloseSession(r.Context(), staff, service.CloseSessionInput{
		SessionID: sessionID,
		ReleaseTo: req.ReleaseTo,
	})
	if err != nil {
		writeServiceError(w, h.logger, "close session", err)
		return
	}
	writeJSON(w, http.StatusOK, bill)
}

// HandleGet handles GET /sessions/{id}.
func (h *SessionsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	sessionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	details, err := h.svc.GetSession(r.Context(), staff, sessionID)
	if err != nil {
		writeServiceError(w, h.logger, "get session", err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

// HandleTableStatus handles PUT /tables/{id}/status.
func (h *SessionsHandler) HandleTableStatus(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	tableID, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var req tableStatusRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	table, err := h.svc.SetTableStatus(r.Context(), staff, tableID, req.Status)
	if err != nil {
		writeServiceError(w, h.logger, "set table status", err)
		return
	}
	writeJSON(w, http.StatusOK, table)
}

// HandleDashboard handles GET /dashboard.
func (h *SessionsHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}

	dashboard, err := h.svc.Dashboard(r.Context(), staff)
	if err != nil {
		writeServiceError(w, h.logger, "dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
