package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"billiardsone/backend/services/billing-service/internal/models"
	"billiardsone/backend/services/billing-service/internal/service"
)

// PaymentsService is the recorder API the handlers drive.
type PaymentsService interface {
	RecordPayment(ctx context.Context, staff models.StaffIdentity, input service.RecordPaymentInput) (*models.Payment, error)
	PaymentsToday(ctx context.Context, staff models.StaffIdentity) (*models.PaymentsToday, error)
}

// PaymentsHandler serves the payment endpoints.
type PaymentsHandler struct {
	svc    PaymentsService
	logger *zap.Logger
}

// NewPaymentsHandler builds handler set.
func NewPaymentsHandler(svc PaymentsService, logger *zap.Logger) *PaymentsHandler {
	return &PaymentsHandler{svc: svc, logger: logger}
}

type recordPaymentRequest struct {
	SessionID     uuid.UUID            `json:"game_session_id"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	PaymentMethod models.PaymentMethod `json:"payment_method"`
}

// HandleCreate handles POST /payments.
func (h *PaymentsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}
	var req recordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.SessionID == uuid.Nil {
		writeError(w, http.StatusBadRequest, "game_session_id is required")
		return
	}

	payment, err := h.svc.RecordPayment(r.Context(), staff, service.RecordPaymentInput{
		SessionID: req.SessionID,
		Amount:    req.TotalAmount,
		Method:    req.PaymentMethod,
	})
	if err != nil {
		writeServiceError(w, h.logger, "record payment", err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}

// HandleToday handles GET /payments/today.
func (h *PaymentsHandler) HandleToday(w http.ResponseWriter, r *http.Request) {
	staff, ok := requireStaff(w, r)
	if !ok {
		return
	}

	today, err := h.svc.PaymentsToday(r.Context(), staff)
	if err != nil {
		writeServiceError(w, h.logger, "payments today", err)
		return
	}
	writeJSON(w, http.StatusOK, today)
}
