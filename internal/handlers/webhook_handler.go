package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/radyatamaa/myfuel-transaction-processor/internal/middleware"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/repository"
	"github.com/radyatamaa/myfuel-transaction-processor/internal/services"
	"github.com/shopspring/decimal"
)

// TransactionProcessor decides a single fuel purchase notification
type TransactionProcessor interface {
	Process(ctx context.Context, payload models.ProcessTransactionPayload) (*models.WebhookResponse, error)
}

type WebhookHandler struct {
	processor TransactionProcessor
	validator *services.ValidationHelper
}

func NewWebhookHandler(processor TransactionProcessor) *WebhookHandler {
	return &WebhookHandler{
		processor: processor,
		validator: services.NewValidationHelper(),
	}
}

// TransactionWebhookRequest is the body a fuel station sends for every purchase
type TransactionWebhookRequest struct {
	RequestID     string          `json:"requestId" validate:"required,max=100" example:"station-abc-20260211-0001"`
	CardNumber    string          `json:"cardNumber" validate:"required,max=32" example:"6037-0001"`
	Amount        decimal.Decimal `json:"amount" validate:"money" swaggertype:"string" example:"100.00"`
	TransactionAt string          `json:"transactionAt" validate:"required,datetime=2006-01-02T15:04:05Z07:00" example:"2026-02-11T08:30:00Z"`
	StationID     string          `json:"stationId" validate:"required,max=64" example:"ST-01"`
}

func (r TransactionWebhookRequest) payload() models.ProcessTransactionPayload {
	return models.ProcessTransactionPayload{
		RequestID:     r.RequestID,
		CardNumber:    r.CardNumber,
		Amount:        r.Amount.StringFixed(2),
		TransactionAt: r.TransactionAt,
		StationID:     r.StationID,
	}
}

// HandleTransaction processes a fuel purchase webhook
// @Summary Process fuel transaction
// @Description Approve or reject a fuel card purchase. Repeating a requestId with the same payload returns the stored outcome.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body TransactionWebhookRequest true "Fuel transaction"
// @Success 200 {object} models.WebhookResponse
// @Failure 400 {object} services.ErrorResponse
// @Failure 401 {object} services.ErrorResponse
// @Failure 500 {object} services.ErrorResponse
// @Failure 503 {object} services.ErrorResponse
// @Router /webhooks/transactions [post]
func (h *WebhookHandler) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionWebhookRequest

	r.Body = http.MaxBytesReader(w, r.Body, 1_048_576)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		services.SendErrorResponse(w, "Invalid request body", http.StatusBadRequest, nil)
		return
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		services.SendErrorResponse(w, "Request body must only contain a single JSON object", http.StatusBadRequest, nil)
		return
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		services.SendErrorResponse(w, "Validation failed", http.StatusBadRequest, err)
		return
	}

	resp, err := h.processor.Process(r.Context(), req.payload())
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidPayload):
			services.SendErrorResponse(w, err.Error(), http.StatusBadRequest, nil)
		case errors.Is(err, repository.ErrLockTimeout):
			log.Printf("[WEBHOOK] requestId=%s request id=%s busy: %v", req.RequestID, middleware.GetRequestID(r.Context()), err)
			services.SendErrorResponse(w, "Transaction is busy, retry later", http.StatusServiceUnavailable, nil)
		default:
			log.Printf("[WEBHOOK] requestId=%s request id=%s failed: %v", req.RequestID, middleware.GetRequestID(r.Context()), err)
			services.SendErrorResponse(w, "Internal server error", http.StatusInternalServerError, nil)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// WebhookStatus reports that the webhook module is ready
// @Summary Webhook module status
// @Tags Webhooks
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{success=bool,module=string,ready=bool}
// @Failure 401 {object} services.ErrorResponse
// @Router /webhooks/status [get]
func (h *WebhookHandler) WebhookStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"success": true,
		"module":  "transaction",
		"ready":   true,
	})
}
