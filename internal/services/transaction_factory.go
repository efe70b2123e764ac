package services

import (
	"github.com/radyatamaa/myfuel-transaction-processor/internal/models"
)

const MessageApproved = "Transaction approved and persisted."

// Rejection messages are part of the webhook contract; keep the wording stable.
var rejectionMessages = map[models.RejectionReason]string{
	models.ReasonCardNotFound:         "Card not found or inactive",
	models.ReasonOrganizationNotFound: "Organization not found",
	models.ReasonInsufficientBalance:  "Insufficient organization balance",
	models.ReasonDailyLimitExceeded:   "Daily card limit exceeded",
	models.ReasonMonthlyLimitExceeded: "Monthly card limit exceeded",
	models.ReasonDuplicateRequest:     "Idempotency conflict: requestId already used with different payload",
}

// RejectionMessage returns the fixed message for a reason code.
func RejectionMessage(reason models.RejectionReason) string {
	if msg, ok := rejectionMessages[reason]; ok {
		return msg
	}
	return string(reason)
}

func BuildApproved(requestID, transactionID string) *models.WebhookResponse {
	return &models.WebhookResponse{
		Success:       true,
		Status:        models.StatusApproved,
		Message:       MessageApproved,
		RequestID:     requestID,
		TransactionID: &transactionID,
	}
}

func BuildRejected(requestID string, reason models.RejectionReason) *models.WebhookResponse {
	return &models.WebhookResponse{
		Success:   false,
		Status:    models.StatusRejected,
		Message:   RejectionMessage(reason),
		Reason:    &reason,
		RequestID: requestID,
	}
}

func BuildRejectedWithTransactionID(requestID string, reason models.RejectionReason, transactionID string) *models.WebhookResponse {
	resp := BuildRejected(requestID, reason)
	resp.TransactionID = &transactionID
	return resp
}

// EventContext carries the identifiers resolved before the decision was made
type EventContext struct {
	OrganizationID string
	CardID         string
	Amount         string
}

func BuildApprovedEvent(payload models.ProcessTransactionPayload, resp *models.WebhookResponse, ec EventContext) models.TransactionApprovedEvent {
	return models.TransactionApprovedEvent{
		RequestID:      resp.RequestID,
		TransactionID:  resp.TxID(),
		OrganizationID: ec.OrganizationID,
		CardID:         ec.CardID,
		Amount:         ec.Amount,
		StationID:      payload.StationID,
		TransactionAt:  payload.TransactionAt,
	}
}

func BuildRejectedEvent(payload models.ProcessTransactionPayload, resp *models.WebhookResponse, ec EventContext) models.TransactionRejectedEvent {
	reason := resp.ReasonCode()
	if reason == "" {
		reason = models.ReasonDuplicateRequest
	}
	return models.TransactionRejectedEvent{
		RequestID:      resp.RequestID,
		TransactionID:  resp.TxID(),
		OrganizationID: ec.OrganizationID,
		CardID:         ec.CardID,
		Amount:         ec.Amount,
		StationID:      payload.StationID,
		TransactionAt:  payload.TransactionAt,
		Reason:         reason,
		Message:        resp.Message,
	}
}
