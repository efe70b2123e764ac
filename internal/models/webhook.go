package models

// ProcessTransactionPayload is the fuel purchase notification handed to the processor.
// Amount is an exact decimal string; TransactionAt is an RFC 3339 timestamp.
type ProcessTransactionPayload struct {
	RequestID     string `json:"requestId"`
	CardNumber    string `json:"cardNumber"`
	Amount        string `json:"amount"`
	TransactionAt string `json:"transactionAt"`
	StationID     string `json:"stationId"`
}

type WebhookResponseStatus string

const (
	StatusApproved WebhookResponseStatus = "APPROVED"
	StatusRejected WebhookResponseStatus = "REJECTED"
)

// WebhookResponse is the immutable decision returned to the webhook caller
type WebhookResponse struct {
	Success       bool                  `json:"success" example:"true"`
	Status        WebhookResponseStatus `json:"status" example:"APPROVED"`
	Message       string                `json:"message" example:"Transaction approved and persisted."`
	Reason        *RejectionReason      `json:"reason" example:"INSUFFICIENT_BALANCE"`
	RequestID     string                `json:"requestId" example:"station-abc-20260211-0001"`
	TransactionID *string               `json:"transactionId" example:"3f1c7a52-4a4e-4d0c-9a7e-2f7d1c1b9e10"`
}

// ReasonCode returns the rejection reason or an empty string for approvals.
func (r *WebhookResponse) ReasonCode() RejectionReason {
	if r.Reason == nil {
		return ""
	}
	return *r.Reason
}

// TxID returns the transaction id or an empty string when none was persisted.
func (r *WebhookResponse) TxID() string {
	if r.TransactionID == nil {
		return ""
	}
	return *r.TransactionID
}
