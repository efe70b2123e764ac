package models

// TransactionApprovedEvent is published after an approval commits
type TransactionApprovedEvent struct {
	RequestID      string `json:"requestId"`
	TransactionID  string `json:"transactionId"`
	OrganizationID string `json:"organizationId"`
	CardID         string `json:"cardId"`
	Amount         string `json:"amount"`
	StationID      string `json:"stationId"`
	TransactionAt  string `json:"transactionAt"`
}

// TransactionRejectedEvent is published for every new rejection.
// Identifiers are empty when the rejection happened before they were resolved.
type TransactionRejectedEvent struct {
	RequestID      string          `json:"requestId"`
	TransactionID  string          `json:"transactionId,omitempty"`
	OrganizationID string          `json:"organizationId,omitempty"`
	CardID         string          `json:"cardId,omitempty"`
	Amount         string          `json:"amount,omitempty"`
	StationID      string          `json:"stationId,omitempty"`
	TransactionAt  string          `json:"transactionAt,omitempty"`
	Reason         RejectionReason `json:"reason"`
	Message        string          `json:"message"`
}
