package models

import (
	"time"
)

// Card represents a fuel card issued to an organization
type Card struct {
	ID             string    `json:"id" db:"id"`
	OrganizationID string    `json:"organization_id" db:"organization_id"`
	CardNumber     string    `json:"card_number" db:"card_number"`
	DailyLimit     string    `json:"daily_limit" db:"daily_limit"`
	MonthlyLimit   string    `json:"monthly_limit" db:"monthly_limit"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// CardDailyUsage is the approved spend of a card on one UTC calendar day
type CardDailyUsage struct {
	ID         string    `json:"id" db:"id"`
	CardID     string    `json:"card_id" db:"card_id"`
	UsageDate  time.Time `json:"usage_date" db:"usage_date"`
	UsedAmount string    `json:"used_amount" db:"used_amount"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CardMonthlyUsage is the approved spend of a card in one UTC calendar month
type CardMonthlyUsage struct {
	ID         string    `json:"id" db:"id"`
	CardID     string    `json:"card_id" db:"card_id"`
	UsageMonth string    `json:"usage_month" db:"usage_month"` // YYYY-MM
	UsedAmount string    `json:"used_amount" db:"used_amount"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CardUsageSnapshot holds the day and month totals read under the card lock
type CardUsageSnapshot struct {
	DailyUsedAmount   string `json:"daily_used_amount"`
	MonthlyUsedAmount string `json:"monthly_used_amount"`
}

// UsageDate truncates t to its UTC calendar day.
func UsageDate(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// UsageMonth formats the UTC calendar month of t as YYYY-MM.
func UsageMonth(t time.Time) string {
	return t.UTC().Format("2006-01")
}
