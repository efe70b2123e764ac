package models

import "time"

// Organization owns cards and the prepaid balance they spend from
type Organization struct {
	ID             string    `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	CurrentBalance string    `json:"current_balance" db:"current_balance"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
