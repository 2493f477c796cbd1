package models

import "time"

// Transaction types
const (
	TypeExpense = "expense"
	TypeIncome  = "income"
)

// Transaction represents a single ledger entry
type Transaction struct {
	ID        string     `json:"id"`
	Type      string     `json:"type"` // "expense" or "income"
	Amount    float64    `json:"amount"`
	Category  string     `json:"category,omitempty"`
	Date      string     `json:"date"`                // Format: YYYY-MM-DD
	Timestamp *time.Time `json:"timestamp,omitempty"` // Optional full date-time
}

// Budget is the spending limit for the current month. Amount <= 0 means
// no budget is set, in which case risk scoring is undefined.
type Budget struct {
	Amount    float64 `json:"amount"`
	UpdatedAt string  `json:"updated_at"`
}
