package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AuditFields holds the timestamps maintained by the database.
type AuditFields struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Account is the row shape of the accounts table.
type Account struct {
	ID         int64           `db:"id"`
	CustomerID int64           `db:"customer_id"`
	Type       string          `db:"type"`
	Currency   string          `db:"currency"`
	Nickname   *string         `db:"nickname"` // Nullable
	Status     string          `db:"status"`
	Balance    decimal.Decimal `db:"balance"`
	AuditFields
}
