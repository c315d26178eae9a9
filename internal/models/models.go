package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeTransfer    = "transfer"
	TransactionStatusCompleted = "completed"
)

const (
	OperationSent     = "sent"
	OperationReceived = "received"
)

// User is the write model for a bank customer. PasswordHash is never
// serialised; API responses use UserView instead.
type User struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	PasswordHash  string          `json:"-"`
	Email         string          `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	Beneficiaries []string        `json:"beneficiaries"`
	CreatedAt     time.Time       `json:"createdTimestamp"`
}

// Transaction is a single immutable ledger entry. Entries are append-only:
// once created, no field ever changes.
type Transaction struct {
	ID            string          `json:"id"`
	SenderID      string          `json:"sender"`
	BeneficiaryID string          `json:"beneficiary"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	Type          string          `json:"type"`
	CreatedAt     time.Time       `json:"dateTime"`
	Status        string          `json:"status"`
}
