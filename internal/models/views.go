package models

import "github.com/shopspring/decimal"

// UserView is the outward projection of a user. It never exposes the
// password hash.
type UserView struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Email         string          `json:"email"`
	Balance       decimal.Decimal `json:"balance"`
	Beneficiaries []string        `json:"beneficiaries"`
}

// TransactionView is a ledger entry enriched with counterpart display names.
// OperationType is "sent" or "received" relative to the requesting user and
// is empty in views that have no requesting-user perspective.
type TransactionView struct {
	Transaction
	SenderName      string `json:"senderName"`
	BeneficiaryName string `json:"beneficiaryName"`
	OperationType   string `json:"operationType,omitempty"`
}

// StatementUser is the identity header of a statement.
type StatementUser struct {
	ID             string          `json:"id"`
	Username       string          `json:"username"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
}

// Statement is the per-user, time-ordered view of the ledger.
type Statement struct {
	User         StatementUser     `json:"user"`
	Transactions []TransactionView `json:"transactions"`
}

// TransferResult carries the created ledger entry plus both parties' balance
// movement so a client can reconcile without a second balance fetch.
type TransferResult struct {
	Transaction                *Transaction    `json:"transaction"`
	PreviousSenderBalance      decimal.Decimal `json:"previousSenderBalance"`
	NewSenderBalance           decimal.Decimal `json:"newSenderBalance"`
	PreviousBeneficiaryBalance decimal.Decimal `json:"previousBeneficiaryBalance"`
	NewBeneficiaryBalance      decimal.Decimal `json:"newBeneficiaryBalance"`
}

// Stats aggregates a user's ledger activity.
type Stats struct {
	TotalTransactions int             `json:"totalTransactions"`
	TotalSent         decimal.Decimal `json:"totalSent"`
	TotalReceived     decimal.Decimal `json:"totalReceived"`
	CurrentBalance    decimal.Decimal `json:"currentBalance"`
}
