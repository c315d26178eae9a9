package service

import (
	"sync"

	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/models"
	"github.com/bancohq/banco-api/internal/repository"
)

// nonBeneficiaryLimit caps transfers to users outside the sender's
// beneficiary list. The comparison is strict: exactly 5000.00 is allowed.
var nonBeneficiaryLimit = decimal.RequireFromString("5000.00")

// TransferService executes peer-to-peer transfers: it validates the request,
// applies both balance updates and appends the ledger entry as one logical
// unit. The service mutex spans the whole validate-then-effect sequence so no
// concurrent transfer can observe a state where only one balance has moved.
type TransferService struct {
	mu     sync.Mutex
	users  *repository.UserRepository
	ledger *repository.TransactionRepository
}

func NewTransferService(users *repository.UserRepository, ledger *repository.TransactionRepository) *TransferService {
	return &TransferService{users: users, ledger: ledger}
}

// ExecuteTransfer moves amount from sender to beneficiary. Checks run in a
// fixed order and the first failure wins; each failure message is part of the
// API contract.
func (s *TransferService) ExecuteTransfer(senderID, beneficiaryID string, amount decimal.Decimal, description string) (*models.TransferResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if senderID == "" || beneficiaryID == "" || amount.IsZero() {
		return nil, apperr.Invalid("Sender, beneficiary and amount are required")
	}
	if amount.IsNegative() {
		return nil, apperr.Invalid("Amount must be greater than zero")
	}

	sender, err := s.users.FindByID(senderID)
	if err != nil {
		return nil, apperr.NotFound("Sender user not found")
	}
	beneficiary, err := s.users.FindByID(beneficiaryID)
	if err != nil {
		return nil, apperr.NotFound("Beneficiary user not found")
	}

	if senderID == beneficiaryID {
		return nil, apperr.Invalid("Cannot transfer to yourself")
	}

	if !s.users.IsBeneficiary(senderID, beneficiaryID) && amount.GreaterThan(nonBeneficiaryLimit) {
		return nil, apperr.Forbidden("Transfers to non-beneficiaries are limited to $%s", nonBeneficiaryLimit.StringFixed(2))
	}

	if sender.Balance.LessThan(amount) {
		return nil, apperr.Invalid("Insufficient balance")
	}

	newSenderBalance := sender.Balance.Sub(amount)
	newBeneficiaryBalance := beneficiary.Balance.Add(amount)

	s.users.Update(senderID, repository.UserUpdate{Balance: &newSenderBalance})
	s.users.Update(beneficiaryID, repository.UserUpdate{Balance: &newBeneficiaryBalance})
	tx := s.ledger.Create(senderID, beneficiaryID, amount, description, models.TransactionTypeTransfer)

	return &models.TransferResult{
		Transaction:                tx,
		PreviousSenderBalance:      sender.Balance,
		NewSenderBalance:           newSenderBalance,
		PreviousBeneficiaryBalance: beneficiary.Balance,
		NewBeneficiaryBalance:      newBeneficiaryBalance,
	}, nil
}
