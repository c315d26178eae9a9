package service

import (
	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/models"
	"github.com/bancohq/banco-api/internal/repository"
)

const (
	defaultStatementLimit = 10
	// statsStatementLimit is the window used to derive aggregate stats.
	statsStatementLimit = 1000

	// unknownUserLabel stands in when a counterpart account no longer exists.
	unknownUserLabel = "User not found"
)

// StatementService builds user-facing views by joining ledger entries with
// account identity data. It never mutates either store.
type StatementService struct {
	users  *repository.UserRepository
	ledger *repository.TransactionRepository
}

func NewStatementService(users *repository.UserRepository, ledger *repository.TransactionRepository) *StatementService {
	return &StatementService{users: users, ledger: ledger}
}

// GetStatement returns the user's most recent entries (newest first), each
// enriched with counterpart names and tagged sent/received relative to the
// user. A non-positive limit falls back to the default of 10.
func (s *StatementService) GetStatement(userID string, limit int) (*models.Statement, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultStatementLimit
	}

	entries := s.ledger.FindLastTransactions(userID, limit)
	views := make([]models.TransactionView, 0, len(entries))
	for _, tx := range entries {
		views = append(views, s.enrich(tx, userID))
	}

	return &models.Statement{
		User: models.StatementUser{
			ID:             user.ID,
			Username:       user.Username,
			CurrentBalance: user.Balance,
		},
		Transactions: views,
	}, nil
}

// GetTransactionByID returns a single enriched entry. Only the sender or the
// beneficiary of the transaction may view it.
func (s *StatementService) GetTransactionByID(transactionID, userID string) (*models.TransactionView, error) {
	tx := s.ledger.FindByID(transactionID)
	if tx == nil {
		return nil, apperr.NotFound("Transaction not found")
	}
	if tx.SenderID != userID && tx.BeneficiaryID != userID {
		return nil, apperr.Forbidden("Access denied to this transaction")
	}
	view := s.enrich(*tx, userID)
	return &view, nil
}

// GetAllTransactions returns every ledger entry with both names resolved.
// Callers are responsible for gating access; this is the administrative view.
func (s *StatementService) GetAllTransactions() []models.TransactionView {
	entries := s.ledger.FindAll()
	views := make([]models.TransactionView, 0, len(entries))
	for _, tx := range entries {
		views = append(views, s.enrich(tx, ""))
	}
	return views
}

// GetStats aggregates the user's recent activity: totals sent and received
// plus the current balance.
func (s *StatementService) GetStats(userID string) (*models.StatementUser, *models.Stats, error) {
	statement, err := s.GetStatement(userID, statsStatementLimit)
	if err != nil {
		return nil, nil, err
	}

	totalSent := decimal.Zero
	totalReceived := decimal.Zero
	for _, tx := range statement.Transactions {
		switch tx.OperationType {
		case models.OperationSent:
			totalSent = totalSent.Add(tx.Amount)
		case models.OperationReceived:
			totalReceived = totalReceived.Add(tx.Amount)
		}
	}

	return &statement.User, &models.Stats{
		TotalTransactions: len(statement.Transactions),
		TotalSent:         totalSent,
		TotalReceived:     totalReceived,
		CurrentBalance:    statement.User.CurrentBalance,
	}, nil
}

// enrich resolves counterpart usernames and, when perspective is non-empty,
// tags the entry sent or received relative to that user.
func (s *StatementService) enrich(tx models.Transaction, perspective string) models.TransactionView {
	view := models.TransactionView{
		Transaction:     tx,
		SenderName:      s.username(tx.SenderID),
		BeneficiaryName: s.username(tx.BeneficiaryID),
	}
	if perspective != "" {
		if tx.SenderID == perspective {
			view.OperationType = models.OperationSent
		} else {
			view.OperationType = models.OperationReceived
		}
	}
	return view
}

func (s *StatementService) username(userID string) string {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return unknownUserLabel
	}
	return user.Username
}
