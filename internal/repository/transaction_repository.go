package repository

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/models"
)

// TransactionRepository is the append-only in-memory ledger. Entries are
// never updated or deleted; reads return copies so callers cannot mutate
// stored state.
type TransactionRepository struct {
	mu           sync.RWMutex
	transactions []*models.Transaction
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{}
}

// Create appends a new ledger entry under the next sequential id, stamped
// with the current time and a completed status.
func (r *TransactionRepository) Create(senderID, beneficiaryID string, amount decimal.Decimal, description, txType string) *models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx := &models.Transaction{
		ID:            strconv.Itoa(r.nextIDLocked()),
		SenderID:      senderID,
		BeneficiaryID: beneficiaryID,
		Amount:        amount,
		Description:   description,
		Type:          txType,
		CreatedAt:     time.Now().UTC(),
		Status:        models.TransactionStatusCompleted,
	}
	r.transactions = append(r.transactions, tx)
	return copyTransaction(tx)
}

// FindByID returns a copy of the entry, or nil when absent.
func (r *TransactionRepository) FindByID(id string) *models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tx := range r.transactions {
		if tx.ID == id {
			return copyTransaction(tx)
		}
	}
	return nil
}

// FindAll returns every ledger entry in insertion order.
func (r *TransactionRepository) FindAll() []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Transaction, 0, len(r.transactions))
	for _, tx := range r.transactions {
		out = append(out, *tx)
	}
	return out
}

// FindByUserID returns every entry where the user is sender or beneficiary.
func (r *TransactionRepository) FindByUserID(userID string) []models.Transaction {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.Transaction
	for _, tx := range r.transactions {
		if tx.SenderID == userID || tx.BeneficiaryID == userID {
			out = append(out, *tx)
		}
	}
	return out
}

// FindLastTransactions returns the user's entries sorted most recent first,
// truncated to limit. Entries created within the same clock tick are ordered
// by descending id so the result is deterministic.
func (r *TransactionRepository) FindLastTransactions(userID string, limit int) []models.Transaction {
	txs := r.FindByUserID(userID)

	sort.SliceStable(txs, func(i, j int) bool {
		if !txs[i].CreatedAt.Equal(txs[j].CreatedAt) {
			return txs[i].CreatedAt.After(txs[j].CreatedAt)
		}
		return numericID(txs[i].ID) > numericID(txs[j].ID)
	})
	if limit > 0 && len(txs) > limit {
		txs = txs[:limit]
	}
	return txs
}

// FindByDateRange returns the user's entries created within [start, end],
// inclusive on both bounds.
func (r *TransactionRepository) FindByDateRange(userID string, start, end time.Time) []models.Transaction {
	var out []models.Transaction
	for _, tx := range r.FindByUserID(userID) {
		if !tx.CreatedAt.Before(start) && !tx.CreatedAt.After(end) {
			out = append(out, tx)
		}
	}
	return out
}

func (r *TransactionRepository) nextIDLocked() int {
	max := 0
	for _, tx := range r.transactions {
		if n, err := strconv.Atoi(tx.ID); err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

func numericID(id string) int {
	n, _ := strconv.Atoi(id)
	return n
}

func copyTransaction(t *models.Transaction) *models.Transaction {
	clone := *t
	return &clone
}
