package repository

import (
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/models"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestTransactionRepositoryCreate(t *testing.T) {
	repo := NewTransactionRepository()

	tx := repo.Create("1", "2", amount("25.50"), "lunch", models.TransactionTypeTransfer)

	if tx.ID != "1" {
		t.Errorf("expected id 1, got %s", tx.ID)
	}
	if tx.Status != models.TransactionStatusCompleted {
		t.Errorf("expected completed status, got %s", tx.Status)
	}
	if tx.Type != models.TransactionTypeTransfer {
		t.Errorf("expected transfer type, got %s", tx.Type)
	}
	if tx.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

func TestTransactionRepositoryIDsAreStrictlyIncreasing(t *testing.T) {
	repo := NewTransactionRepository()

	for i := 0; i < 5; i++ {
		tx := repo.Create("1", "2", amount("1.00"), "", models.TransactionTypeTransfer)
		want := strconv.Itoa(i + 1)
		if tx.ID != want {
			t.Errorf("expected id %s, got %s", want, tx.ID)
		}
	}
	if got := len(repo.FindAll()); got != 5 {
		t.Errorf("expected 5 entries, got %d", got)
	}
}

func TestTransactionRepositoryFindByUserID(t *testing.T) {
	repo := NewTransactionRepository()
	repo.Create("1", "2", amount("10.00"), "", models.TransactionTypeTransfer)
	repo.Create("2", "3", amount("20.00"), "", models.TransactionTypeTransfer)
	repo.Create("3", "1", amount("30.00"), "", models.TransactionTypeTransfer)

	tests := []struct {
		userID string
		want   int
	}{
		{userID: "1", want: 2}, // sender of one, beneficiary of another
		{userID: "2", want: 2},
		{userID: "3", want: 2},
		{userID: "99", want: 0},
	}

	for _, tt := range tests {
		if got := len(repo.FindByUserID(tt.userID)); got != tt.want {
			t.Errorf("user %s: expected %d transactions, got %d", tt.userID, tt.want, got)
		}
	}
}

func TestTransactionRepositoryFindLastTransactions(t *testing.T) {
	repo := NewTransactionRepository()
	for i := 0; i < 7; i++ {
		repo.Create("1", "2", amount("1.00"), "", models.TransactionTypeTransfer)
	}

	last := repo.FindLastTransactions("1", 3)
	if len(last) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(last))
	}
	// Newest first: ids 7, 6, 5.
	for i, want := range []string{"7", "6", "5"} {
		if last[i].ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, last[i].ID)
		}
	}

	// A limit larger than the ledger returns everything.
	if got := len(repo.FindLastTransactions("1", 50)); got != 7 {
		t.Errorf("expected 7 entries, got %d", got)
	}
}

func TestTransactionRepositoryFindByDateRange(t *testing.T) {
	repo := NewTransactionRepository()
	tx := repo.Create("1", "2", amount("10.00"), "", models.TransactionTypeTransfer)

	// Inclusive on both bounds.
	if got := len(repo.FindByDateRange("1", tx.CreatedAt, tx.CreatedAt)); got != 1 {
		t.Errorf("expected entry on exact bounds, got %d", got)
	}
	past := tx.CreatedAt.Add(-time.Hour)
	if got := len(repo.FindByDateRange("1", past, past.Add(time.Minute))); got != 0 {
		t.Errorf("expected no entries outside range, got %d", got)
	}
	if got := len(repo.FindByDateRange("2", past, tx.CreatedAt.Add(time.Hour))); got != 1 {
		t.Errorf("expected beneficiary-side match, got %d", got)
	}
}

func TestTransactionRepositoryReadsReturnCopies(t *testing.T) {
	repo := NewTransactionRepository()
	repo.Create("1", "2", amount("10.00"), "original", models.TransactionTypeTransfer)

	tx := repo.FindByID("1")
	tx.Description = "tampered"
	tx.Amount = amount("999.99")

	stored := repo.FindByID("1")
	if stored.Description != "original" {
		t.Errorf("mutation leaked into ledger: %s", stored.Description)
	}
	if !stored.Amount.Equal(amount("10.00")) {
		t.Errorf("amount mutation leaked into ledger: %s", stored.Amount)
	}
}
