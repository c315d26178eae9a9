package service

import (
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bancohq/banco-api/internal/apperr"
	"github.com/bancohq/banco-api/internal/repository"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// newTestBank seeds two users mirroring the demo data: "1" with 10000.00 and
// "2" as a beneficiary, "2" with 5000.00 and no beneficiaries.
func newTestBank(t *testing.T) (*repository.UserRepository, *repository.TransactionRepository, *TransferService) {
	t.Helper()
	users := repository.NewUserRepository()
	ledger := repository.NewTransactionRepository()

	users.Create("admin", "hash", "admin@example.com", amount("10000.00"))
	users.Create("user1", "hash", "user1@example.com", amount("5000.00"))
	beneficiaries := []string{"2"}
	users.Update("1", repository.UserUpdate{Beneficiaries: &beneficiaries})

	return users, ledger, NewTransferService(users, ledger)
}

func assertKind(t *testing.T, err error, want apperr.Kind, wantMsg string) {
	t.Helper()
	if err == nil {
		t.Fatal("expected an error")
	}
	kind, ok := apperr.KindOf(err)
	if !ok {
		t.Fatalf("expected an apperr, got %v", err)
	}
	if kind != want {
		t.Errorf("expected kind %d, got %d (%v)", want, kind, err)
	}
	if wantMsg != "" && err.Error() != wantMsg {
		t.Errorf("expected message %q, got %q", wantMsg, err.Error())
	}
}

func TestExecuteTransferValidationOrder(t *testing.T) {
	_, _, svc := newTestBank(t)

	tests := []struct {
		name          string
		senderID      string
		beneficiaryID string
		amount        decimal.Decimal
		wantKind      apperr.Kind
		wantMsg       string
	}{
		{
			name: "missing sender", senderID: "", beneficiaryID: "2", amount: amount("10.00"),
			wantKind: apperr.KindInvalidRequest, wantMsg: "Sender, beneficiary and amount are required",
		},
		{
			name: "missing beneficiary", senderID: "1", beneficiaryID: "", amount: amount("10.00"),
			wantKind: apperr.KindInvalidRequest, wantMsg: "Sender, beneficiary and amount are required",
		},
		{
			name: "zero amount", senderID: "1", beneficiaryID: "2", amount: decimal.Zero,
			wantKind: apperr.KindInvalidRequest, wantMsg: "Sender, beneficiary and amount are required",
		},
		{
			name: "negative amount", senderID: "1", beneficiaryID: "2", amount: amount("-5.00"),
			wantKind: apperr.KindInvalidRequest, wantMsg: "Amount must be greater than zero",
		},
		{
			name: "unknown sender", senderID: "99", beneficiaryID: "2", amount: amount("10.00"),
			wantKind: apperr.KindNotFound, wantMsg: "Sender user not found",
		},
		{
			name: "unknown beneficiary", senderID: "1", beneficiaryID: "99", amount: amount("10.00"),
			wantKind: apperr.KindNotFound, wantMsg: "Beneficiary user not found",
		},
		{
			name: "self transfer", senderID: "1", beneficiaryID: "1", amount: amount("10.00"),
			wantKind: apperr.KindInvalidRequest, wantMsg: "Cannot transfer to yourself",
		},
		{
			name: "over limit to non-beneficiary", senderID: "2", beneficiaryID: "1", amount: amount("5000.01"),
			wantKind: apperr.KindForbidden, wantMsg: "Transfers to non-beneficiaries are limited to $5000.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ExecuteTransfer(tt.senderID, tt.beneficiaryID, tt.amount, "")
			assertKind(t, err, tt.wantKind, tt.wantMsg)
		})
	}

	t.Run("insufficient balance", func(t *testing.T) {
		users, _, svc := newTestBank(t)
		low := amount("1.00")
		users.Update("2", repository.UserUpdate{Balance: &low})

		_, err := svc.ExecuteTransfer("2", "1", amount("2.00"), "")
		assertKind(t, err, apperr.KindInvalidRequest, "Insufficient balance")
	})
}

func TestExecuteTransferConservesMoney(t *testing.T) {
	users, _, svc := newTestBank(t)

	result, err := svc.ExecuteTransfer("1", "2", amount("1234.56"), "rent")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := result.PreviousSenderBalance.Add(result.PreviousBeneficiaryBalance)
	after := result.NewSenderBalance.Add(result.NewBeneficiaryBalance)
	if !before.Equal(after) {
		t.Errorf("money not conserved: before=%s after=%s", before, after)
	}

	sender, _ := users.FindByID("1")
	beneficiary, _ := users.FindByID("2")
	if !sender.Balance.Equal(amount("8765.44")) {
		t.Errorf("expected sender balance 8765.44, got %s", sender.Balance)
	}
	if !beneficiary.Balance.Equal(amount("6234.56")) {
		t.Errorf("expected beneficiary balance 6234.56, got %s", beneficiary.Balance)
	}
}

func TestExecuteTransferNeverLeavesNegativeBalance(t *testing.T) {
	users, _, svc := newTestBank(t)

	_, err := svc.ExecuteTransfer("2", "1", amount("5000.01"), "")
	if err == nil {
		t.Fatal("expected failure")
	}

	// Exact-balance transfer drains to zero but never below.
	if _, err := svc.ExecuteTransfer("2", "1", amount("5000.00"), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sender, _ := users.FindByID("2")
	if !sender.Balance.Equal(decimal.Zero) {
		t.Errorf("expected drained balance 0, got %s", sender.Balance)
	}
	if sender.Balance.IsNegative() {
		t.Errorf("balance went negative: %s", sender.Balance)
	}
}

func TestExecuteTransferBeneficiaryLimitBoundary(t *testing.T) {
	t.Run("exactly 5000.00 to non-beneficiary succeeds", func(t *testing.T) {
		_, _, svc := newTestBank(t)
		if _, err := svc.ExecuteTransfer("2", "1", amount("5000.00"), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("5000.01 to non-beneficiary is forbidden", func(t *testing.T) {
		_, _, svc := newTestBank(t)
		_, err := svc.ExecuteTransfer("2", "1", amount("5000.01"), "")
		assertKind(t, err, apperr.KindForbidden, "Transfers to non-beneficiaries are limited to $5000.00")
	})

	t.Run("5000.01 to beneficiary succeeds", func(t *testing.T) {
		_, _, svc := newTestBank(t)
		if _, err := svc.ExecuteTransfer("1", "2", amount("5000.01"), ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestExecuteTransferFailureLeavesStateUntouched(t *testing.T) {
	users, ledger, svc := newTestBank(t)

	_, err := svc.ExecuteTransfer("2", "1", amount("6000.00"), "")
	if err == nil {
		t.Fatal("expected failure")
	}

	sender, _ := users.FindByID("2")
	beneficiary, _ := users.FindByID("1")
	if !sender.Balance.Equal(amount("5000.00")) || !beneficiary.Balance.Equal(amount("10000.00")) {
		t.Errorf("failed transfer moved money: sender=%s beneficiary=%s", sender.Balance, beneficiary.Balance)
	}
	if got := len(ledger.FindAll()); got != 0 {
		t.Errorf("failed transfer reached the ledger: %d entries", got)
	}
}

func TestExecuteTransferLedgerIsAppendOnly(t *testing.T) {
	_, ledger, svc := newTestBank(t)

	for i := 0; i < 4; i++ {
		if _, err := svc.ExecuteTransfer("1", "2", amount("10.00"), ""); err != nil {
			t.Fatalf("transfer %d failed: %v", i, err)
		}
	}

	entries := ledger.FindAll()
	if len(entries) != 4 {
		t.Fatalf("expected 4 ledger entries, got %d", len(entries))
	}
	for i, tx := range entries {
		if want := strconv.Itoa(i + 1); tx.ID != want {
			t.Errorf("position %d: expected id %s, got %s", i, want, tx.ID)
		}
		if !tx.Amount.Equal(amount("10.00")) {
			t.Errorf("entry %s changed after creation: %s", tx.ID, tx.Amount)
		}
	}
}

// Mirrors the seed scenario: A (10000, lists B) and B (5000, lists nobody).
func TestTransferScenario(t *testing.T) {
	users, _, svc := newTestBank(t)

	if _, err := svc.ExecuteTransfer("1", "2", amount("6000.00"), ""); err != nil {
		t.Fatalf("A→B 6000 should succeed: %v", err)
	}

	_, err := svc.ExecuteTransfer("2", "1", amount("6000.00"), "")
	assertKind(t, err, apperr.KindForbidden, "Transfers to non-beneficiaries are limited to $5000.00")

	if _, err := svc.ExecuteTransfer("2", "1", amount("5000.00"), ""); err != nil {
		t.Fatalf("B→A 5000 should succeed: %v", err)
	}

	a, _ := users.FindByID("1")
	b, _ := users.FindByID("2")
	if !a.Balance.Equal(amount("9000.00")) {
		t.Errorf("expected A balance 9000.00, got %s", a.Balance)
	}
	if !b.Balance.Equal(amount("6000.00")) {
		t.Errorf("expected B balance 6000.00, got %s", b.Balance)
	}
	if !a.Balance.Add(b.Balance).Equal(amount("15000.00")) {
		t.Errorf("total money changed: %s", a.Balance.Add(b.Balance))
	}
}

func TestExecuteTransferConcurrentConservation(t *testing.T) {
	users, ledger, svc := newTestBank(t)

	const workers = 8
	const transfersPerWorker = 25

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			sender, beneficiary := "1", "2"
			if w%2 == 1 {
				sender, beneficiary = "2", "1"
			}
			for i := 0; i < transfersPerWorker; i++ {
				_, err := svc.ExecuteTransfer(sender, beneficiary, amount("1.00"), "")
				if err != nil {
					var appErr *apperr.Error
					// Insufficient balance is the only acceptable failure here.
					if !errors.As(err, &appErr) || appErr.Message != "Insufficient balance" {
						t.Errorf("unexpected error: %v", err)
					}
				}
			}
		}(w)
	}
	wg.Wait()

	a, _ := users.FindByID("1")
	b, _ := users.FindByID("2")
	if !a.Balance.Add(b.Balance).Equal(amount("15000.00")) {
		t.Errorf("total money changed under concurrency: %s", a.Balance.Add(b.Balance))
	}
	if a.Balance.IsNegative() || b.Balance.IsNegative() {
		t.Errorf("negative balance under concurrency: a=%s b=%s", a.Balance, b.Balance)
	}

	// Ledger ids stay dense and strictly increasing.
	entries := ledger.FindAll()
	for i, tx := range entries {
		if want := strconv.Itoa(i + 1); tx.ID != want {
			t.Fatalf("position %d: expected id %s, got %s", i, want, tx.ID)
		}
	}
}
