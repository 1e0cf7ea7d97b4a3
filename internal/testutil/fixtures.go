package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"moneta/internal/database"
	"moneta/internal/models"
	"moneta/internal/services"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAccount creates an account with zero balance.
func CreateTestAccount(t *testing.T, store *database.Manager) *models.Account {
	t.Helper()
	return CreateTestAccountWithBalance(t, store, 0)
}

// CreateTestAccountWithBalance creates an account with the given
// opening balance (in minor units).
func CreateTestAccountWithBalance(t *testing.T, store *database.Manager, balance int64) *models.Account {
	t.Helper()

	svc := services.NewAccountService(store)
	account, err := svc.CreateAccount(fmt.Sprintf("Account %d", nextID()), "USD", balance)
	if err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateDefaultCategoryHierarchy builds the category tree used by the
// ledger tests and returns the categories keyed by title:
//
//	A (expense)
//	├── A1
//	│   └── AA1
//	└── A2
//	B (income)
func CreateDefaultCategoryHierarchy(t *testing.T, store *database.Manager) map[string]*models.Category {
	t.Helper()

	svc := services.NewCategoryService(store)
	out := make(map[string]*models.Category)

	a := &models.Category{Title: "A"}
	a.MakeExpense()
	if _, err := svc.InsertOrUpdate(a); err != nil {
		t.Fatalf("failed to create category A: %v", err)
	}
	out["A"] = a

	a1 := &models.Category{Title: "A1"}
	if _, err := svc.InsertChildCategory(a.ID, a1); err != nil {
		t.Fatalf("failed to create category A1: %v", err)
	}
	out["A1"] = a1

	aa1 := &models.Category{Title: "AA1"}
	if _, err := svc.InsertChildCategory(a1.ID, aa1); err != nil {
		t.Fatalf("failed to create category AA1: %v", err)
	}
	out["AA1"] = aa1

	a2 := &models.Category{Title: "A2"}
	if _, err := svc.InsertChildCategory(a.ID, a2); err != nil {
		t.Fatalf("failed to create category A2: %v", err)
	}
	out["A2"] = a2

	b := &models.Category{Title: "B"}
	b.MakeIncome()
	if _, err := svc.InsertOrUpdate(b); err != nil {
		t.Fatalf("failed to create category B: %v", err)
	}
	out["B"] = b

	return out
}

// TransactionBuilder assembles a transaction and its splits for tests.
// Split amounts are the caller's responsibility to keep consistent
// with the parent amount, same as for real callers.
type TransactionBuilder struct {
	t      *testing.T
	ledger services.LedgerServicer
	tx     models.Transaction
	splits []services.SplitInput
}

// NewTransaction starts a builder against the given ledger.
func NewTransaction(t *testing.T, ledger services.LedgerServicer) *TransactionBuilder {
	t.Helper()
	return &TransactionBuilder{
		t:      t,
		ledger: ledger,
		tx:     models.Transaction{Date: time.Now()},
	}
}

// Account sets the owning account.
func (b *TransactionBuilder) Account(a *models.Account) *TransactionBuilder {
	b.tx.AccountID = a.ID
	return b
}

// Amount sets the signed amount in minor units.
func (b *TransactionBuilder) Amount(amount int64) *TransactionBuilder {
	b.tx.Amount = amount
	return b
}

// Category sets the transaction's category.
func (b *TransactionBuilder) Category(c *models.Category) *TransactionBuilder {
	b.tx.CategoryID = &c.ID
	return b
}

// Payee sets the transaction's payee.
func (b *TransactionBuilder) Payee(p *models.Payee) *TransactionBuilder {
	b.tx.PayeeID = &p.ID
	return b
}

// Status sets the initial status.
func (b *TransactionBuilder) Status(status models.TransactionStatus) *TransactionBuilder {
	b.tx.Status = status
	return b
}

// WithSplit adds a split child with the given category and amount.
func (b *TransactionBuilder) WithSplit(c *models.Category, amount int64) *TransactionBuilder {
	b.splits = append(b.splits, services.SplitInput{CategoryID: &c.ID, Amount: amount})
	return b
}

// Create persists the transaction (and splits) and returns it.
func (b *TransactionBuilder) Create() *models.Transaction {
	b.t.Helper()

	if _, err := b.ledger.InsertOrUpdate(&b.tx, b.splits); err != nil {
		b.t.Fatalf("failed to create test transaction: %v", err)
	}
	return &b.tx
}
