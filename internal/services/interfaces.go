package services

import (
	"gorm.io/gorm"

	"moneta/internal/models"
)

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(name, currency string, openingBalance int64) (*models.Account, error)
	GetAccountByID(accountID uint) (*models.Account, error)
	GetAllAccounts() ([]models.Account, error)
	// ApplyBalanceDelta adjusts an account's running balance inside the
	// caller's store transaction.
	ApplyBalanceDelta(tx *gorm.DB, accountID uint, delta int64) error
}

// CategoryServicer defines the contract for the category hierarchy.
type CategoryServicer interface {
	// InsertOrUpdate persists the category (zero ID inserts, non-zero
	// updates). A category with a parent always takes the parent's
	// type, silently overriding whatever the caller set; a type change
	// cascades to every descendant in the same store transaction.
	InsertOrUpdate(category *models.Category) (uint, error)
	InsertChildCategory(parentID uint, category *models.Category) (uint, error)
	GetCategoryWithParent(categoryID uint) (*models.Category, error)
}

// PayeeServicer defines the contract for the payee registry.
type PayeeServicer interface {
	// InsertPayee is idempotent by title: an existing title returns
	// the existing payee unchanged, a new one is created with sort
	// order max+1 (starting at 1).
	InsertPayee(title string) (*models.Payee, error)
	SaveOrUpdate(payee *models.Payee) error
	GetPayeeByID(payeeID uint) (*models.Payee, error)
	GetPayeeByTitle(title string) (*models.Payee, error)
	GetAllPayeeList() ([]models.Payee, error)
}

// SplitInput describes one split child of a transaction: a category
// and a share of the parent's amount. The ledger does not verify that
// shares sum to the parent's amount; that is the caller's contract.
type SplitInput struct {
	CategoryID *uint
	Amount     int64
	Note       string
}

// LedgerServicer defines the contract for the transaction ledger.
// Every mutating operation is atomic: either all of its effects are
// visible or none are.
type LedgerServicer interface {
	// InsertOrUpdate persists the transaction (zero ID inserts,
	// non-zero updates). A nil splits slice leaves existing children
	// untouched apart from status mirroring; a non-nil slice replaces
	// them. Children always carry the parent's current status.
	InsertOrUpdate(transaction *models.Transaction, splits []SplitInput) (uint, error)
	GetTransactionByID(transactionID uint) (*models.Transaction, error)
	GetSplitsForTransaction(parentID uint) ([]models.Transaction, error)
	ClearSelectedTransactions(ids []uint) error
	ReconcileSelectedTransactions(ids []uint) error
	DeleteSelectedTransactions(ids []uint) error
	GetTransactionsForAccount(accountID uint) ([]models.TransactionInfo, error)
}
