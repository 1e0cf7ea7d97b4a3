package models

import "time"

// TransactionStatus represents the reconciliation stage of a transaction.
// The two-letter labels follow bank-reconciliation convention.
type TransactionStatus string

const (
	StatusNew        TransactionStatus = "NR" // new / unreconciled
	StatusCleared    TransactionStatus = "CL"
	StatusReconciled TransactionStatus = "RC"
)

// Transaction represents a single ledger entry in minor currency
// units. A row with a non-nil ParentID is a split child of another
// transaction: its status is never set independently, it mirrors the
// parent's status at all times, and it does not contribute to the
// account balance (the parent carries the full amount). Whether split
// amounts sum to the parent's amount is the caller's contract; the
// ledger does not verify it.
type Transaction struct {
	Base
	AccountID  uint              `gorm:"not null;index" json:"account_id"`
	CategoryID *uint             `json:"category_id,omitempty"`
	PayeeID    *uint             `json:"payee_id,omitempty"`
	ParentID   *uint             `gorm:"index" json:"parent_id,omitempty"`
	Amount     int64             `gorm:"not null" json:"amount"`
	Status     TransactionStatus `gorm:"not null;default:'NR'" json:"status"`
	Note       string            `json:"note"`
	Date       time.Time         `gorm:"not null" json:"date"`

	// Relationships
	Account  Account       `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Category *Category     `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Payee    *Payee        `gorm:"foreignKey:PayeeID" json:"payee,omitempty"`
	Parent   *Transaction  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Splits   []Transaction `gorm:"foreignKey:ParentID" json:"splits,omitempty"`
}

// IsSplitChild reports whether the transaction is a split child row.
func (t *Transaction) IsSplitChild() bool { return t.ParentID != nil }

// TransactionInfo is a denormalized read-only projection of a
// top-level transaction with account, category and payee titles
// resolved. It is computed at read time and never persisted.
type TransactionInfo struct {
	ID            uint              `json:"id"`
	AccountID     uint              `json:"account_id"`
	AccountName   string            `json:"account_name"`
	CategoryTitle string            `json:"category_title"`
	PayeeTitle    string            `json:"payee_title"`
	Amount        int64             `json:"amount"`
	Status        TransactionStatus `json:"status"`
	Note          string            `json:"note"`
	Date          time.Time         `json:"date"`
}
