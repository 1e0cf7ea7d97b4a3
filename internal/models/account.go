package models

// Account represents a financial account holding transactions.
// Balance is kept in minor currency units and is maintained by the
// ledger service: inserts, amount edits and deletes of top-level
// transactions adjust it inside the same store transaction.
type Account struct {
	Base
	Name     string `gorm:"not null" json:"name"`
	Currency string `gorm:"not null;default:'USD'" json:"currency"`
	Balance  int64  `gorm:"not null;default:0" json:"balance"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"transactions,omitempty"`
}
