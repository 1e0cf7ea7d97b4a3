package models

// Payee represents a counterparty transactions are paid to or
// received from. Titles are unique: inserting an existing title
// returns the existing row. SortOrder controls display order; it is
// assigned as max+1 on creation and may be overridden verbatim by the
// caller afterwards (gaps and collisions are permitted, id breaks ties).
type Payee struct {
	Base
	Title     string `gorm:"not null;uniqueIndex" json:"title"`
	SortOrder int64  `gorm:"not null;default:0" json:"sort_order"`
}
