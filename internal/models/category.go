package models

// CategoryType represents the income/expense classification of a category.
// The empty string is the neutral type carried by special categories
// (e.g. the implicit split parent) that are neither income nor expense.
type CategoryType string

const (
	CategoryTypeIncome  CategoryType = "income"
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeNeutral CategoryType = ""
)

// Category represents a transaction category. Categories form a tree
// via ParentID. A non-root category's Type always equals its parent's
// Type: the category service forces it on every write and cascades
// changes to the whole subtree. Only root categories carry a
// caller-assigned type.
type Category struct {
	Base
	Title    string       `gorm:"not null" json:"title"`
	Type     CategoryType `gorm:"not null;default:''" json:"type"`
	ParentID *uint        `json:"parent_id,omitempty"`

	// Relationships
	Parent   *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
}

// IsIncome reports whether the category is classified as income.
func (c *Category) IsIncome() bool { return c.Type == CategoryTypeIncome }

// IsExpense reports whether the category is classified as expense.
func (c *Category) IsExpense() bool { return c.Type == CategoryTypeExpense }

// MakeIncome classifies the category as income. Effective only for
// root categories; the service overrides it from the parent otherwise.
func (c *Category) MakeIncome() { c.Type = CategoryTypeIncome }

// MakeExpense classifies the category as expense.
func (c *Category) MakeExpense() { c.Type = CategoryTypeExpense }
