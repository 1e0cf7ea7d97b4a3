package services

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/database"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/validator"
)

// ledgerService is the transaction ledger: it creates and updates
// transactions (plain or split), keeps split-row status synchronized
// with the parent, maintains account running balances, and performs
// bulk status transitions and deletions. Every mutating operation is
// one store transaction.
type ledgerService struct {
	store    *database.Manager
	accounts AccountServicer
}

// NewLedgerService creates a new LedgerServicer.
func NewLedgerService(store *database.Manager, accounts AccountServicer) LedgerServicer {
	return &ledgerService{store: store, accounts: accounts}
}

// InsertOrUpdate inserts a new transaction (zero ID) or updates an
// existing one. Supplied splits are persisted as child rows carrying
// the parent's account, date and status. On the update path every
// existing child's status is overwritten to match the parent; a
// non-nil splits slice additionally replaces the child set. A row
// whose ParentID is set is itself a split child: its status is never
// taken from the caller, it mirrors the parent's.
func (s *ledgerService) InsertOrUpdate(t *models.Transaction, splits []SplitInput) (uint, error) {
	if t.AccountID == 0 {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "account ID is required")
	}
	if t.Status == "" {
		t.Status = models.StatusNew
	}
	if err := validator.Get().Var(string(t.Status), "transaction_status"); err != nil {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "unknown transaction status")
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}

	err := s.store.Write(func(tx *gorm.DB) error {
		if err := checkReferences(tx, t); err != nil {
			return err
		}

		var prev *models.Transaction
		if t.ID != 0 {
			var stored models.Transaction
			if err := tx.First(&stored, t.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrTransactionNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternal, err)
			}
			prev = &stored
		}

		// A split child never owns its status.
		if t.ParentID != nil {
			var parent models.Transaction
			if err := tx.First(&parent, *t.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.WithMessage(apperrors.ErrTransactionNotFound, "parent transaction not found")
				}
				return apperrors.Wrap(apperrors.ErrInternal, err)
			}
			t.Status = parent.Status
		}

		if err := tx.Omit(clause.Associations).Save(t).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}

		// Account balances track top-level rows only; the parent
		// carries the full amount of a split transaction.
		if prev != nil {
			if prev.ParentID == nil {
				if err := s.accounts.ApplyBalanceDelta(tx, prev.AccountID, -prev.Amount); err != nil {
					return err
				}
			}
		}
		if t.ParentID == nil {
			if err := s.accounts.ApplyBalanceDelta(tx, t.AccountID, t.Amount); err != nil {
				return err
			}
		}

		// Status propagation: existing children follow the parent.
		if prev != nil && t.ParentID == nil {
			if err := tx.Model(&models.Transaction{}).
				Where("parent_id = ?", t.ID).
				Update("status", t.Status).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternal, err)
			}
		}

		if splits != nil {
			if err := s.replaceSplits(tx, t, splits); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return t.ID, nil
}

// replaceSplits drops the transaction's existing children and
// recreates them from the supplied set, each carrying the parent's
// account, date and current status.
func (s *ledgerService) replaceSplits(tx *gorm.DB, parent *models.Transaction, splits []SplitInput) error {
	if err := tx.Where("parent_id = ?", parent.ID).
		Delete(&models.Transaction{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	for _, split := range splits {
		if split.CategoryID != nil {
			if err := checkCategory(tx, *split.CategoryID); err != nil {
				return err
			}
		}
		parentID := parent.ID
		child := models.Transaction{
			AccountID:  parent.AccountID,
			CategoryID: split.CategoryID,
			ParentID:   &parentID,
			Amount:     split.Amount,
			Status:     parent.Status,
			Note:       split.Note,
			Date:       parent.Date,
		}
		if err := tx.Omit(clause.Associations).Create(&child).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
	}
	return nil
}

// GetTransactionByID retrieves a transaction by ID.
func (s *ledgerService) GetTransactionByID(transactionID uint) (*models.Transaction, error) {
	var t models.Transaction
	if err := s.store.DB().First(&t, transactionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &t, nil
}

// GetSplitsForTransaction retrieves all split children of parentID in
// insertion order.
func (s *ledgerService) GetSplitsForTransaction(parentID uint) ([]models.Transaction, error) {
	var splits []models.Transaction
	if err := s.store.DB().
		Where("parent_id = ?", parentID).
		Order("id ASC").
		Find(&splits).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return splits, nil
}

// ClearSelectedTransactions sets status CLEARED on every identified
// transaction and its split children, atomically across the whole set.
func (s *ledgerService) ClearSelectedTransactions(ids []uint) error {
	return s.setStatusForSelected(ids, models.StatusCleared)
}

// ReconcileSelectedTransactions sets status RECONCILED on every
// identified transaction and its split children.
func (s *ledgerService) ReconcileSelectedTransactions(ids []uint) error {
	return s.setStatusForSelected(ids, models.StatusReconciled)
}

func (s *ledgerService) setStatusForSelected(ids []uint, status models.TransactionStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return s.store.Write(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Transaction{}).
			Where("id IN ?", ids).
			Update("status", status).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		// Splits mirror their parent.
		if err := tx.Model(&models.Transaction{}).
			Where("parent_id IN ?", ids).
			Update("status", status).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		return nil
	})
}

// DeleteSelectedTransactions removes every identified transaction and
// its split children, adjusting account balances for the removed
// top-level rows. All-or-nothing across the whole id set.
func (s *ledgerService) DeleteSelectedTransactions(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return s.store.Write(func(tx *gorm.DB) error {
		var tops []models.Transaction
		if err := tx.Where("id IN ? AND parent_id IS NULL", ids).
			Find(&tops).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		for _, t := range tops {
			if err := s.accounts.ApplyBalanceDelta(tx, t.AccountID, -t.Amount); err != nil {
				return err
			}
		}
		if err := tx.Where("parent_id IN ?", ids).
			Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		if err := tx.Where("id IN ?", ids).
			Delete(&models.Transaction{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		return nil
	})
}

// GetTransactionsForAccount returns the account's top-level
// transactions as display-ready projections, newest first. Split
// children are listed via GetSplitsForTransaction, not here. Each
// call re-reads current state; nothing is cached.
func (s *ledgerService) GetTransactionsForAccount(accountID uint) ([]models.TransactionInfo, error) {
	var infos []models.TransactionInfo
	err := s.store.DB().
		Table("transactions AS t").
		Select(`t.id, t.account_id, a.name AS account_name,
			COALESCE(c.title, '') AS category_title,
			COALESCE(p.title, '') AS payee_title,
			t.amount, t.status, t.note, t.date`).
		Joins("JOIN accounts a ON a.id = t.account_id").
		Joins("LEFT JOIN categories c ON c.id = t.category_id").
		Joins("LEFT JOIN payees p ON p.id = t.payee_id").
		Where("t.account_id = ? AND t.parent_id IS NULL", accountID).
		Order("t.date DESC, t.id DESC").
		Scan(&infos).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return infos, nil
}

// checkReferences verifies that every entity the transaction points
// at exists, so a write can never create a dangling reference.
func checkReferences(tx *gorm.DB, t *models.Transaction) error {
	var account models.Account
	if err := tx.First(&account, t.AccountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrAccountNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	if t.CategoryID != nil {
		if err := checkCategory(tx, *t.CategoryID); err != nil {
			return err
		}
	}
	if t.PayeeID != nil {
		var payee models.Payee
		if err := tx.First(&payee, *t.PayeeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPayeeNotFound
			}
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
	}
	return nil
}

func checkCategory(tx *gorm.DB, categoryID uint) error {
	var category models.Category
	if err := tx.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return nil
}
