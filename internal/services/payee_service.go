package services

import (
	"errors"

	"gorm.io/gorm"

	"moneta/internal/database"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
)

// payeeService deduplicates payees by title and maintains their
// user-reorderable sort ranks.
type payeeService struct {
	store *database.Manager
}

// NewPayeeService creates a new PayeeServicer.
func NewPayeeService(store *database.Manager) PayeeServicer {
	return &payeeService{store: store}
}

// InsertPayee looks up the payee by exact (case-sensitive) title and
// returns it if it exists; the existing row is never touched. A new
// title creates a payee with sort order = current max + 1, so the
// first payee gets order 1. Re-inserting an existing title is a
// normal successful lookup, not a conflict.
func (s *payeeService) InsertPayee(title string) (*models.Payee, error) {
	if title == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "payee title is required")
	}

	var payee *models.Payee
	err := s.store.Write(func(tx *gorm.DB) error {
		var existing models.Payee
		err := tx.Where("title = ?", title).First(&existing).Error
		if err == nil {
			payee = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}

		var maxOrder int64
		if err := tx.Model(&models.Payee{}).
			Select("COALESCE(MAX(sort_order), 0)").
			Scan(&maxOrder).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}

		created := &models.Payee{Title: title, SortOrder: maxOrder + 1}
		if err := tx.Create(created).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		payee = created
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payee, nil
}

// SaveOrUpdate persists the payee's fields verbatim, including an
// explicitly set SortOrder. No re-normalization or gap-filling is
// performed; collisions and gaps in sort order are permitted.
func (s *payeeService) SaveOrUpdate(payee *models.Payee) error {
	if payee.Title == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "payee title is required")
	}
	return s.store.Write(func(tx *gorm.DB) error {
		if err := tx.Save(payee).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		return nil
	})
}

// GetPayeeByID retrieves a payee by ID.
func (s *payeeService) GetPayeeByID(payeeID uint) (*models.Payee, error) {
	var payee models.Payee
	if err := s.store.DB().First(&payee, payeeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPayeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &payee, nil
}

// GetPayeeByTitle retrieves a payee by exact (case-sensitive) title.
func (s *payeeService) GetPayeeByTitle(title string) (*models.Payee, error) {
	var payee models.Payee
	if err := s.store.DB().Where("title = ?", title).First(&payee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPayeeNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &payee, nil
}

// GetAllPayeeList retrieves all payees ordered by sort order
// ascending, id as tiebreak.
func (s *payeeService) GetAllPayeeList() ([]models.Payee, error) {
	var payees []models.Payee
	if err := s.store.DB().Order("sort_order ASC, id ASC").Find(&payees).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return payees, nil
}
