package services

import (
	"errors"

	"gorm.io/gorm"

	"moneta/internal/database"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/validator"
)

// accountService handles account-related business logic.
type accountService struct {
	store *database.Manager
}

// NewAccountService creates a new AccountServicer.
func NewAccountService(store *database.Manager) AccountServicer {
	return &accountService{store: store}
}

// CreateAccount creates a new account with an opening balance in
// minor currency units.
func (s *accountService) CreateAccount(name, currency string, openingBalance int64) (*models.Account, error) {
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "account name is required")
	}

	if currency == "" {
		currency = "USD" // Default currency
	}
	if err := validator.Get().Var(currency, "iso4217"); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "currency must be an ISO 4217 code")
	}

	account := &models.Account{
		Name:     name,
		Currency: currency,
		Balance:  openingBalance,
		IsActive: true,
	}

	err := s.store.Write(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccountByID retrieves an account by ID.
func (s *accountService) GetAccountByID(accountID uint) (*models.Account, error) {
	var account models.Account
	if err := s.store.DB().First(&account, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &account, nil
}

// GetAllAccounts retrieves all accounts ordered by name.
func (s *accountService) GetAllAccounts() ([]models.Account, error) {
	var accounts []models.Account
	if err := s.store.DB().Order("name ASC, id ASC").Find(&accounts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return accounts, nil
}

// ApplyBalanceDelta adjusts the account's running balance by delta
// within the caller's transaction. The ledger calls this for every
// top-level transaction insert, amount edit and delete; split
// children never reach here.
func (s *accountService) ApplyBalanceDelta(tx *gorm.DB, accountID uint, delta int64) error {
	if delta == 0 {
		return nil
	}
	res := tx.Model(&models.Account{}).
		Where("id = ?", accountID).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternal, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}
