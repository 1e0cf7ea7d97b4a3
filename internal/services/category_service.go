package services

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"moneta/internal/database"
	apperrors "moneta/internal/errors"
	"moneta/internal/models"
	"moneta/internal/validator"
)

// categoryService maintains the category tree and its type-inheritance
// invariant: a category with a parent always carries the parent's
// income/expense type, down through the whole subtree.
type categoryService struct {
	store *database.Manager
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(store *database.Manager) CategoryServicer {
	return &categoryService{store: store}
}

// InsertOrUpdate inserts a new category (zero ID) or updates an
// existing one. If the category has a parent, its type is forced to
// the parent's current type regardless of what the caller set; this
// is a silent correction, not an error. Root categories keep the
// caller-supplied type. When the stored type changes, every
// descendant is re-typed inside the same store transaction.
//
// Reparenting a category under one of its own descendants would
// create a cycle; the service does not detect this, it is a logic
// error the caller must avoid.
func (s *categoryService) InsertOrUpdate(category *models.Category) (uint, error) {
	if category.Title == "" {
		return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category title is required")
	}
	if category.ParentID == nil && category.Type != models.CategoryTypeNeutral {
		if err := validator.Get().Var(string(category.Type), "category_type"); err != nil {
			return 0, apperrors.WithMessage(apperrors.ErrInvalidInput, "category type must be income or expense")
		}
	}

	err := s.store.Write(func(tx *gorm.DB) error {
		if category.ParentID != nil {
			var parent models.Category
			if err := tx.First(&parent, *category.ParentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.WithMessage(apperrors.ErrCategoryNotFound, "parent category not found")
				}
				return apperrors.Wrap(apperrors.ErrInternal, err)
			}
			// Type inheritance: the parent's type wins.
			category.Type = parent.Type
		}

		updating := category.ID != 0
		var prevType models.CategoryType
		if updating {
			var prev models.Category
			if err := tx.First(&prev, category.ID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrCategoryNotFound
				}
				return apperrors.Wrap(apperrors.ErrInternal, err)
			}
			prevType = prev.Type
		}

		// Persist by id and foreign key only; loaded Parent/Children
		// pointers are not part of the write (reparenting goes through
		// ParentID, and a stale Parent object must not win).
		if err := tx.Omit(clause.Associations).Save(category).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}

		if updating && category.Type != prevType {
			if err := retypeDescendants(tx, category.ID, category.Type); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return category.ID, nil
}

// InsertChildCategory inserts category as a child of parentID. The
// child inherits the parent's type via InsertOrUpdate.
func (s *categoryService) InsertChildCategory(parentID uint, category *models.Category) (uint, error) {
	category.ParentID = &parentID
	return s.InsertOrUpdate(category)
}

// GetCategoryWithParent fetches a category together with its resolved
// parent (one level), for callers that need to inspect lineage.
func (s *categoryService) GetCategoryWithParent(categoryID uint) (*models.Category, error) {
	var category models.Category
	if err := s.store.DB().Preload("Parent").First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternal, err)
	}
	return &category, nil
}

// retypeDescendants walks the subtree under rootID breadth-first,
// re-querying children by parent id at each step, and overwrites
// every descendant's type. Traversal is by id, not by live object
// references, so a (caller-induced) cycle cannot keep stale objects
// alive — it would loop, which is why cycles are a caller error.
func retypeDescendants(tx *gorm.DB, rootID uint, categoryType models.CategoryType) error {
	queue := []uint{rootID}
	for len(queue) > 0 {
		parentID := queue[0]
		queue = queue[1:]

		var children []models.Category
		if err := tx.Where("parent_id = ?", parentID).Find(&children).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternal, err)
		}
		for _, child := range children {
			if child.Type != categoryType {
				if err := tx.Model(&models.Category{}).
					Where("id = ?", child.ID).
					Update("type", categoryType).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternal, err)
				}
			}
			queue = append(queue, child.ID)
		}
	}
	return nil
}
