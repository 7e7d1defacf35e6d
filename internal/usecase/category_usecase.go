package usecase

import (
	"fmt"

	"github.com/Canapean/Market/internal/domain"

	"github.com/sirupsen/logrus"
)

type CategoryUseCase interface {
	CreateCategory(category *domain.Category) (*domain.Category, error)
	GetCategoryByID(id int) (*domain.Category, error)
	UpdateCategory(category *domain.Category) (*domain.Category, error)
	DeleteCategory(id int) error
	ListCategories() ([]domain.Category, error)
	ListChildren(parentID int) ([]domain.Category, error)
	ListDescendants(id int) ([]domain.Category, error)
}

type categoryUseCase struct {
	categoryRepo domain.CategoryRepository
	productRepo  domain.ProductRepository
	log          *logrus.Logger
}

func NewCategoryUseCase(cRepo domain.CategoryRepository, pRepo domain.ProductRepository, logger *logrus.Logger) CategoryUseCase {
	return &categoryUseCase{
		categoryRepo: cRepo,
		productRepo:  pRepo,
		log:          logger,
	}
}

func (uc *categoryUseCase) CreateCategory(category *domain.Category) (*domain.Category, error) {
	if category.Title == "" {
		uc.log.Warn("Use Case: Attempted to create category with empty title")
		return nil, fmt.Errorf("%w: category title cannot be empty", domain.ErrValidation)
	}
	if category.ParentID != nil {
		if _, err := uc.categoryRepo.GetCategoryByID(*category.ParentID); err != nil {
			uc.log.Warnf("Use Case: Parent category ID %d not found during category creation: %v", *category.ParentID, err)
			return nil, fmt.Errorf("%w: parent category with id %d does not exist", domain.ErrValidation, *category.ParentID)
		}
	}

	createdCategory, err := uc.categoryRepo.CreateCategory(category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create category '%s': %v", category.Title, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category '%s' created successfully with ID %d", createdCategory.Title, createdCategory.ID)
	return createdCategory, nil
}

func (uc *categoryUseCase) GetCategoryByID(id int) (*domain.Category, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get category with invalid ID: %d", id)
		return nil, fmt.Errorf("%w: invalid category ID", domain.ErrValidation)
	}

	category, err := uc.categoryRepo.GetCategoryByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get category ID %d: %v", id, err)
		return nil, err
	}
	return category, nil
}

func (uc *categoryUseCase) UpdateCategory(category *domain.Category) (*domain.Category, error) {
	if category.ID <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid category ID: %d", category.ID)
		return nil, fmt.Errorf("%w: invalid category ID", domain.ErrValidation)
	}
	if category.Title == "" {
		uc.log.Warnf("Use Case: Attempted update for category ID %d with empty title", category.ID)
		return nil, fmt.Errorf("%w: category title cannot be empty", domain.ErrValidation)
	}

	updatedCategory, err := uc.categoryRepo.UpdateCategory(category)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update category ID %d: %v", category.ID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Category updated successfully for ID %d", updatedCategory.ID)
	return updatedCategory, nil
}

// DeleteCategory cascades to the whole subtree, but only when no product
// references the category or any of its descendants. A single referencing
// product anywhere in the subtree blocks the delete and leaves the tree
// unchanged.
func (uc *categoryUseCase) DeleteCategory(id int) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid category ID: %d", id)
		return fmt.Errorf("%w: invalid category ID", domain.ErrValidation)
	}

	if _, err := uc.categoryRepo.GetCategoryByID(id); err != nil {
		uc.log.Warnf("Use Case: Category ID %d not found for delete: %v", id, err)
		return err
	}

	descendants, err := uc.categoryRepo.ListDescendants(id)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to list descendants of category ID %d: %v", id, err)
		return err
	}

	subtreeIDs := make([]int, 0, len(descendants)+1)
	subtreeIDs = append(subtreeIDs, id)
	for _, descendant := range descendants {
		subtreeIDs = append(subtreeIDs, descendant.ID)
	}

	referencing, err := uc.productRepo.CountProductsInCategories(subtreeIDs)
	if err != nil {
		uc.log.Errorf("Use Case: Failed to count products referencing category subtree %d: %v", id, err)
		return err
	}
	if referencing > 0 {
		uc.log.Warnf("Use Case: Delete of category ID %d blocked: %d product(s) reference its subtree", id, referencing)
		return fmt.Errorf("%w: %d product(s) still reference category %d or its descendants", domain.ErrCategoryInUse, referencing, id)
	}

	if err := uc.categoryRepo.DeleteCategory(id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete category ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Category ID %d deleted with %d descendant(s)", id, len(descendants))
	return nil
}

func (uc *categoryUseCase) ListCategories() ([]domain.Category, error) {
	categories, err := uc.categoryRepo.ListCategories()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list categories: %v", err)
		return nil, fmt.Errorf("could not retrieve categories: %w", err)
	}
	return categories, nil
}

func (uc *categoryUseCase) ListChildren(parentID int) ([]domain.Category, error) {
	if parentID <= 0 {
		return nil, fmt.Errorf("%w: invalid category ID", domain.ErrValidation)
	}
	if _, err := uc.categoryRepo.GetCategoryByID(parentID); err != nil {
		return nil, err
	}

	children, err := uc.categoryRepo.ListChildren(parentID)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list children of category %d: %v", parentID, err)
		return nil, fmt.Errorf("could not retrieve child categories: %w", err)
	}
	return children, nil
}

func (uc *categoryUseCase) ListDescendants(id int) ([]domain.Category, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid category ID", domain.ErrValidation)
	}
	if _, err := uc.categoryRepo.GetCategoryByID(id); err != nil {
		return nil, err
	}

	descendants, err := uc.categoryRepo.ListDescendants(id)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list descendants of category %d: %v", id, err)
		return nil, fmt.Errorf("could not retrieve descendant categories: %w", err)
	}
	return descendants, nil
}
