package usecase

import (
	"fmt"

	"github.com/Canapean/Market/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	CreateProduct(product *domain.Product, sellerID string) (*domain.Product, error)
	GetProductByID(id int) (*domain.Product, error)
	UpdateProduct(id int, userID string, updates map[string]interface{}) (*domain.Product, error)
	DeleteProduct(id int, userID string) error
	ListProducts(query domain.ProductQuery) ([]domain.Product, error)
}

type productUseCase struct {
	productRepo  domain.ProductRepository
	categoryRepo domain.CategoryRepository
	log          *logrus.Logger
}

func NewProductUseCase(pRepo domain.ProductRepository, cRepo domain.CategoryRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo:  pRepo,
		categoryRepo: cRepo,
		log:          logger,
	}
}

// isOwner reports whether the given user created the product. Only the
// owner may update or delete it.
func isOwner(userID string, product *domain.Product) bool {
	return userID != "" && product.SellerID == userID
}

func (uc *productUseCase) CreateProduct(product *domain.Product, sellerID string) (*domain.Product, error) {
	if sellerID == "" {
		uc.log.Warn("Use Case: Attempted to create product without a seller")
		return nil, fmt.Errorf("%w: seller is required", domain.ErrValidation)
	}
	if product.Title == "" {
		uc.log.Warn("Use Case: Attempted to create product with empty title")
		return nil, fmt.Errorf("%w: product title cannot be empty", domain.ErrValidation)
	}
	if product.Price < 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' with negative price: %f", product.Title, product.Price)
		return nil, fmt.Errorf("%w: product price cannot be negative", domain.ErrValidation)
	}
	if product.CategoryID <= 0 {
		uc.log.Warnf("Use Case: Attempted to create product '%s' without a category", product.Title)
		return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
	}
	if _, err := uc.categoryRepo.GetCategoryByID(product.CategoryID); err != nil {
		uc.log.Warnf("Use Case: Category ID %d not found during product creation: %v", product.CategoryID, err)
		return nil, fmt.Errorf("%w: category with id %d does not exist", domain.ErrValidation, product.CategoryID)
	}

	product.SellerID = sellerID

	createdProduct, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Title, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %d by seller %s", createdProduct.Title, createdProduct.ID, sellerID)
	return createdProduct, nil
}

func (uc *productUseCase) GetProductByID(id int) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted to get product with invalid ID: %d", id)
		return nil, fmt.Errorf("%w: invalid product ID", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product ID %d: %v", id, err)
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) UpdateProduct(id int, userID string, updates map[string]interface{}) (*domain.Product, error) {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted update with invalid product ID: %d", id)
		return nil, fmt.Errorf("%w: invalid product ID", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Product ID %d not found for update: %v", id, err)
		return nil, err
	}
	if !isOwner(userID, product) {
		uc.log.Warnf("Use Case: User %s attempted to update product ID %d owned by %s", userID, id, product.SellerID)
		return nil, fmt.Errorf("%w: only the seller may update this product", domain.ErrPermissionDenied)
	}
	if len(updates) == 0 {
		return product, nil
	}

	validUpdates, err := uc.validateProductUpdates(id, updates)
	if err != nil {
		return nil, err
	}
	if len(validUpdates) == 0 {
		return product, nil
	}

	updatedProduct, err := uc.productRepo.UpdateProduct(id, validUpdates)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %d", updatedProduct.ID)
	return updatedProduct, nil
}

func (uc *productUseCase) validateProductUpdates(id int, updates map[string]interface{}) (map[string]interface{}, error) {
	validUpdates := make(map[string]interface{})
	for key, value := range updates {
		switch key {
		case "title":
			title, ok := value.(string)
			if !ok || title == "" {
				uc.log.Warnf("Use Case: Invalid or empty 'title' provided for update ID %d", id)
				return nil, fmt.Errorf("%w: product title cannot be empty", domain.ErrValidation)
			}
			validUpdates[key] = title
		case "price":
			price, ok := value.(float64)
			if !ok || price < 0 {
				uc.log.Warnf("Use Case: Invalid or negative 'price' provided for update ID %d", id)
				return nil, fmt.Errorf("%w: product price cannot be negative", domain.ErrValidation)
			}
			validUpdates[key] = price
		case "description", "thumbnail":
			text, ok := value.(string)
			if !ok {
				uc.log.Warnf("Use Case: Invalid type for '%s' provided for update ID %d", key, id)
				return nil, fmt.Errorf("%w: invalid type for %s", domain.ErrValidation, key)
			}
			validUpdates[key] = text
		case "category_id":
			catID, ok := asInt(value)
			if !ok || catID <= 0 {
				uc.log.Warnf("Use Case: Invalid 'category_id' provided for update ID %d", id)
				return nil, fmt.Errorf("%w: category is required", domain.ErrValidation)
			}
			if _, err := uc.categoryRepo.GetCategoryByID(catID); err != nil {
				uc.log.Warnf("Use Case: Category ID %d not found during product update for ID %d: %v", catID, id, err)
				return nil, fmt.Errorf("%w: category with id %d does not exist", domain.ErrValidation, catID)
			}
			validUpdates[key] = catID
		default:
			uc.log.Warnf("Use Case: Attempted to update unknown or unsupported field '%s' for product ID %d", key, id)
		}
	}
	return validUpdates, nil
}

// asInt accepts both int and the float64 that encoding/json produces for
// numbers.
func asInt(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case float64:
		i := int(v)
		if float64(i) != v {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func (uc *productUseCase) DeleteProduct(id int, userID string) error {
	if id <= 0 {
		uc.log.Warnf("Use Case: Attempted delete with invalid product ID: %d", id)
		return fmt.Errorf("%w: invalid product ID", domain.ErrValidation)
	}

	product, err := uc.productRepo.GetProductByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Product ID %d not found for delete: %v", id, err)
		return err
	}
	if !isOwner(userID, product) {
		uc.log.Warnf("Use Case: User %s attempted to delete product ID %d owned by %s", userID, id, product.SellerID)
		return fmt.Errorf("%w: only the seller may delete this product", domain.ErrPermissionDenied)
	}

	if err := uc.productRepo.DeleteProduct(id); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product ID %d: %v", id, err)
		return err
	}

	uc.log.Infof("Use Case: Product deleted successfully for ID %d", id)
	return nil
}

func (uc *productUseCase) ListProducts(query domain.ProductQuery) ([]domain.Product, error) {
	query = query.Normalize()

	products, err := uc.productRepo.ListProducts(query)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	uc.log.Infof("Use Case: Retrieved %d products (page %d)", len(products), query.Page)
	return products, nil
}
