package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/Canapean/Market/internal/domain"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(nopWriter{})
	return logger
}

type nopWriter struct{}

func (nopWriter) Write(p []byte) (int, error) { return len(p), nil }

type mockCartStore struct {
	m     sync.Mutex
	carts map[string]domain.Cart
	err   error
}

func newMockCartStore() *mockCartStore {
	return &mockCartStore{carts: map[string]domain.Cart{}}
}

func (s *mockCartStore) Get(_ context.Context, sessionID string) (domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{}, nil
	}
	copied := domain.Cart{}
	for k, v := range cart {
		copied[k] = v
	}
	return copied, nil
}

func (s *mockCartStore) Save(_ context.Context, sessionID string, cart domain.Cart) error {
	s.m.Lock()
	defer s.m.Unlock()
	if s.err != nil {
		return s.err
	}
	if cart.IsEmpty() {
		delete(s.carts, sessionID)
		return nil
	}
	copied := domain.Cart{}
	for k, v := range cart {
		copied[k] = v
	}
	s.carts[sessionID] = copied
	return nil
}

func (s *mockCartStore) hasCart(sessionID string) bool {
	s.m.Lock()
	defer s.m.Unlock()
	_, ok := s.carts[sessionID]
	return ok
}

type mockProductRepo struct {
	products map[int]domain.Product
	updated  map[string]interface{}
	deleted  []int
	listErr  error
}

func newMockProductRepo(products ...domain.Product) *mockProductRepo {
	repo := &mockProductRepo{products: map[int]domain.Product{}}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *mockProductRepo) CreateProduct(product *domain.Product) (*domain.Product, error) {
	id := len(r.products) + 1
	product.ID = id
	r.products[id] = *product
	return product, nil
}

func (r *mockProductRepo) GetProductByID(id int) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	return &product, nil
}

func (r *mockProductRepo) GetProductsByIDs(ids []int) ([]domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	found := []domain.Product{}
	for _, id := range ids {
		if product, ok := r.products[id]; ok {
			found = append(found, product)
		}
	}
	sort.Slice(found, func(i, j int) bool { return found[i].ID < found[j].ID })
	return found, nil
}

func (r *mockProductRepo) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	r.updated = updates
	if title, ok := updates["title"].(string); ok {
		product.Title = title
	}
	if price, ok := updates["price"].(float64); ok {
		product.Price = price
	}
	if catID, ok := updates["category_id"].(int); ok {
		product.CategoryID = catID
	}
	r.products[id] = product
	return &product, nil
}

func (r *mockProductRepo) DeleteProduct(id int) error {
	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	delete(r.products, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *mockProductRepo) ListProducts(query domain.ProductQuery) ([]domain.Product, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	products := []domain.Product{}
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *mockProductRepo) CountProductsInCategories(categoryIDs []int) (int, error) {
	count := 0
	for _, p := range r.products {
		for _, id := range categoryIDs {
			if p.CategoryID == id {
				count++
				break
			}
		}
	}
	return count, nil
}

type mockCategoryRepo struct {
	categories map[int]domain.Category
	deleted    []int
}

func newMockCategoryRepo(categories ...domain.Category) *mockCategoryRepo {
	repo := &mockCategoryRepo{categories: map[int]domain.Category{}}
	for _, c := range categories {
		repo.categories[c.ID] = c
	}
	return repo
}

func (r *mockCategoryRepo) CreateCategory(category *domain.Category) (*domain.Category, error) {
	id := len(r.categories) + 1
	category.ID = id
	r.categories[id] = *category
	return category, nil
}

func (r *mockCategoryRepo) GetCategoryByID(id int) (*domain.Category, error) {
	category, ok := r.categories[id]
	if !ok {
		return nil, fmt.Errorf("%w: category with id %d", domain.ErrNotFound, id)
	}
	return &category, nil
}

func (r *mockCategoryRepo) UpdateCategory(category *domain.Category) (*domain.Category, error) {
	if _, ok := r.categories[category.ID]; !ok {
		return nil, fmt.Errorf("%w: category with id %d", domain.ErrNotFound, category.ID)
	}
	r.categories[category.ID] = *category
	return category, nil
}

func (r *mockCategoryRepo) DeleteCategory(id int) error {
	if _, ok := r.categories[id]; !ok {
		return fmt.Errorf("%w: category with id %d", domain.ErrNotFound, id)
	}
	for _, descendant := range r.descendantsOf(id) {
		delete(r.categories, descendant.ID)
		r.deleted = append(r.deleted, descendant.ID)
	}
	delete(r.categories, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *mockCategoryRepo) ListCategories() ([]domain.Category, error) {
	categories := []domain.Category{}
	for _, c := range r.categories {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

func (r *mockCategoryRepo) ListChildren(parentID int) ([]domain.Category, error) {
	children := []domain.Category{}
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == parentID {
			children = append(children, c)
		}
	}
	sort.Slice(children, func(i, j int) bool { return children[i].Title < children[j].Title })
	return children, nil
}

func (r *mockCategoryRepo) ListDescendants(id int) ([]domain.Category, error) {
	descendants := r.descendantsOf(id)
	sort.Slice(descendants, func(i, j int) bool { return descendants[i].Title < descendants[j].Title })
	return descendants, nil
}

func (r *mockCategoryRepo) descendantsOf(id int) []domain.Category {
	descendants := []domain.Category{}
	for _, c := range r.categories {
		if c.ParentID != nil && *c.ParentID == id {
			descendants = append(descendants, c)
			descendants = append(descendants, r.descendantsOf(c.ID)...)
		}
	}
	return descendants
}

func intPtr(i int) *int { return &i }
