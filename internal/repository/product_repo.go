package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Canapean/Market/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

const productColumns = "id, title, price, description, thumbnail, seller_id, category_id, created_at"

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (title, price, description, thumbnail, seller_id, category_id)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at`

	err := r.db.QueryRow(query,
		product.Title,
		product.Price,
		product.Description,
		product.Thumbnail,
		product.SellerID,
		product.CategoryID,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Attempted to create product with non-existent category ID: %d", product.CategoryID)
			return nil, fmt.Errorf("%w: category with id %d does not exist", domain.ErrValidation, product.CategoryID)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for product '%s': %s", product.Title, pqErr.Message)
			return nil, fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Message)
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Title, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %d, Title: %s", product.ID, product.Title)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(id int) (*domain.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = $1`, productColumns)
	product := &domain.Product{}
	var thumbnail sql.NullString

	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Title,
		&product.Price,
		&product.Description,
		&thumbnail,
		&product.SellerID,
		&product.CategoryID,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %d not found", id)
			return nil, fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to get product by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}
	product.Thumbnail = thumbnail.String

	return product, nil
}

// GetProductsByIDs returns only the products that still exist; ids without
// a matching row are skipped rather than reported.
func (r *postgresProductRepository) GetProductsByIDs(ids []int) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM products WHERE id = ANY($1) ORDER BY id ASC`, productColumns)
	return r.queryProducts(query, pq.Array(ids))
}

func (r *postgresProductRepository) UpdateProduct(id int, updates map[string]interface{}) (*domain.Product, error) {
	if len(updates) == 0 {
		return r.GetProductByID(id)
	}

	setClauses := []string{}
	args := []interface{}{}
	argCounter := 1

	for key, value := range updates {
		switch key {
		case "title", "price", "description", "thumbnail", "category_id":
			setClauses = append(setClauses, fmt.Sprintf("%s = $%d", key, argCounter))
			args = append(args, value)
			argCounter++
		default:
			r.log.Warnf("Repository: Skipping unknown field '%s' provided for product update ID %d", key, id)
		}
	}

	if len(setClauses) == 0 {
		return r.GetProductByID(id)
	}

	query := "UPDATE products SET " + strings.Join(setClauses, ", ") + fmt.Sprintf(" WHERE id = $%d", argCounter)
	args = append(args, id)

	result, err := r.db.Exec(query, args...)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Repository: Attempted to update product ID %d with non-existent category", id)
			return nil, fmt.Errorf("%w: category does not exist", domain.ErrValidation)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Repository: Check constraint violation for product update ID %d: %s", id, pqErr.Message)
			return nil, fmt.Errorf("%w: %s", domain.ErrValidation, pqErr.Message)
		}
		r.log.Errorf("Repository: Failed to execute partial update for product ID %d: %v", id, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Repository: Failed to get rows affected after update for ID %d: %v", id, err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Repository: Product with ID %d not found for update", id)
		return nil, fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}

	return r.GetProductByID(id)
}

func (r *postgresProductRepository) DeleteProduct(id int) error {
	query := `DELETE FROM products WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %d: %v", id, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %d: %v", id, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %d", id)
		return fmt.Errorf("%w: product with id %d", domain.ErrNotFound, id)
	}
	r.log.Infof("Product deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresProductRepository) ListProducts(query domain.ProductQuery) ([]domain.Product, error) {
	query = query.Normalize()
	sqlQuery, args := buildListProductsQuery(query)

	products, err := r.queryProducts(sqlQuery, args...)
	if err != nil {
		r.log.Errorf("Failed to list products (page %d): %v", query.Page, err)
		return nil, err
	}
	r.log.Infof("Retrieved %d products (page: %d, page size: %d)", len(products), query.Page, query.PageSize)
	return products, nil
}

func (r *postgresProductRepository) CountProductsInCategories(categoryIDs []int) (int, error) {
	if len(categoryIDs) == 0 {
		return 0, nil
	}
	query := `SELECT COUNT(*) FROM products WHERE category_id = ANY($1)`
	var count int
	if err := r.db.QueryRow(query, pq.Array(categoryIDs)).Scan(&count); err != nil {
		r.log.Errorf("Failed to count products in categories %v: %v", categoryIDs, err)
		return 0, fmt.Errorf("could not count products in categories: %w", err)
	}
	return count, nil
}

// buildListProductsQuery turns a normalized ProductQuery into SQL. Listing
// without an explicit sort is newest first; an explicit sort orders by
// price with id as a stable tie break.
func buildListProductsQuery(q domain.ProductQuery) (string, []interface{}) {
	query := fmt.Sprintf(`SELECT %s FROM products`, productColumns)
	where := []string{}
	args := []interface{}{}
	argCounter := 1

	if q.TitleQuery != "" {
		where = append(where, fmt.Sprintf("title ILIKE $%d", argCounter))
		args = append(args, "%"+q.TitleQuery+"%")
		argCounter++
	}
	if q.CategoryID > 0 {
		where = append(where, fmt.Sprintf("category_id = $%d", argCounter))
		args = append(args, q.CategoryID)
		argCounter++
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	switch q.Sort {
	case domain.SortPriceAsc:
		query += " ORDER BY price ASC, id ASC"
	case domain.SortPriceDesc:
		query += " ORDER BY price DESC, id ASC"
	default:
		query += " ORDER BY created_at DESC, id DESC"
	}

	query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCounter, argCounter+1)
	args = append(args, q.PageSize, q.Offset())

	return query, args
}

func (r *postgresProductRepository) queryProducts(query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("could not query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		var thumbnail sql.NullString
		if err := rows.Scan(
			&product.ID,
			&product.Title,
			&product.Price,
			&product.Description,
			&thumbnail,
			&product.SellerID,
			&product.CategoryID,
			&product.CreatedAt,
		); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		product.Thumbnail = thumbnail.String
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	return products, nil
}
