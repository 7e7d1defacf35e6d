package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/Canapean/Market/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresCategoryRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresCategoryRepository(db *sql.DB, logger *logrus.Logger) domain.CategoryRepository {
	return &postgresCategoryRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresCategoryRepository) CreateCategory(category *domain.Category) (*domain.Category, error) {
	query := `INSERT INTO categories (title, description, parent_id) VALUES ($1, $2, $3) RETURNING id`
	err := r.db.QueryRow(query, category.Title, category.Description, nullableID(category.ParentID)).Scan(&category.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Attempted to create category '%s' with non-existent parent", category.Title)
			return nil, fmt.Errorf("%w: parent category does not exist", domain.ErrValidation)
		}
		r.log.Errorf("Failed to create category '%s': %v", category.Title, err)
		return nil, fmt.Errorf("could not create category: %w", err)
	}
	r.log.Infof("Category created successfully with ID: %d, Title: %s", category.ID, category.Title)
	return category, nil
}

func (r *postgresCategoryRepository) GetCategoryByID(id int) (*domain.Category, error) {
	query := `SELECT id, title, description, parent_id FROM categories WHERE id = $1`
	category := &domain.Category{}
	var parentID sql.NullInt64
	err := r.db.QueryRow(query, id).Scan(&category.ID, &category.Title, &category.Description, &parentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %d not found", id)
			return nil, fmt.Errorf("%w: category with id %d", domain.ErrNotFound, id)
		}
		r.log.Errorf("Failed to get category by ID %d: %v", id, err)
		return nil, fmt.Errorf("could not get category by id: %w", err)
	}
	if parentID.Valid {
		pid := int(parentID.Int64)
		category.ParentID = &pid
	}
	return category, nil
}

func (r *postgresCategoryRepository) UpdateCategory(category *domain.Category) (*domain.Category, error) {
	query := `UPDATE categories SET title = $1, description = $2 WHERE id = $3 RETURNING id`
	err := r.db.QueryRow(query, category.Title, category.Description, category.ID).Scan(&category.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Category with ID %d not found for update", category.ID)
			return nil, fmt.Errorf("%w: category with id %d", domain.ErrNotFound, category.ID)
		}
		r.log.Errorf("Failed to update category ID %d: %v", category.ID, err)
		return nil, fmt.Errorf("could not update category: %w", err)
	}
	r.log.Infof("Category updated successfully with ID: %d", category.ID)
	return category, nil
}

// DeleteCategory removes the category; the parent_id FK cascade takes the
// rest of the subtree with it. The products FK is ON DELETE RESTRICT, so a
// concurrent product insert into the subtree still blocks the delete here
// even after the use case's reference check passed.
func (r *postgresCategoryRepository) DeleteCategory(id int) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.db.Exec(query, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			r.log.Warnf("Delete of category ID %d blocked by referencing products", id)
			return fmt.Errorf("%w: category %d", domain.ErrCategoryInUse, id)
		}
		r.log.Errorf("Failed to delete category ID %d: %v", id, err)
		return fmt.Errorf("could not delete category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting category ID %d: %v", id, err)
		return fmt.Errorf("could not confirm category deletion: %w", err)
	}

	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent category ID %d", id)
		return fmt.Errorf("%w: category with id %d", domain.ErrNotFound, id)
	}

	r.log.Infof("Category deleted successfully with ID: %d", id)
	return nil
}

func (r *postgresCategoryRepository) ListCategories() ([]domain.Category, error) {
	query := `SELECT id, title, description, parent_id FROM categories ORDER BY title ASC`
	return r.queryCategories(query)
}

func (r *postgresCategoryRepository) ListChildren(parentID int) ([]domain.Category, error) {
	query := `SELECT id, title, description, parent_id FROM categories WHERE parent_id = $1 ORDER BY title ASC`
	return r.queryCategories(query, parentID)
}

func (r *postgresCategoryRepository) ListDescendants(id int) ([]domain.Category, error) {
	query := `
        WITH RECURSIVE subtree AS (
            SELECT id, title, description, parent_id FROM categories WHERE id = $1
            UNION ALL
            SELECT c.id, c.title, c.description, c.parent_id
            FROM categories c
            JOIN subtree s ON c.parent_id = s.id
        )
        SELECT id, title, description, parent_id FROM subtree WHERE id <> $1 ORDER BY title ASC`
	return r.queryCategories(query, id)
}

func (r *postgresCategoryRepository) queryCategories(query string, args ...interface{}) ([]domain.Category, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		r.log.Errorf("Failed to query categories: %v", err)
		return nil, fmt.Errorf("could not list categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var category domain.Category
		var parentID sql.NullInt64
		if err := rows.Scan(&category.ID, &category.Title, &category.Description, &parentID); err != nil {
			r.log.Errorf("Failed to scan category row: %v", err)
			return nil, fmt.Errorf("error scanning category data: %w", err)
		}
		if parentID.Valid {
			pid := int(parentID.Int64)
			category.ParentID = &pid
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during categories list iteration: %v", err)
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

func nullableID(id *int) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*id), Valid: true}
}
