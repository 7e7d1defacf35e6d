package domain

// Category is a node in the category tree. ParentID is nil for roots;
// the parent relation forms a forest.
type Category struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ParentID    *int   `json:"parent_id,omitempty"`
}

type CategoryRepository interface {
	CreateCategory(category *Category) (*Category, error)
	GetCategoryByID(id int) (*Category, error)
	UpdateCategory(category *Category) (*Category, error)
	// DeleteCategory removes the category and, through the parent FK
	// cascade, its whole subtree.
	DeleteCategory(id int) error
	ListCategories() ([]Category, error)
	// ListChildren returns the direct children ordered by title ascending.
	ListChildren(parentID int) ([]Category, error)
	// ListDescendants returns every category below the given one,
	// excluding the category itself, ordered by title ascending.
	ListDescendants(id int) ([]Category, error)
}
