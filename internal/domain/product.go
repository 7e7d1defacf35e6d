package domain

import "time"

type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	Description string    `json:"description"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	SellerID    string    `json:"seller_id"`
	CategoryID  int       `json:"category_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type SortOrder string

const (
	// SortNone means no explicit sort was requested: newest first.
	SortNone      SortOrder = ""
	SortPriceAsc  SortOrder = "asc"
	SortPriceDesc SortOrder = "desc"
)

// ProductQuery describes one catalog listing request. CategoryID filters on
// the exact category (descendants are not included), TitleQuery is a
// case-insensitive substring match on the title.
type ProductQuery struct {
	CategoryID int
	TitleQuery string
	Sort       SortOrder
	Page       int
	PageSize   int
}

const DefaultPageSize = 3

// Normalize clamps pagination to sane values. A page past the end of the
// result set yields an empty page, never an error.
func (q ProductQuery) Normalize() ProductQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

func (q ProductQuery) Offset() int {
	return (q.Page - 1) * q.PageSize
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(id int) (*Product, error)
	GetProductsByIDs(ids []int) ([]Product, error)
	UpdateProduct(id int, updates map[string]interface{}) (*Product, error)
	DeleteProduct(id int) error
	ListProducts(query ProductQuery) ([]Product, error)
	// CountProductsInCategories counts live products referencing any of
	// the given categories. Used to protect category deletion.
	CountProductsInCategories(categoryIDs []int) (int, error)
}
