package domain

import "errors"

// Error taxonomy shared by every layer. Callers wrap these with
// fmt.Errorf("%w: ...") so delivery can map them with errors.Is.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrCategoryInUse    = errors.New("category is referenced by products")
	ErrPermissionDenied = errors.New("permission denied")
)
