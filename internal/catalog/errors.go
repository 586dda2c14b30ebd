package catalog

import "errors"

var (
	ErrNotFound          = errors.New("product not found")
	ErrPhotoNotFound     = errors.New("photo not found")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrMissingProductID  = errors.New("pid is missing")
	ErrMissingCategoryID = errors.New("cid is missing")
	ErrInvalidRange      = errors.New("radio must be a [min, max] pair")
)

// ValidationError names the request field that failed a write check
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
