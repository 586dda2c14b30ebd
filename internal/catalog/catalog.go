// Package catalog answers product and category reads (listing, pagination,
// filters, search, related products) and performs admin catalog writes.
package catalog

import (
	"context"

	"shop_system/internal/domain"
)

// Listing sizes
const (
	PageSize     = 6  // Products per page
	ListLimit    = 12 // Cap of the unpaginated list
	RelatedLimit = 3  // Related products returned
)

// Catalog is implemented by Store and by the caching Cache around it
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Page(ctx context.Context, page int) (*PageResult, error)
	BySlug(ctx context.Context, slug string) (*domain.Product, error)
	Photo(ctx context.Context, id uint) (*Photo, error)
	Filter(ctx context.Context, f Filter) ([]domain.Product, error)
	Search(ctx context.Context, keyword string) ([]domain.Product, error)
	Count(ctx context.Context) (int64, error)
	ByCategorySlug(ctx context.Context, slug string) (*domain.Category, []domain.Product, error)
	Related(ctx context.Context, productID, categoryID uint) ([]domain.Product, error)

	CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id uint, in ProductInput) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id uint) error

	Categories(ctx context.Context) ([]domain.Category, error)
	CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error)
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	UpdateCategory(ctx context.Context, id uint, name string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, id uint) error
}

// PageResult is one page of the creation-time-descending product listing
type PageResult struct {
	Products   []domain.Product
	Page       int
	PerPage    int
	Total      int64
	TotalPages int
}

// Photo is a product photo streamed separately from the product JSON
type Photo struct {
	Data        []byte
	ContentType string
}

var (
	_ Catalog = (*Store)(nil)
	_ Catalog = (*Cache)(nil)
)
