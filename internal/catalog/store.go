package catalog

import (
	"context"
	"errors"
	"fmt"

	"shop_system/internal/domain"

	"gorm.io/gorm"
)

// Store runs catalog queries against the database
type Store struct {
	db *gorm.DB
}

// NewStore creates a Store over db
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// products starts a product query without the photo blob and with the category populated
func (s *Store) products(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&domain.Product{}).
		Omit("photo_data").
		Preload("Category")
}

// newest orders by creation time, newest first, with id breaking ties
func newest(q *gorm.DB) *gorm.DB {
	return q.Order("created_at desc").Order("id desc")
}

// List returns the newest products up to ListLimit
func (s *Store) List(ctx context.Context) ([]domain.Product, error) {
	products := []domain.Product{}
	if err := newest(s.products(ctx)).Limit(ListLimit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Page returns page `page` (1-based) of PageSize products
func (s *Store) Page(ctx context.Context, page int) (*PageResult, error) {
	return s.page(ctx, page, s.Count)
}

func (s *Store) page(ctx context.Context, page int, count func(context.Context) (int64, error)) (*PageResult, error) {
	if page < 1 {
		page = 1
	}
	products := []domain.Product{}
	err := newest(s.products(ctx)).
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("page products: %w", err)
	}
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}
	return &PageResult{
		Products:   products,
		Page:       page,
		PerPage:    PageSize,
		Total:      total,
		TotalPages: int((total + PageSize - 1) / PageSize),
	}, nil
}

// BySlug returns the product with an exact slug match
func (s *Store) BySlug(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	err := s.products(ctx).Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product by slug: %w", err)
	}
	return &product, nil
}

// Photo returns the stored photo of a product
func (s *Store) Photo(ctx context.Context, id uint) (*Photo, error) {
	var product domain.Product
	err := s.db.WithContext(ctx).
		Select("id", "photo_data", "photo_content_type").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("product photo: %w", err)
	}
	if !product.HasPhoto() {
		return nil, ErrPhotoNotFound
	}
	return &Photo{Data: product.PhotoData, ContentType: product.PhotoContentType}, nil
}

// Filter returns the products matching every present predicate of f
func (s *Store) Filter(ctx context.Context, f Filter) ([]domain.Product, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	products := []domain.Product{}
	if err := newest(f.apply(s.products(ctx))).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("filter products: %w", err)
	}
	return products, nil
}

// Search matches keyword case-insensitively against name or description
func (s *Store) Search(ctx context.Context, keyword string) ([]domain.Product, error) {
	pattern := containsPattern(keyword)
	products := []domain.Product{}
	err := newest(s.products(ctx)).
		Where("LOWER(name) LIKE ? ESCAPE '!' OR LOWER(description) LIKE ? ESCAPE '!'", pattern, pattern).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	return products, nil
}

// Count returns the unfiltered number of products
func (s *Store) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := s.db.WithContext(ctx).Model(&domain.Product{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return total, nil
}

// ByCategorySlug resolves a category and lists its products.
// An unknown slug yields a nil category and no products.
func (s *Store) ByCategorySlug(ctx context.Context, slug string) (*domain.Category, []domain.Product, error) {
	category, err := s.CategoryBySlug(ctx, slug)
	if errors.Is(err, ErrCategoryNotFound) {
		return nil, []domain.Product{}, nil
	}
	if err != nil {
		return nil, nil, err
	}
	products := []domain.Product{}
	if err := newest(s.products(ctx)).Where("category_id = ?", category.ID).Find(&products).Error; err != nil {
		return nil, nil, fmt.Errorf("products by category: %w", err)
	}
	return category, products, nil
}

// Related returns up to RelatedLimit other products of the same category
func (s *Store) Related(ctx context.Context, productID, categoryID uint) ([]domain.Product, error) {
	if productID == 0 {
		return nil, ErrMissingProductID
	}
	if categoryID == 0 {
		return nil, ErrMissingCategoryID
	}
	products := []domain.Product{}
	err := newest(s.products(ctx)).
		Where("category_id = ? AND id <> ?", categoryID, productID).
		Limit(RelatedLimit).
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("related products: %w", err)
	}
	return products, nil
}
