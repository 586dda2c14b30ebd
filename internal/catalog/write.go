package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shop_system/internal/domain"

	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PhotoUpload is an uploaded product photo
type PhotoUpload struct {
	Data        []byte
	ContentType string
}

// ProductInput carries the mutable product fields of a create or update.
// Pointers distinguish "missing" from zero values.
type ProductInput struct {
	Name        string
	Description string
	Price       *decimal.Decimal
	CategoryID  uint
	Quantity    *int
	Shipping    bool
	Photo       *PhotoUpload
}

// Validate checks the input; a photo is mandatory only on create
func (in ProductInput) Validate(requirePhoto bool) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return invalid("name", "Name is Required")
	case strings.TrimSpace(in.Description) == "":
		return invalid("description", "Description is Required")
	case in.Price == nil:
		return invalid("price", "Price is Required")
	case in.Price.IsNegative():
		return invalid("price", "Price cannot be negative")
	case in.CategoryID == 0:
		return invalid("category", "Category is Required")
	case in.Quantity == nil:
		return invalid("quantity", "Quantity is Required")
	case *in.Quantity < 0:
		return invalid("quantity", "Quantity cannot be negative")
	case requirePhoto && (in.Photo == nil || len(in.Photo.Data) == 0):
		return invalid("photo", "Photo is Required")
	case in.Photo != nil && len(in.Photo.Data) > domain.MaxPhotoSize:
		return invalid("photo", "Photo should be less than 1MB")
	}
	return nil
}

// apply copies the input onto p and recomputes the slug
func (in ProductInput) apply(p *domain.Product) {
	p.Name = strings.TrimSpace(in.Name)
	p.Slug = slug.Make(p.Name)
	p.Description = in.Description
	p.Price = *in.Price
	p.CategoryID = in.CategoryID
	p.Quantity = *in.Quantity
	p.Shipping = in.Shipping
	if in.Photo != nil && len(in.Photo.Data) > 0 {
		p.PhotoData = in.Photo.Data
		p.PhotoContentType = in.Photo.ContentType
	}
}

// requireCategory checks the referenced category exists at write time
func (s *Store) requireCategory(tx *gorm.DB, id uint) error {
	var n int64
	if err := tx.Model(&domain.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	if n == 0 {
		return invalid("category", "Category not found")
	}
	return nil
}

// CreateProduct validates and stores a new product
func (s *Store) CreateProduct(ctx context.Context, in ProductInput) (*domain.Product, error) {
	if err := in.Validate(true); err != nil {
		return nil, err
	}
	tx := s.db.WithContext(ctx)
	if err := s.requireCategory(tx, in.CategoryID); err != nil {
		return nil, err
	}
	var product domain.Product
	in.apply(&product)
	if err := tx.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return &product, nil
}

// UpdateProduct replaces the mutable fields of product id.
// The stored photo is kept unless a new one is uploaded.
func (s *Store) UpdateProduct(ctx context.Context, id uint, in ProductInput) (*domain.Product, error) {
	if err := in.Validate(false); err != nil {
		return nil, err
	}
	var product domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, id).Error; err != nil {
			return err
		}
		if err := s.requireCategory(tx, in.CategoryID); err != nil {
			return err
		}
		in.apply(&product)
		return tx.Save(&product).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	var verr *ValidationError
	if errors.As(err, &verr) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	return &product, nil
}

// DeleteProduct removes a product; orders keep a dangling reference to it
func (s *Store) DeleteProduct(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Categories lists every category by name
func (s *Store) Categories(ctx context.Context) ([]domain.Category, error) {
	categories := []domain.Category{}
	if err := s.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CategoryBySlug returns the category with an exact slug match
func (s *Store) CategoryBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("category by slug: %w", err)
	}
	return &category, nil
}

// CreateCategory stores a category unless one with the same name exists
func (s *Store) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	tx := s.db.WithContext(ctx)
	var n int64
	if err := tx.Model(&domain.Category{}).Where("name = ?", name).Count(&n).Error; err != nil {
		return nil, fmt.Errorf("check category name: %w", err)
	}
	if n > 0 {
		return nil, ErrCategoryExists
	}
	category := domain.Category{Name: name, Slug: slug.Make(name)}
	if err := tx.Create(&category).Error; errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCategoryExists
	} else if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	return &category, nil
}

// UpdateCategory renames a category and recomputes its slug
func (s *Store) UpdateCategory(ctx context.Context, id uint, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "Name is required")
	}
	var category domain.Category
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&category, id).Error; err != nil {
			return err
		}
		category.Name = name
		category.Slug = slug.Make(name)
		return tx.Save(&category).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCategoryNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrCategoryExists
	}
	if err != nil {
		return nil, fmt.Errorf("update category: %w", err)
	}
	return &category, nil
}

// DeleteCategory removes a category; its products keep a dangling reference
func (s *Store) DeleteCategory(ctx context.Context, id uint) error {
	res := s.db.WithContext(ctx).Delete(&domain.Category{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete category: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
