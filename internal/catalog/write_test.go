package catalog

import (
	"bytes"
	"context"
	"testing"

	"shop_system/internal/dbtest"
	"shop_system/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInput(categoryID uint) ProductInput {
	price := decimal.RequireFromString("19.99")
	qty := 3
	return ProductInput{
		Name:        "Cool Product",
		Description: "This is a cool product",
		Price:       &price,
		CategoryID:  categoryID,
		Quantity:    &qty,
		Shipping:    true,
		Photo:       &PhotoUpload{Data: []byte("img"), ContentType: "image/png"},
	}
}

func TestValidateProductInput(t *testing.T) {
	negative := decimal.RequireFromString("-1")
	negativeQty := -1
	cases := []struct {
		name    string
		mutate  func(*ProductInput)
		message string
	}{
		{"name", func(in *ProductInput) { in.Name = " " }, "Name is Required"},
		{"description", func(in *ProductInput) { in.Description = "" }, "Description is Required"},
		{"price", func(in *ProductInput) { in.Price = nil }, "Price is Required"},
		{"negative price", func(in *ProductInput) { in.Price = &negative }, "Price cannot be negative"},
		{"category", func(in *ProductInput) { in.CategoryID = 0 }, "Category is Required"},
		{"quantity", func(in *ProductInput) { in.Quantity = nil }, "Quantity is Required"},
		{"negative quantity", func(in *ProductInput) { in.Quantity = &negativeQty }, "Quantity cannot be negative"},
		{"photo", func(in *ProductInput) { in.Photo = nil }, "Photo is Required"},
		{"oversized photo", func(in *ProductInput) {
			in.Photo = &PhotoUpload{Data: bytes.Repeat([]byte{1}, domain.MaxPhotoSize+1)}
		}, "Photo should be less than 1MB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput(1)
			tc.mutate(&in)
			err := in.Validate(true)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.message, verr.Message)
		})
	}

	in := validInput(1)
	in.Photo = &PhotoUpload{Data: bytes.Repeat([]byte{1}, domain.MaxPhotoSize)}
	assert.NoError(t, in.Validate(true), "exactly 1MB is accepted")

	in.Photo = nil
	assert.NoError(t, in.Validate(false), "photo is optional on update")
}

func TestCreateUpdateDeleteProduct(t *testing.T) {
	db := dbtest.New(t)
	s := NewStore(db)
	ctx := context.Background()
	books, err := s.CreateCategory(ctx, "Books")
	require.NoError(t, err)
	games, err := s.CreateCategory(ctx, "Board Games")
	require.NoError(t, err)
	assert.Equal(t, "board-games", games.Slug)

	created, err := s.CreateProduct(ctx, validInput(books.ID))
	require.NoError(t, err)
	assert.Equal(t, "cool-product", created.Slug)

	update := validInput(games.ID)
	update.Name = "Cooler Product"
	update.Photo = nil
	updated, err := s.UpdateProduct(ctx, created.ID, update)
	require.NoError(t, err)
	assert.Equal(t, "cooler-product", updated.Slug)
	assert.Equal(t, games.ID, updated.CategoryID)

	photo, err := s.Photo(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), photo.Data, "photo kept when none uploaded")

	_, err = s.UpdateProduct(ctx, 9999, update)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteProduct(ctx, created.ID))
	assert.ErrorIs(t, s.DeleteProduct(ctx, created.ID), ErrNotFound)
}

func TestCreateProductRequiresExistingCategory(t *testing.T) {
	s := NewStore(dbtest.New(t))

	_, err := s.CreateProduct(context.Background(), validInput(42))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "category", verr.Field)
}

func TestCategoryLifecycle(t *testing.T) {
	s := NewStore(dbtest.New(t))
	ctx := context.Background()

	_, err := s.CreateCategory(ctx, "")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Name is required", verr.Message)

	c, err := s.CreateCategory(ctx, "Kitchen Tools")
	require.NoError(t, err)
	_, err = s.CreateCategory(ctx, "Kitchen Tools")
	assert.ErrorIs(t, err, ErrCategoryExists)

	renamed, err := s.UpdateCategory(ctx, c.ID, "Garden Tools")
	require.NoError(t, err)
	assert.Equal(t, "garden-tools", renamed.Slug)

	got, err := s.CategoryBySlug(ctx, "garden-tools")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)

	all, err := s.Categories(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.DeleteCategory(ctx, c.ID))
	_, err = s.CategoryBySlug(ctx, "garden-tools")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
	_, err = s.UpdateCategory(ctx, c.ID, "x")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}
