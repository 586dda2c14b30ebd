package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"shop_system/internal/catalog" // Catalog query engine

	"github.com/gin-gonic/gin" // Gin web framework
)

// CategoryRequest is the body of category create and update
type CategoryRequest struct {
	Name string `json:"name"` // Category name
}

// CreateCategoryHandler stores a new category
func CreateCategoryHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		_ = c.ShouldBindJSON(&req) // An unreadable body is reported as a missing name
		category, err := store.CreateCategory(c.Request.Context(), req.Name)
		if categoryWriteFailed(c, err, "Error in Category") {
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "new category created", "category": category})
	}
}

// UpdateCategoryHandler renames a category
func UpdateCategoryHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryRequest
		_ = c.ShouldBindJSON(&req)
		category, err := store.UpdateCategory(c.Request.Context(), paramID(c, "id"), req.Name)
		if categoryWriteFailed(c, err, "Error while updating category") {
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category Updated Successfully", "category": category})
	}
}

// CategoriesHandler lists every category
func CategoriesHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := store.Categories(c.Request.Context())
		if err != nil {
			serverError(c, "Error while getting all categories", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "All Categories List", "category": categories})
	}
}

// SingleCategoryHandler returns one category by slug
func SingleCategoryHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, err := store.CategoryBySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			fail(c, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			serverError(c, "Error While getting Single Category", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Get Single Category Successfully", "category": category})
	}
}

// DeleteCategoryHandler removes a category
func DeleteCategoryHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := store.DeleteCategory(c.Request.Context(), paramID(c, "id"))
		if errors.Is(err, catalog.ErrCategoryNotFound) {
			fail(c, http.StatusNotFound, "Category not found")
			return
		}
		if err != nil {
			serverError(c, "Error while deleting category", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category Deleted Successfully"})
	}
}

// categoryWriteFailed writes the response for a failed create or update
func categoryWriteFailed(c *gin.Context, err error, message string) bool {
	var verr *catalog.ValidationError
	switch {
	case err == nil:
		return false
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"message": verr.Message})
	case errors.Is(err, catalog.ErrCategoryExists):
		fail(c, http.StatusOK, "Category Already Exists")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		fail(c, http.StatusNotFound, "Category not found")
	default:
		serverError(c, message, err)
	}
	return true
}
