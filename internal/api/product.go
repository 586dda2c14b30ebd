package api

import (
	"errors"   // Error inspection
	"io"       // Bounded photo reads
	"net/http" // HTTP status codes
	"strconv"  // Form value parsing
	"strings"  // String manipulation

	"shop_system/internal/catalog" // Catalog query engine
	"shop_system/internal/domain"  // Importing domain models

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Exact prices
	"github.com/sirupsen/logrus"    // Logging library
)

// GetProductsHandler lists the newest products
func GetProductsHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.List(c.Request.Context())
		if err != nil {
			serverError(c, "Error in getting products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":   true,
			"message":   "All Products",
			"products":  products,
			"counTotal": len(products), // Size of this payload, not of the collection
		})
	}
}

// ProductListHandler returns one page of products
func ProductListHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := catalog.ParsePage(c.Param("page")) // Clamped to 1
		res, err := store.Page(c.Request.Context(), page)
		if err != nil {
			serverError(c, "error in per page ctrl", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"products":   res.Products,
			"page":       res.Page,
			"perPage":    res.PerPage,
			"total":      res.Total,
			"totalPages": res.TotalPages,
		})
	}
}

// GetProductHandler returns one product by slug
func GetProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := store.BySlug(c.Request.Context(), c.Param("slug"))
		if errors.Is(err, catalog.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			serverError(c, "Error while getting single product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Single Product Fetched", "product": product})
	}
}

// ProductPhotoHandler streams the stored photo bytes
func ProductPhotoHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := paramID(c, "pid")
		if id == 0 {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		photo, err := store.Photo(c.Request.Context(), id)
		switch {
		case errors.Is(err, catalog.ErrNotFound):
			fail(c, http.StatusNotFound, "Product not found")
			return
		case errors.Is(err, catalog.ErrPhotoNotFound):
			fail(c, http.StatusNotFound, "Photo not found")
			return
		case err != nil:
			serverError(c, "Error while getting photo", err)
			return
		}
		contentType := photo.ContentType
		if contentType == "" {
			contentType = http.DetectContentType(photo.Data)
		}
		c.Data(http.StatusOK, contentType, photo.Data)
	}
}

// ProductFiltersHandler filters by category set and price range
func ProductFiltersHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		var f catalog.Filter
		// An empty body means no predicates
		if err := c.ShouldBindJSON(&f); err != nil && !errors.Is(err, io.EOF) {
			fail(c, http.StatusBadRequest, "Invalid filter")
			return
		}
		products, err := store.Filter(c.Request.Context(), f)
		if errors.Is(err, catalog.ErrInvalidRange) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			serverError(c, "Error while Filtering Products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// ProductCountHandler returns the total number of products
func ProductCountHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		total, err := store.Count(c.Request.Context())
		if err != nil {
			serverError(c, "Error in product count", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "total": total})
	}
}

// SearchProductHandler returns matching products as a bare array
func SearchProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.Search(c.Request.Context(), c.Param("keyword"))
		if err != nil {
			serverError(c, "Error In Search Product API", err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// RelatedProductHandler returns other products of the same category
func RelatedProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := store.Related(c.Request.Context(), paramID(c, "pid"), paramID(c, "cid"))
		if errors.Is(err, catalog.ErrMissingProductID) || errors.Is(err, catalog.ErrMissingCategoryID) {
			fail(c, http.StatusBadRequest, err.Error())
			return
		}
		if err != nil {
			serverError(c, "Error while geting related product", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
	}
}

// ProductCategoryHandler lists the products of a category slug
func ProductCategoryHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		category, products, err := store.ByCategorySlug(c.Request.Context(), c.Param("slug"))
		if err != nil {
			serverError(c, "Error While Getting products", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "category": category, "products": products})
	}
}

// CreateProductHandler stores a product from a multipart form
func CreateProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindProductForm(c)
		if !ok {
			return
		}
		product, err := store.CreateProduct(c.Request.Context(), in)
		if writeValidation(c, err) {
			return
		}
		if err != nil {
			serverError(c, "Error in creating product", err)
			return
		}
		logrus.WithFields(logrus.Fields{"product_id": product.ID, "slug": product.Slug}).Info("Product created")
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Created Successfully", "products": product})
	}
}

// UpdateProductHandler replaces a product from a multipart form
func UpdateProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, ok := bindProductForm(c)
		if !ok {
			return
		}
		product, err := store.UpdateProduct(c.Request.Context(), paramID(c, "pid"), in)
		if errors.Is(err, catalog.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		if writeValidation(c, err) {
			return
		}
		if err != nil {
			serverError(c, "Error in Update product", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Product Updated Successfully", "products": product})
	}
}

// DeleteProductHandler removes a product
func DeleteProductHandler(store catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := paramID(c, "pid")
		err := store.DeleteProduct(c.Request.Context(), id)
		if errors.Is(err, catalog.ErrNotFound) {
			fail(c, http.StatusNotFound, "Product not found")
			return
		}
		if err != nil {
			serverError(c, "Error while deleting product", err)
			return
		}
		logrus.WithField("product_id", id).Info("Product deleted")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product Deleted successfully"})
	}
}

// writeValidation answers 400 {error} for catalog validation failures
func writeValidation(c *gin.Context, err error) bool {
	var verr *catalog.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return true
	}
	return false
}

// bindProductForm reads the multipart product fields and optional photo.
// Numeric fields that are present but malformed are rejected here; absent
// fields are left nil for ProductInput.Validate to report.
func bindProductForm(c *gin.Context) (catalog.ProductInput, bool) {
	in := catalog.ProductInput{
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
	}
	if raw := strings.TrimSpace(c.PostForm("price")); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Price must be a number"})
			return in, false
		}
		in.Price = &price
	}
	if raw := strings.TrimSpace(c.PostForm("category")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Category is Required"})
			return in, false
		}
		in.CategoryID = uint(id)
	}
	if raw := strings.TrimSpace(c.PostForm("quantity")); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Quantity must be a number"})
			return in, false
		}
		in.Quantity = &qty
	}
	in.Shipping, _ = strconv.ParseBool(c.PostForm("shipping")) // "1", "true"

	fh, err := c.FormFile("photo")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return in, true
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid photo upload"})
		return in, false
	}
	f, err := fh.Open()
	if err != nil {
		serverError(c, "Error reading photo", err)
		return in, false
	}
	defer f.Close()
	// One byte past the limit is enough to reject oversized photos
	data, err := io.ReadAll(io.LimitReader(f, domain.MaxPhotoSize+1))
	if err != nil {
		serverError(c, "Error reading photo", err)
		return in, false
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	in.Photo = &catalog.PhotoUpload{Data: data, ContentType: contentType}
	return in, true
}
