package api

import (
	"shop_system/internal/catalog"    // Catalog query engine
	"shop_system/internal/middleware" // Auth middleware
	"shop_system/internal/orders"     // Order and payment engine

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// Deps are the collaborators the HTTP surface is built from
type Deps struct {
	DB        *gorm.DB                // Users and role checks
	Catalog   catalog.Catalog         // Products and categories
	Orders    *orders.Service         // Checkout and order history
	JWTSecret string                  // Token signing key
	Limiter   *middleware.RateLimiter // Applied to credential endpoints, optional
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r gin.IRouter, d Deps) {
	requireSignIn := middleware.JWTAuthMiddleware(d.JWTSecret) // Bearer token check
	isAdmin := middleware.AdminOnlyMiddleware(d.DB)            // Role re-read from DB

	// Credential endpoints are rate limited per client
	limited := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if d.Limiter == nil {
			return []gin.HandlerFunc{h}
		}
		return []gin.HandlerFunc{d.Limiter.Middleware(), h}
	}

	// Auth routes
	auth := r.Group("/auth")
	auth.POST("/register", limited(RegisterHandler(d.DB))...)
	auth.POST("/login", limited(LoginHandler(d.DB, d.JWTSecret))...)
	auth.POST("/forgot-password", limited(ForgotPasswordHandler(d.DB))...)
	auth.GET("/user-auth", requireSignIn, AuthCheckHandler())
	auth.GET("/admin-auth", requireSignIn, isAdmin, AuthCheckHandler())
	auth.PUT("/profile", requireSignIn, UpdateProfileHandler(d.DB))
	auth.GET("/orders", requireSignIn, GetOrdersHandler(d.Orders))
	auth.GET("/all-orders", requireSignIn, isAdmin, GetAllOrdersHandler(d.Orders))
	auth.PUT("/order-status/:orderId", requireSignIn, isAdmin, OrderStatusHandler(d.Orders))

	// Category routes
	category := r.Group("/category")
	category.POST("/create-category", requireSignIn, isAdmin, CreateCategoryHandler(d.Catalog))
	category.PUT("/update-category/:id", requireSignIn, isAdmin, UpdateCategoryHandler(d.Catalog))
	category.GET("/get-category", CategoriesHandler(d.Catalog))
	category.GET("/single-category/:slug", SingleCategoryHandler(d.Catalog))
	category.DELETE("/delete-category/:id", requireSignIn, isAdmin, DeleteCategoryHandler(d.Catalog))

	// Product routes
	product := r.Group("/product")
	product.POST("/create-product", requireSignIn, isAdmin, CreateProductHandler(d.Catalog))
	product.PUT("/update-product/:pid", requireSignIn, isAdmin, UpdateProductHandler(d.Catalog))
	product.DELETE("/delete-product/:pid", requireSignIn, isAdmin, DeleteProductHandler(d.Catalog))
	product.GET("/get-product", GetProductsHandler(d.Catalog))
	product.GET("/get-product/:slug", GetProductHandler(d.Catalog))
	product.GET("/product-photo/:pid", ProductPhotoHandler(d.Catalog))
	product.POST("/product-filters", ProductFiltersHandler(d.Catalog))
	product.GET("/product-count", ProductCountHandler(d.Catalog))
	product.GET("/product-list/:page", ProductListHandler(d.Catalog))
	product.GET("/search/:keyword", SearchProductHandler(d.Catalog))
	product.GET("/related-product/:pid/:cid", RelatedProductHandler(d.Catalog))
	product.GET("/product-category/:slug", ProductCategoryHandler(d.Catalog))

	// Payment routes
	product.GET("/braintree/token", requireSignIn, BraintreeTokenHandler(d.Orders))
	product.POST("/braintree/payment", requireSignIn, BraintreePaymentHandler(d.Orders))
}
