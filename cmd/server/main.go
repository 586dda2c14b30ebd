package main

import (
	"context" // context package is needed for Redis operations
	"time"    // Rate limiter expiry

	"shop_system/internal/api"        // Custom package for API handlers
	"shop_system/internal/catalog"    // Catalog query engine
	"shop_system/internal/config"     // Custom package for configuration
	"shop_system/internal/db"         // Database connection
	"shop_system/internal/middleware" // Custom package for middleware
	"shop_system/internal/orders"     // Order and payment engine
	"shop_system/internal/payment"    // Payment gateway

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal JSON encoding
	"github.com/sirupsen/logrus"    // Logrus for structured logging
	"golang.org/x/time/rate"        // Rate limits for credential endpoints
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Prices are JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	// Connect to the database
	gdb, err := db.Open(cfg.DSN())
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client; without Redis the catalog is uncached and the nonce guard is off
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, running without cache and nonce guard")
	}

	// Order events go to Kafka when brokers are configured
	var publisher orders.Publisher = orders.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := orders.NewKafkaPublisher(cfg.KafkaBrokers, cfg.OrderEventsTopic)
		defer kp.Close()
		publisher = kp
	}

	// Payment gateway
	gateway := payment.NewBraintree(payment.BraintreeConfig{
		Environment: cfg.BraintreeEnv,
		MerchantID:  cfg.BraintreeMerchantID,
		PublicKey:   cfg.BraintreePublicKey,
		PrivateKey:  cfg.BraintreePrivateKey,
		Timeout:     cfg.BraintreeTimeout,
	})

	policy, err := orders.ParsePolicy(cfg.OrderStatusPolicy)
	if err != nil {
		logrus.Fatalf("invalid ORDER_STATUS_POLICY: %v", err)
	}

	store := catalog.NewCache(catalog.NewStore(gdb), redisClient, cfg.CatalogCacheTTL)
	orderService := orders.NewService(gdb, gateway, publisher, redisClient, policy)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()             // Gin router instance
	r.MaxMultipartMemory = 2 << 20 // Product photos stay in memory
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	api.RegisterRoutes(r.Group("/api/v1"), api.Deps{
		DB:        gdb,
		Catalog:   store,
		Orders:    orderService,
		JWTSecret: cfg.JWTSecret,
		Limiter: middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:      rate.Limit(1),
			Burst:     3,
			ExpiresIn: 3 * time.Minute,
		}),
	})

	logrus.Info("Server running on " + cfg.AppPort)  // Log server start
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}
