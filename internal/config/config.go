package config

import (
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For splitting broker lists
	"time"    // For durations

	"github.com/joho/godotenv" // For loading .env files
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	JWTSecret  string // JWT secret key
	RedisAddr  string // Redis server address, empty disables caching and the nonce guard
	RedisPass  string // Redis password
	RedisDB    int    // Redis database number
	IsProd     bool   // Is production environment

	BraintreeEnv        string        // "sandbox" or "production"
	BraintreeMerchantID string        // Braintree merchant ID
	BraintreePublicKey  string        // Braintree API public key
	BraintreePrivateKey string        // Braintree API private key
	BraintreeTimeout    time.Duration // HTTP timeout for gateway calls

	KafkaBrokers     []string // Kafka brokers for order events, empty disables publishing
	OrderEventsTopic string   // Topic order events are written to

	OrderStatusPolicy string        // "free" or "forward"
	CatalogCacheTTL   time.Duration // TTL for cached catalog reads
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "8080"),     // Application port
		DBUser:     os.Getenv("DB_USER"),           // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),       // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"), // Database host
		DBPort:     getEnv("DB_PORT", "3306"),      // Database port
		DBName:     os.Getenv("DB_NAME"),           // Database name
		JWTSecret:  os.Getenv("JWT_SECRET"),        // JWT secret key
		RedisAddr:  os.Getenv("REDIS_ADDR"),        // Redis server address
		RedisPass:  os.Getenv("REDIS_PASS"),        // Redis password
		RedisDB:    redisDB,                        // Redis database number
		IsProd:     os.Getenv("IS_PROD") == "true", // Is production environment

		BraintreeEnv:        getEnv("BRAINTREE_ENV", "sandbox"),
		BraintreeMerchantID: os.Getenv("BRAINTREE_MERCHANT_ID"),
		BraintreePublicKey:  os.Getenv("BRAINTREE_PUBLIC_KEY"),
		BraintreePrivateKey: os.Getenv("BRAINTREE_PRIVATE_KEY"),
		BraintreeTimeout:    getDuration("BRAINTREE_TIMEOUT", 30*time.Second),

		KafkaBrokers:     splitList(os.Getenv("KAFKA_BROKERS")),
		OrderEventsTopic: getEnv("ORDER_EVENTS_TOPIC", "order-topic"),

		OrderStatusPolicy: getEnv("ORDER_STATUS_POLICY", "free"),
		CatalogCacheTTL:   getDuration("CATALOG_CACHE_TTL", 60*time.Second),
	}
}

// DSN builds the MySQL Data Source Name
func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or a fallback when unset
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses a Go duration ("45s", "2m"), falling back on error
func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// splitList splits a comma separated list, dropping blanks
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
