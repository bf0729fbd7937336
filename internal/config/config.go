package config

import (
	"os"
	"strconv"
	"time"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for client file uploads.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// RedisConfig holds the cache connection. An empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AuthConfig holds the bearer token settings of the management API.
type AuthConfig struct {
	JWTSecret string
	Issuer    string
	Audience  string
}

// RecaptchaConfig holds reCAPTCHA v3 credentials.
type RecaptchaConfig struct {
	SiteKey   string
	SecretKey string
	VerifyURL string
	Timeout   time.Duration
}

// Configured reports whether both keys are present.
func (r RecaptchaConfig) Configured() bool {
	return r.SiteKey != "" && r.SecretKey != ""
}

// BillingConfig controls which organizations get spam protection.
type BillingConfig struct {
	// IsCloud switches plan-based gating on. Self-hosted instances use SpamProtectionLicensed.
	IsCloud                bool
	SpamProtectionLicensed bool
	CacheTTL               time.Duration
}

// RateLimitConfig throttles the public client API per client IP.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// UploadConfig bounds client file uploads.
type UploadConfig struct {
	MaxSizeBytes int64
	URLExpiry    time.Duration
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	AppHost       string
	Port          string
	PublicURL     string
	LogLevel      string
	EncryptionKey string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Redis         RedisConfig
	Auth          AuthConfig
	Recaptcha     RecaptchaConfig
	Billing       BillingConfig
	RateLimit     RateLimitConfig
	Upload        UploadConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		AppHost:       getEnv("APP_HOST", "localhost:8080"),
		Port:          getEnv("PORT", "8080"),
		PublicURL:     getEnv("PUBLIC_URL", "http://localhost:8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
		Database: DatabaseConfig{
			Host:               getEnv("DB_HOST", ""),
			Port:               getEnv("DB_PORT", "5432"),
			User:               getEnv("DB_USER", ""),
			Password:           getEnv("DB_PASSWORD", ""),
			Name:               getEnv("DB_NAME", ""),
			SSLMode:            getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:       getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:       getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetimeSec: getEnvInt("DB_CONN_MAX_LIFETIME_SEC", 300),
		},
		MinIO: MinIOConfig{
			Endpoint:  getEnv("MINIO_ENDPOINT", ""),
			AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey: getEnv("MINIO_SECRET_KEY", ""),
			Bucket:    getEnv("MINIO_BUCKET", ""),
			UseSSL:    getEnvBool("MINIO_USE_SSL", false),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			Issuer:    getEnv("JWT_ISSUER", ""),
			Audience:  getEnv("JWT_AUDIENCE", ""),
		},
		Recaptcha: RecaptchaConfig{
			SiteKey:   getEnv("RECAPTCHA_SITE_KEY", ""),
			SecretKey: getEnv("RECAPTCHA_SECRET_KEY", ""),
			VerifyURL: getEnv("RECAPTCHA_VERIFY_URL", "https://www.google.com/recaptcha/api/siteverify"),
			Timeout:   getEnvDuration("RECAPTCHA_TIMEOUT", 5*time.Second),
		},
		Billing: BillingConfig{
			IsCloud:                getEnvBool("IS_CLOUD", false),
			SpamProtectionLicensed: getEnvBool("LICENSE_SPAM_PROTECTION", false),
			CacheTTL:               getEnvDuration("BILLING_CACHE_TTL", 5*time.Minute),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getEnvFloat("CLIENT_RATE_LIMIT_RPS", 10),
			Burst:             getEnvInt("CLIENT_RATE_LIMIT_BURST", 20),
		},
		Upload: UploadConfig{
			MaxSizeBytes: int64(getEnvInt("UPLOAD_MAX_SIZE_BYTES", 10<<20)),
			URLExpiry:    getEnvDuration("UPLOAD_URL_EXPIRY", 15*time.Minute),
		},
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}
