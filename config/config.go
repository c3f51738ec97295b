package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"tracker/validator"

	"github.com/joho/godotenv"
)

// Config gom toàn bộ cấu hình đọc từ .env và biến môi trường
type Config struct {
	Port        string `validate:"required,numeric"`
	Env         string `validate:"required,oneof=dev qc prod"`
	StoreDriver string `validate:"required,oneof=postgres memory"`

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RedisAddr     string
	RedisUser     string
	RedisPassword string

	GoogleClientID string        `validate:"required"`
	SecretKey      string        `validate:"required,min=16"`
	SessionTTL     time.Duration `validate:"required"`
	Timezone       string
	CatalogPath    string
	LogLevel       string
}

// LoadEnv nạp biến môi trường từ tệp `.env`
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: không load được file .env, sử dụng biến môi trường có sẵn: %v", err)
	}
}

// Load đọc cấu hình và validate
func Load() (*Config, error) {
	LoadEnv()
	return FromEnv(os.LookupEnv)
}

// FromEnv dựng Config từ một hàm lookup, tách riêng để test
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	get := func(key, def string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return def
	}

	ttlMinutes, err := strconv.Atoi(get("SESSION_TTL_MINUTES", "4320"))
	if err != nil {
		ttlMinutes = 0
	}

	cfg := &Config{
		Port:           get("PORT", "8083"),
		Env:            get("ENV", "dev"),
		StoreDriver:    get("STORE_DRIVER", "postgres"),
		DBHost:         get("DB_HOST", "localhost"),
		DBPort:         get("DB_PORT", "5432"),
		DBUser:         get("DB_USER", "postgres"),
		DBPassword:     get("DB_PASSWORD", ""),
		DBName:         get("DB_NAME", "tracker"),
		DBSSLMode:      get("DB_SSLMODE", "disable"),
		RedisAddr:      get("REDIS_ADDR", ""),
		RedisUser:      get("REDIS_USER", ""),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		SecretKey:      get("SECRET_KEY_ACCESS_TOKEN", ""),
		SessionTTL:     time.Duration(ttlMinutes) * time.Minute,
		Timezone:       get("TIMEZONE", "UTC"),
		CatalogPath:    get("CATALOG_PATH", ""),
		LogLevel:       get("LOG_LEVEL", "info"),
	}

	if err := validator.ValidateStruct(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseRedis cho biết có cấu hình Redis hay không
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}
