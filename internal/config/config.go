package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPPort string
	LogLevel string

	StoreDriver string // postgres|memory
	DatabaseURL string
	DBMaxConns  int32
	AutoMigrate bool

	JWTSecret     string
	EncryptionKey string
	TokenTTL      time.Duration

	APIURL         string
	UploadDir      string
	MaxUploadBytes int64
	Storage        StorageConfig

	RedisURL        string
	CatalogCacheTTL time.Duration

	AMQPURL     string
	EventsQueue string

	RateRPS int
	Workers int
}

type StorageConfig struct {
	Backend   string // local|minio
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

// Load reads .env when present, then the process environment. It is called once
// at startup; nothing else reads the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var errs []error
	cfg := Config{
		Env:      get("APP_ENV", "dev"),
		HTTPPort: get("HTTP_PORT", "3000"),
		LogLevel: get("LOG_LEVEL", "info"),

		StoreDriver: strings.ToLower(get("STORE_DRIVER", "postgres")),
		DatabaseURL: get("DATABASE_URL", ""),
		DBMaxConns:  int32(getInt("DB_MAX_CONNS", 10, &errs)),
		AutoMigrate: getBool("APP_MIGRATE", false, &errs),

		JWTSecret:     get("JWT_SECRET", ""),
		EncryptionKey: get("ENCRYPTION_KEY", ""),
		TokenTTL:      getDuration("TOKEN_TTL", 12*time.Hour, &errs),

		APIURL:         strings.TrimRight(get("API_URL", "http://localhost:3000"), "/"),
		UploadDir:      get("UPLOAD_DIR", "uploads"),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", 1<<20, &errs)),
		Storage: StorageConfig{
			Backend:   strings.ToLower(get("STORAGE_BACKEND", "local")),
			Endpoint:  get("MINIO_ENDPOINT", ""),
			AccessKey: get("MINIO_ACCESS_KEY", ""),
			SecretKey: get("MINIO_SECRET_KEY", ""),
			Bucket:    get("MINIO_BUCKET", "wallet"),
			UseSSL:    getBool("MINIO_USE_SSL", false, &errs),
			PublicURL: strings.TrimRight(get("MINIO_PUBLIC_URL", ""), "/"),
		},

		RedisURL:        get("REDIS_URL", ""),
		CatalogCacheTTL: getDuration("CATALOG_CACHE_TTL", 5*time.Minute, &errs),

		AMQPURL:     get("AMQP_URL", ""),
		EventsQueue: get("EVENTS_QUEUE", "wallet.settlements"),

		RateRPS: getInt("RATE_RPS", 20, &errs),
		Workers: getInt("WORKERS", 4, &errs),
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDatabaseURL is the subset of Load used by the migrate command, which
// needs no secrets.
func LoadDatabaseURL() (string, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("load .env: %w", err)
	}
	url := get("DATABASE_URL", "")
	if url == "" {
		return "", errors.New("DATABASE_URL is required")
	}
	return url, nil
}

// Validate checks cross-field requirements.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.EncryptionKey == "" {
		errs = append(errs, errors.New("ENCRYPTION_KEY is required"))
	}
	if c.JWTSecret != "" && c.JWTSecret == c.EncryptionKey {
		errs = append(errs, errors.New("JWT_SECRET and ENCRYPTION_KEY must differ"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}

	switch c.StoreDriver {
	case "postgres":
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required when STORE_DRIVER=postgres"))
		}
	case "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver))
	}

	switch c.Storage.Backend {
	case "local":
	case "minio":
		if c.Storage.Endpoint == "" || c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
			errs = append(errs, errors.New("MINIO_ENDPOINT, MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required when STORAGE_BACKEND=minio"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Storage.Backend))
	}

	if c.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_BYTES must be positive"))
	}
	if c.Workers < 1 {
		errs = append(errs, errors.New("WORKERS must be at least 1"))
	}
	return errors.Join(errs...)
}

func get(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(key string, def int, errs *[]error) int {
	v := get(key, "")
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return i
}

func getBool(key string, def bool, errs *[]error) bool {
	v := get(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return b
}

func getDuration(key string, def time.Duration, errs *[]error) time.Duration {
	v := get(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", key, err))
		return def
	}
	return d
}
