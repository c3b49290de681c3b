package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"kycportal/internal/domain"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	DB      DBConfig
	JWT     JWTConfig
	Storage StorageConfig
	S3      S3Config
	Remote  RemoteConfig
	Log     LogConfig
	CORS    CORSConfig
	Email   EmailConfig
	KYC     KYCConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
	// MaxUploadMB bounds multipart request bodies before catalog limits apply.
	MaxUploadMB int64 `mapstructure:"max_upload_mb"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// JWTConfig holds settings for the bearer tokens issued by the portal.
type JWTConfig struct {
	Secret            string        `mapstructure:"secret"`
	AccessTokenExpiry time.Duration `mapstructure:"access_expiry"`
	Issuer            string        `mapstructure:"issuer"`
}

// StorageConfig selects where document bytes are kept.
type StorageConfig struct {
	Provider      string        `mapstructure:"provider"` // "s3" or "remote"
	PresignExpiry time.Duration `mapstructure:"presign_expiry"`
}

// S3Config holds AWS S3 settings.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// RemoteConfig holds settings for the remote document-storage endpoint.
type RemoteConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// EmailConfig holds email delivery settings.
type EmailConfig struct {
	Provider    string `mapstructure:"provider"`
	Region      string `mapstructure:"region"`
	FromAddress string `mapstructure:"from_address"`
	FromName    string `mapstructure:"from_name"`
	FrontendURL string `mapstructure:"frontend_url"`
}

// KYCConfig holds workflow settings.
type KYCConfig struct {
	// CatalogFile points to a YAML or JSON requirement catalog. Empty selects
	// the built-in catalog.
	CatalogFile          string        `mapstructure:"catalog_file"`
	SessionTTL           time.Duration `mapstructure:"session_ttl"`
	SessionCacheSize     int           `mapstructure:"session_cache_size"`
	StatusUpdateAttempts uint          `mapstructure:"status_update_attempts"`
	StatusUpdateDelay    time.Duration `mapstructure:"status_update_delay"`
}

// MetricsConfig holds Prometheus settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the KYCPORTAL_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KYCPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.max_upload_mb", 12)

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "kycportal")
	v.SetDefault("db.password", "kycportal_secret")
	v.SetDefault("db.name", "kycportal_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// JWT defaults
	v.SetDefault("jwt.secret", "change-me-in-production")
	v.SetDefault("jwt.access_expiry", "15m")
	v.SetDefault("jwt.issuer", "kycportal")

	// Storage defaults
	v.SetDefault("storage.provider", "s3")
	v.SetDefault("storage.presign_expiry", "15m")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.bucket", "kycportal-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("remote.base_url", "http://localhost:9000")
	v.SetDefault("remote.timeout", "60s")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Email defaults
	v.SetDefault("email.provider", "noop")
	v.SetDefault("email.region", "us-east-1")
	v.SetDefault("email.from_address", "noreply@kycportal.local")
	v.SetDefault("email.from_name", "KYC Portal")
	v.SetDefault("email.frontend_url", "http://localhost:3000")

	// KYC defaults
	v.SetDefault("kyc.catalog_file", "")
	v.SetDefault("kyc.session_ttl", "10m")
	v.SetDefault("kyc.session_cache_size", 1024)
	v.SetDefault("kyc.status_update_attempts", 3)
	v.SetDefault("kyc.status_update_delay", "200ms")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                "KYCPORTAL_SERVER_PORT",
		"server.read_timeout":        "KYCPORTAL_SERVER_READ_TIMEOUT",
		"server.write_timeout":       "KYCPORTAL_SERVER_WRITE_TIMEOUT",
		"server.environment":         "KYCPORTAL_SERVER_ENVIRONMENT",
		"server.max_upload_mb":       "KYCPORTAL_SERVER_MAX_UPLOAD_MB",
		"db.host":                    "KYCPORTAL_DB_HOST",
		"db.port":                    "KYCPORTAL_DB_PORT",
		"db.user":                    "KYCPORTAL_DB_USER",
		"db.password":                "KYCPORTAL_DB_PASSWORD",
		"db.name":                    "KYCPORTAL_DB_NAME",
		"db.sslmode":                 "KYCPORTAL_DB_SSLMODE",
		"db.max_open":                "KYCPORTAL_DB_MAX_OPEN",
		"db.max_idle":                "KYCPORTAL_DB_MAX_IDLE",
		"jwt.secret":                 "KYCPORTAL_JWT_SECRET",
		"jwt.access_expiry":          "KYCPORTAL_JWT_ACCESS_EXPIRY",
		"jwt.issuer":                 "KYCPORTAL_JWT_ISSUER",
		"storage.provider":           "KYCPORTAL_STORAGE_PROVIDER",
		"storage.presign_expiry":     "KYCPORTAL_STORAGE_PRESIGN_EXPIRY",
		"s3.region":                  "KYCPORTAL_S3_REGION",
		"s3.bucket":                  "KYCPORTAL_S3_BUCKET",
		"s3.endpoint":                "KYCPORTAL_S3_ENDPOINT",
		"s3.access_key":              "KYCPORTAL_S3_ACCESS_KEY",
		"s3.secret_key":              "KYCPORTAL_S3_SECRET_KEY",
		"remote.base_url":            "KYCPORTAL_REMOTE_BASE_URL",
		"remote.timeout":             "KYCPORTAL_REMOTE_TIMEOUT",
		"log.level":                  "KYCPORTAL_LOG_LEVEL",
		"log.format":                 "KYCPORTAL_LOG_FORMAT",
		"cors.allowed_origins":       "KYCPORTAL_CORS_ALLOWED_ORIGINS",
		"email.provider":             "KYCPORTAL_EMAIL_PROVIDER",
		"email.region":               "KYCPORTAL_EMAIL_REGION",
		"email.from_address":         "KYCPORTAL_EMAIL_FROM_ADDRESS",
		"email.from_name":            "KYCPORTAL_EMAIL_FROM_NAME",
		"email.frontend_url":         "KYCPORTAL_EMAIL_FRONTEND_URL",
		"kyc.catalog_file":           "KYCPORTAL_KYC_CATALOG_FILE",
		"kyc.session_ttl":            "KYCPORTAL_KYC_SESSION_TTL",
		"kyc.session_cache_size":     "KYCPORTAL_KYC_SESSION_CACHE_SIZE",
		"kyc.status_update_attempts": "KYCPORTAL_KYC_STATUS_UPDATE_ATTEMPTS",
		"kyc.status_update_delay":    "KYCPORTAL_KYC_STATUS_UPDATE_DELAY",
		"metrics.enabled":            "KYCPORTAL_METRICS_ENABLED",
		"metrics.path":               "KYCPORTAL_METRICS_PATH",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Platforms like Railway and Render set PORT. Use it unless the prefixed variable is set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KYCPORTAL_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
		MaxUploadMB:  v.GetInt64("server.max_upload_mb"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.JWT = JWTConfig{
		Secret:            v.GetString("jwt.secret"),
		AccessTokenExpiry: v.GetDuration("jwt.access_expiry"),
		Issuer:            v.GetString("jwt.issuer"),
	}
	cfg.Storage = StorageConfig{
		Provider:      strings.ToLower(v.GetString("storage.provider")),
		PresignExpiry: v.GetDuration("storage.presign_expiry"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}
	cfg.Remote = RemoteConfig{
		BaseURL: strings.TrimRight(v.GetString("remote.base_url"), "/"),
		Timeout: v.GetDuration("remote.timeout"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitList(v.GetString("cors.allowed_origins")),
	}
	cfg.Email = EmailConfig{
		Provider:    v.GetString("email.provider"),
		Region:      v.GetString("email.region"),
		FromAddress: v.GetString("email.from_address"),
		FromName:    v.GetString("email.from_name"),
		FrontendURL: v.GetString("email.frontend_url"),
	}
	cfg.KYC = KYCConfig{
		CatalogFile:          v.GetString("kyc.catalog_file"),
		SessionTTL:           v.GetDuration("kyc.session_ttl"),
		SessionCacheSize:     v.GetInt("kyc.session_cache_size"),
		StatusUpdateAttempts: v.GetUint("kyc.status_update_attempts"),
		StatusUpdateDelay:    v.GetDuration("kyc.status_update_delay"),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	switch cfg.Storage.Provider {
	case "s3", "remote":
	default:
		return nil, fmt.Errorf("config: unknown storage provider %q", cfg.Storage.Provider)
	}

	return cfg, nil
}

// LoadRequirements reads a requirement catalog file. The file holds a
// top-level "requirements" list; its format follows the file extension.
func LoadRequirements(path string) ([]domain.Requirement, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config.LoadRequirements: %w", err)
	}

	var file struct {
		Requirements []domain.Requirement `mapstructure:"requirements"`
	}
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("config.LoadRequirements: decoding %s: %w", path, err)
	}
	if len(file.Requirements) == 0 {
		return nil, fmt.Errorf("config.LoadRequirements: %s: %w: no requirements", path, domain.ErrInvalidCatalog)
	}
	return file.Requirements, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
