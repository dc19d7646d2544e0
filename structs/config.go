package structs

import "time"

type Config struct {
	Server    *ServerConfig
	Cors      *CorsConfig
	Database  *DatabaseConfig
	Auth      *AuthConfig
	Cache     *CacheConfig
	Email     *EmailConfig
	Storage   *StorageConfig
	RateLimit *RateLimitConfig
}

type ServerConfig struct {
	AppName        string // SVD Ambalaj
	Environment    string // development, production
	Port           string // :8082
	LogLevel       string // debug, info, warn, error; empty derives from Environment
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int   // in bytes
	BodyLimitBytes int64 // JSON request bodies
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Driver      string // pgx, pg, sqlite
	URL         string
	MaxConns    int
	MinConns    int
	MaxLifetime time.Duration
	MaxIdleTime time.Duration
	PoolTimeout time.Duration // how long a caller waits for a pooled connection
	SlowQuery   time.Duration
	AutoMigrate bool
}

type AuthConfig struct {
	AdminUsername     string
	AdminPassword     string
	AdminPasswordHash string // argon2id, PHC encoded; wins over AdminPassword
	TokenSecret       string
	TokenTTL          time.Duration
}

type CacheConfig struct {
	Enabled  bool
	RedisURL string
	TTL      time.Duration
}

type EmailConfig struct {
	Enabled      bool
	ResendAPIKey string
	From         string
	NotifyTo     []string
}

type StorageConfig struct {
	UploadsDir    string
	PublicBaseURL string
	MaxSizeBytes  int64
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}
