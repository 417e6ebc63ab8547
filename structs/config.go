package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Auth     *AuthConfig
	Cache    *CacheConfig
	Storage  *StorageConfig
}

type ServerConfig struct {
	AppName         string        // Shop Admin
	Environment     string        // development, production
	Port            string        // :8082
	ReadTimeout     time.Duration // in seconds
	WriteTimeout    time.Duration // in seconds
	IdleTimeout     time.Duration // in seconds
	ShutdownTimeout time.Duration
	MaxHeaderBytes  int   // in bytes
	MaxBodyBytes    int64 // in bytes, multipart uploads included
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type DatabaseConfig struct {
	Driver       string // pgdriver or pgx
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration
	MaxIdleTime  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	SlowQuery    time.Duration
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	BlacklistCacheTTL time.Duration
	RateLimit         int
	RateWindow        time.Duration
}

type CacheConfig struct {
	Address         string
	Username        string
	Password        string
	DB              int
	PoolSize        int
	MinIdleConns    int
	MaxIdleConns    int
	PoolTimeout     time.Duration
	IdleTimeout     time.Duration
	DialTimeout     time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	MaxRetries      int
	MinRetryBackoff time.Duration
	MaxRetryBackoff time.Duration
}

type StorageConfig struct {
	PublicRoot  string // directory backing the public disk
	URLPrefix   string // route the public disk is served under
	MaxUploadKB int64
}
