package config

import (
	"shop_admin_server/structs"
	"sync"
	"time"
)

var (
	configInstance *structs.Config
	configOnce     sync.Once
)

func GetConfig() *structs.Config {
	configOnce.Do(func() {
		configInstance = &structs.Config{
			Server: &structs.ServerConfig{
				AppName:         getEnvAsString("APP_NAME", "Shop Admin"),
				Environment:     getEnvAsString("APP_ENV", "development"),
				Port:            getEnvAsString("APP_PORT", ":8082"),
				ReadTimeout:     getEnvAsTimeDuration("SERVER_READ_TIME_OUT", 15*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("SERVER_WRITE_TIME_OUT", 30*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("SERVER_IDLE_TIME_OUT", 60*time.Second),
				ShutdownTimeout: getEnvAsTimeDuration("SERVER_SHUTDOWN_TIME_OUT", 10*time.Second),
				MaxHeaderBytes:  getEnvAsInt("SERVER_MAX_HEADER_BYTES", 1<<20), // 1 MB
				MaxBodyBytes:    int64(getEnvAsInt("SERVER_MAX_BODY_BYTES", 64<<20)),
			},
			Cors: &structs.CorsConfig{
				AllowOrigins:     getEnvAsSlice("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
				AllowMethods:     getEnvAsSlice("CORS_ALLOW_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
				AllowHeaders:     getEnvAsSlice("CORS_ALLOW_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
				AllowCredentials: getEnvAsBool("CORS_ALLOW_CREDENTIALS", false),
				ExposedHeaders:   getEnvAsSlice("CORS_EXPOSED_HEADERS", []string{"Content-Length"}),
				MaxAge:           getEnvAsInt("CORS_MAX_AGE", 300),
			},
			Database: &structs.DatabaseConfig{
				Driver:       getEnvAsString("DB_DRIVER", "pgdriver"),
				Host:         getEnvAsString("DB_HOST", "localhost"),
				Port:         getEnvAsInt("DB_PORT", 5432),
				User:         getEnvAsString("DB_USER", "postgres"),
				Password:     getEnvAsString("DB_PASSWORD", "password"),
				Name:         getEnvAsString("DB_NAME", "shop_admin"),
				SSLMode:      getEnvAsString("DB_SSLMODE", "disable"),
				MaxConns:     getEnvAsInt("DB_MAX_CONNS", 10),
				MinConns:     getEnvAsInt("DB_MIN_CONNS", 2),
				MaxLifetime:  getEnvAsTimeDuration("DB_MAX_LIFETIME", 30*time.Minute),
				MaxIdleTime:  getEnvAsTimeDuration("DB_MAX_IDLE_TIME", 5*time.Minute),
				ReadTimeout:  getEnvAsTimeDuration("DB_READ_TIMEOUT", 5*time.Second),
				WriteTimeout: getEnvAsTimeDuration("DB_WRITE_TIMEOUT", 5*time.Second),
				SlowQuery:    getEnvAsTimeDuration("DB_SLOW_QUERY", time.Second),
			},
			Auth: &structs.AuthConfig{
				AccessTokenSecret: getEnvAsString("AUTH_ACCESS_TOKEN_SECRET", "default_access_secret"),
				AccessTokenExpiry: getEnvAsTimeDuration("AUTH_ACCESS_TOKEN_EXPIRY", 24*time.Hour),
				BlacklistCacheTTL: getEnvAsTimeDuration("AUTH_BLACKLIST_TTL", 24*time.Hour),
				RateLimit:         getEnvAsInt("AUTH_RATE_LIMIT", 10),
				RateWindow:        getEnvAsTimeDuration("AUTH_RATE_WINDOW", time.Minute),
			},
			Cache: &structs.CacheConfig{
				Address:         getEnvAsString("REDIS_ADDRESS", "localhost:6379"),
				Username:        getEnvAsString("REDIS_USERNAME", ""),
				Password:        getEnvAsString("REDIS_PASSWORD", ""),
				DB:              getEnvAsInt("REDIS_DB", 0),
				PoolSize:        getEnvAsInt("REDIS_POOL_SIZE", 10),
				MinIdleConns:    getEnvAsInt("REDIS_MIN_IDLE_CONNS", 2),
				MaxIdleConns:    getEnvAsInt("REDIS_MAX_IDLE_CONNS", 5),
				PoolTimeout:     getEnvAsTimeDuration("REDIS_POOL_TIMEOUT", 4*time.Second),
				IdleTimeout:     getEnvAsTimeDuration("REDIS_IDLE_TIMEOUT", 5*time.Minute),
				DialTimeout:     getEnvAsTimeDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
				ReadTimeout:     getEnvAsTimeDuration("REDIS_READ_TIMEOUT", 3*time.Second),
				WriteTimeout:    getEnvAsTimeDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
				MaxRetries:      getEnvAsInt("REDIS_MAX_RETRIES", 3),
				MinRetryBackoff: getEnvAsTimeDuration("REDIS_MIN_RETRY_BACKOFF", 8*time.Millisecond),
				MaxRetryBackoff: getEnvAsTimeDuration("REDIS_MAX_RETRY_BACKOFF", 512*time.Millisecond),
			},
			Storage: &structs.StorageConfig{
				PublicRoot:  getEnvAsString("STORAGE_PUBLIC_ROOT", "storage/app/public"),
				URLPrefix:   getEnvAsString("STORAGE_URL_PREFIX", "/storage"),
				MaxUploadKB: int64(getEnvAsInt("STORAGE_MAX_UPLOAD_KB", 2048)),
			},
		}
	})
	return configInstance
}

func GetLogLevel() string {
	if IsProduction() {
		return "info"
	}
	return "debug"
}

func IsProduction() bool {
	return GetConfig().Server.Environment == "production"
}
