package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/url"
	"shop_admin_server/config"
	"shop_admin_server/structs"
	"shop_admin_server/structs/tables"
	"time"

	"github.com/MonkyMars/gecho"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// DB wraps the bun database connection with additional functionality
type DB struct {
	*bun.DB
}

var instance *DB

// Connect establishes a connection to the database using centralized configuration
func Connect() (*DB, error) {
	logger := config.GetLogger()
	dbCfg := config.GetConfig().Database

	sqldb, err := openSQL(dbCfg)
	if err != nil {
		return nil, err
	}

	// Apply pool settings from configuration
	sqldb.SetMaxOpenConns(dbCfg.MaxConns)
	sqldb.SetMaxIdleConns(dbCfg.MinConns)
	sqldb.SetConnMaxLifetime(dbCfg.MaxLifetime)
	sqldb.SetConnMaxIdleTime(dbCfg.MaxIdleTime)

	db := Wrap(sqldb)
	db.AddQueryHook(&connectionHealthHook{logger: logger, slow: dbCfg.SlowQuery})

	// Test the connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Connected to database successfully", gecho.Field("driver", dbCfg.Driver))

	return db, nil
}

// Wrap puts a bun DB with the postgres dialect around sqldb and registers the
// join models used by m2m relations
func Wrap(sqldb *sql.DB) *DB {
	db := bun.NewDB(sqldb, pgdialect.New())
	db.RegisterModel(tables.JoinModels()...)
	return &DB{db}
}

func openSQL(cfg *structs.DatabaseConfig) (*sql.DB, error) {
	dsn := DSN(cfg)
	switch cfg.Driver {
	case "", "pgdriver":
		connector := pgdriver.NewConnector(
			pgdriver.WithDSN(dsn),
			pgdriver.WithReadTimeout(cfg.ReadTimeout),
			pgdriver.WithWriteTimeout(cfg.WriteTimeout),
		)
		return sql.OpenDB(connector), nil
	case "pgx":
		return sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// DSN renders a postgres URL from the database configuration
func DSN(cfg *structs.DatabaseConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Path:     "/" + cfg.Name,
		RawQuery: url.Values{"sslmode": []string{cfg.SSLMode}}.Encode(),
	}
	return u.String()
}

// Initialize sets up the global database instance using centralized configuration
func Initialize() error {
	db, err := Connect()
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}

	instance = db
	return nil
}

// GetInstance returns the global database instance
func GetInstance() *DB {
	if instance == nil {
		log.Fatal("Database instance is not initialized. Call Initialize() first.")
	}
	return instance
}

// CloseInstance closes the global database instance
func CloseInstance() error {
	if instance != nil {
		return instance.Close()
	}
	return nil
}

// Health checks the database connection health
func (db *DB) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return db.PingContext(ctx)
}

// GetStats returns connection pool statistics for monitoring
func (db *DB) GetStats() sql.DBStats {
	return db.DB.DB.Stats()
}

// connectionHealthHook logs slow queries and dropped connections
type connectionHealthHook struct {
	logger *gecho.Logger
	slow   time.Duration
}

var _ bun.QueryHook = (*connectionHealthHook)(nil)

func (h *connectionHealthHook) BeforeQuery(ctx context.Context, event *bun.QueryEvent) context.Context {
	return ctx
}

func (h *connectionHealthHook) AfterQuery(ctx context.Context, event *bun.QueryEvent) {
	duration := time.Since(event.StartTime)
	if h.slow > 0 && duration > h.slow {
		h.logger.Warn("Slow database query detected",
			gecho.Field("query", event.Query),
			gecho.Field("duration", duration),
		)
	}

	if event.Err != nil && (errors.Is(event.Err, io.EOF) || errors.Is(event.Err, io.ErrUnexpectedEOF)) {
		h.logger.Error("Database connection EOF error - connection may have been closed by server",
			gecho.Field("error", event.Err),
			gecho.Field("query", event.Query),
		)
	}
}
