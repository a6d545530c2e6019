package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"newsdesk/internal/config"
	"newsdesk/internal/resilience/retry"
)

// sqlitePragmas are applied to every new SQLite connection.
var sqlitePragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
}

// Open creates and configures a new database connection pool.
//
// The driver is chosen from the DSN (see DetectDialect). Postgres requires user and
// password; SQLite ignores them. The pool is verified with a ping that is retried
// with exponential backoff before giving up.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, Dialect, error) {
	if cfg.DSN == "" {
		return nil, "", fmt.Errorf("open database: DB_DSN not set")
	}

	dialect := DetectDialect(cfg.DSN)
	dsn, err := driverDSN(dialect, cfg)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, "", fmt.Errorf("open database: %w", err)
	}

	applyPool(db, dialect, cfg)

	logger.Info("database connection pool configured",
		slog.String("dialect", string(dialect)),
		slog.Int("max_open_conns", cfg.MaxOpenConns),
		slog.Int("max_idle_conns", cfg.MaxIdleConns),
		slog.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
		slog.Duration("conn_max_idle_time", cfg.ConnMaxIdleTime))

	// Verify connection
	err = retry.Do(ctx, retry.ConnectPolicy(), func() error {
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return db.PingContext(pingCtx)
	})
	if err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established successfully", slog.String("dialect", string(dialect)))
	return db, dialect, nil
}

func applyPool(db *sql.DB, dialect Dialect, cfg config.DatabaseConfig) {
	maxOpen, maxIdle := cfg.MaxOpenConns, cfg.MaxIdleConns
	if dialect == DialectSQLite {
		// One connection keeps :memory: databases shared and serializes writers.
		maxOpen, maxIdle = 1, 1
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

func driverDSN(dialect Dialect, cfg config.DatabaseConfig) (string, error) {
	if dialect == DialectPostgres {
		return postgresDSN(cfg)
	}
	return sqliteDSN(cfg.DSN)
}

// sqliteDSN strips a sqlite:// or sqlite: scheme and appends the connection pragmas.
// A path holding '=' is rejected: it is almost always a mistyped key=value DSN
// and would otherwise create a database file named after it.
func sqliteDSN(dsn string) (string, error) {
	dsn = strings.TrimPrefix(dsn, "sqlite://")
	dsn = strings.TrimPrefix(dsn, "sqlite:")
	if dsn == "" {
		dsn = ":memory:"
	}
	if path, _, _ := strings.Cut(dsn, "?"); strings.Contains(path, "=") {
		return "", fmt.Errorf("DSN %q is neither a postgres connection string nor a SQLite path", dsn)
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(sqlitePragmas, "&"), nil
}

// postgresDSN injects the configured credentials into a URL or key=value DSN.
func postgresDSN(cfg config.DatabaseConfig) (string, error) {
	if cfg.User == "" {
		return "", fmt.Errorf("DB_USER must be set for postgres")
	}
	if cfg.Password == "" {
		return "", fmt.Errorf("DB_PASSWORD must be set for postgres")
	}

	lower := strings.ToLower(cfg.DSN)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		u, err := url.Parse(cfg.DSN)
		if err != nil {
			return "", fmt.Errorf("parse DSN: %w", err)
		}
		u.User = url.UserPassword(cfg.User, cfg.Password)
		return u.String(), nil
	}

	return fmt.Sprintf("%s user=%s password=%s", cfg.DSN, quoteKV(cfg.User), quoteKV(cfg.Password)), nil
}

// quoteKV quotes a libpq key=value value.
func quoteKV(v string) string {
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)
	return "'" + v + "'"
}
