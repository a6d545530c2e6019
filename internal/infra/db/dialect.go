package db

import "strings"

// Dialect identifies the SQL flavour behind a connection pool.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// libpqKeys are connection parameters that mark a key=value DSN as Postgres.
var libpqKeys = map[string]bool{
	"host": true, "hostaddr": true, "port": true, "dbname": true, "user": true,
	"password": true, "sslmode": true, "service": true, "connect_timeout": true,
}

// DetectDialect picks the dialect from the DSN.
// postgres:// and postgresql:// URLs and libpq key=value strings naming any known
// parameter select Postgres. Everything else (file paths, file: URIs, sqlite:
// prefixes, :memory:) selects SQLite.
func DetectDialect(dsn string) Dialect {
	lower := strings.ToLower(strings.TrimSpace(dsn))
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return DialectPostgres
	case isKeyValueDSN(lower):
		return DialectPostgres
	default:
		return DialectSQLite
	}
}

func isKeyValueDSN(dsn string) bool {
	for _, field := range strings.Fields(dsn) {
		if key, _, ok := strings.Cut(field, "="); ok && libpqKeys[key] {
			return true
		}
	}
	return false
}

// DriverName returns the database/sql driver registered for the dialect.
func (d Dialect) DriverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "sqlite"
}
