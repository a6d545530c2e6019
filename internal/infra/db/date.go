package db

import (
	"fmt"
	"time"

	"newsdesk/internal/domain/entity"
)

// Date scans a DATE column regardless of how the driver reports it.
// pgx and modernc return time.Time; SQLite columns written as text may come back
// as string or []byte.
type Date struct {
	Time time.Time
}

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		d.Time = entity.Day(v)
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	case nil:
		return fmt.Errorf("scan date: NULL value")
	default:
		return fmt.Errorf("scan date: unsupported type %T", src)
	}
}

func (d *Date) parse(s string) error {
	for _, layout := range []string{entity.DateLayout, time.RFC3339Nano, "2006-01-02 15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = entity.Day(t)
			return nil
		}
	}
	return fmt.Errorf("scan date: cannot parse %q", s)
}

// DateArg converts t into the parameter the dialect stores in a DATE column.
func (d Dialect) DateArg(t time.Time) any {
	if d == DialectPostgres {
		return entity.Day(t)
	}
	return entity.Day(t).Format(entity.DateLayout)
}
