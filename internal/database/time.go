package database

import (
	"fmt"
	"time"
)

// Layouts used to persist times in SQLite TEXT columns. Both sort lexically.
const (
	DateLayout      = "2006-01-02"
	TimestampLayout = "2006-01-02T15:04:05.000000000Z"
)

// parseLayouts covers what each driver may hand back for a date or timestamp column.
var parseLayouts = []string{
	TimestampLayout,
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05",
	DateLayout,
}

// Date returns the argument to bind for a date-only column.
func (db *DB) Date(t time.Time) any {
	if db.Dialect == Postgres {
		return t.UTC()
	}

	return t.UTC().Format(DateLayout)
}

// Timestamp returns the argument to bind for a timestamp column.
func (db *DB) Timestamp(t time.Time) any {
	if db.Dialect == Postgres {
		return t.UTC()
	}

	return t.UTC().Format(TimestampLayout)
}

// ScanTime returns a sql.Scanner that stores a date or timestamp column into dst as UTC.
func ScanTime(dst *time.Time) *TimeScanner {
	return &TimeScanner{dst: dst}
}

type TimeScanner struct {
	dst *time.Time
}

func (s *TimeScanner) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*s.dst = time.Time{}
		return nil
	case time.Time:
		*s.dst = v.UTC()
		return nil
	case string:
		return s.parse(v)
	case []byte:
		return s.parse(string(v))
	}

	return fmt.Errorf("scanning time: unsupported type %T", src)
}

func (s *TimeScanner) parse(v string) error {
	for _, layout := range parseLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			*s.dst = t.UTC()
			return nil
		}
	}

	return fmt.Errorf("scanning time: unrecognised value %q", v)
}
