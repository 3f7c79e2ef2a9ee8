// Package sqlite implements storage.IStorage on SQLite through bun, using the
// pure Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"taxiservice/migrations"
	"taxiservice/pkg/logger"
	"taxiservice/storage"
)

// lowerFunc is a Unicode-aware LOWER; SQLite's built-in one folds ASCII only,
// while search patterns are lowered with strings.ToLower.
const lowerFunc = "unicode_lower"

func init() {
	if err := sqlite.RegisterDeterministicScalarFunction(lowerFunc, 1, unicodeLower); err != nil {
		panic(err)
	}
}

func unicodeLower(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

type Store struct {
	db  *bun.DB
	log logger.ILogger
}

// New opens dsn and applies the embedded schema. A single connection is kept
// so that ":memory:" databases survive across queries.
func New(ctx context.Context, dsn string, log logger.ILogger) (storage.IStorage, error) {
	sqldb, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Error("failed to open sqlite", logger.Error(err))
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := runMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, err
	}

	log.Info("SQLite connected")

	return &Store{db: db, log: log}, nil
}

func runMigrations(ctx context.Context, db *bun.DB, log logger.ILogger) error {
	entries, err := fs.ReadDir(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to read embedded migrations: %w", err)
	}

	var ups []string
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)

	for _, name := range ups {
		body, err := fs.ReadFile(migrations.FS, "sqlite/"+name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		for _, stmt := range strings.Split(string(body), ";") {
			if strings.TrimSpace(stmt) == "" {
				continue
			}
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("failed to execute migration %s: %w", name, err)
			}
		}
		log.Debug("applied migration", logger.String("file", name))
	}
	return nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Warning("failed to close sqlite", logger.Error(err))
	}
}

func (s *Store) Reset(ctx context.Context) error {
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, table := range []string{"sessions", "cars", "manufacturers", "drivers"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return err
			}
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence")
		return err
	})
}

func (s *Store) Manufacturer() storage.IManufacturerStorage { return NewManufacturerRepo(s.db, s.log) }
func (s *Store) Car() storage.ICarStorage                   { return NewCarRepo(s.db, s.log) }
func (s *Store) Driver() storage.IDriverStorage             { return NewDriverRepo(s.db, s.log) }
func (s *Store) Session() storage.ISessionStorage           { return NewSessionRepo(s.db, s.log) }

// searchWhere is the case-insensitive literal substring predicate on column.
func searchWhere(q *bun.SelectQuery, column, search string) *bun.SelectQuery {
	if search == "" {
		return q
	}
	return q.Where(lowerFunc+"(?) LIKE ? ESCAPE '"+storage.LikeEscape+"'", bun.Ident(column), storage.LikePattern(search))
}

func window(q *bun.SelectQuery, filter storage.ListFilter) *bun.SelectQuery {
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit).Offset(filter.Offset)
	}
	return q
}

func mapError(err error) error {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) &&
		sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT &&
		strings.Contains(sqliteErr.Error(), "UNIQUE") {
		return storage.ErrAlreadyExists
	}
	return err
}
