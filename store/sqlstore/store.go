// Package sqlstore provides a relgen.Store backed by database/sql.
//
// All collections share one table keyed by (collection, row_key). The
// table is created by Open and OpenDB unless WithoutMigration is given.
//
//	s, err := sqlstore.Open(ctx, "sqlite", "file:app.db?_pragma=busy_timeout(5000)")
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
// Supported drivers are sqlite (modernc.org/sqlite), pgx and postgres
// (github.com/jackc/pgx/v5, github.com/lib/pq) and mysql.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/syssam/relgen"
)

// Option configures a Store.
type Option func(*Store) error

// WithTable sets the table rows are stored in.
func WithTable(name string) Option {
	return func(s *Store) error {
		if !isValidIdentifier(name) {
			return fmt.Errorf("sqlstore: invalid table name %q", name)
		}
		s.table = name
		return nil
	}
}

// WithLogger logs every statement at debug level, and failed ones at warn
// level.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Store) error {
		s.log = &l
		return nil
	}
}

// WithoutMigration skips the creation of the table.
func WithoutMigration() Option {
	return func(s *Store) error {
		s.migrate = false
		return nil
	}
}

// Store is a relgen.Store over a SQL database.
type Store struct {
	db      *sql.DB
	conn    ExecQuerier
	dialect string
	table   string
	log     *zerolog.Logger
	migrate bool
	stmt    statements
}

// Open opens the database with the given driver and data source name.
func Open(ctx context.Context, driver, source string, opts ...Option) (*Store, error) {
	dialect, err := dialectOf(driver)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}
	if dialect == SQLite {
		// A single connection serializes writers and keeps :memory:
		// databases alive across statements.
		db.SetMaxOpenConns(1)
	}
	s, err := OpenDB(ctx, dialect, db, opts...)
	if err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

// OpenDB wraps an open database of the given dialect.
func OpenDB(ctx context.Context, dialect string, db *sql.DB, opts ...Option) (*Store, error) {
	switch dialect {
	case SQLite, Postgres, MySQL:
	default:
		return nil, fmt.Errorf("sqlstore: unsupported dialect %q", dialect)
	}
	s := &Store{db: db, conn: db, dialect: dialect, table: DefaultTable, migrate: true}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	if s.log != nil {
		s.conn = debugConn{ExecQuerier: db, log: *s.log}
	}
	s.stmt = newStatements(dialect, s.table)
	if s.migrate {
		if err := s.Migrate(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Migrate creates the table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.conn.ExecContext(ctx, s.stmt.create); err != nil {
		return fmt.Errorf("sqlstore: create table %s: %w", s.table, err)
	}
	return nil
}

// Create implements relgen.Store.
func (s *Store) Create(ctx context.Context, collection, key string, content []byte) (relgen.Ref, error) {
	if _, err := s.conn.ExecContext(ctx, s.stmt.insert, collection, key, content); err != nil {
		return relgen.Ref{}, fmt.Errorf("sqlstore: insert: %w", err)
	}
	return relgen.Ref{Collection: collection, Key: key}, nil
}

// Select implements relgen.Store.
func (s *Store) Select(ctx context.Context, collection, key string) ([]byte, bool, error) {
	var content []byte
	err := s.conn.QueryRowContext(ctx, s.stmt.selectOne, collection, key).Scan(&content)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("sqlstore: select: %w", err)
	}
	return content, true, nil
}

// Update implements relgen.Store. Some drivers report zero affected rows
// when the content is unchanged; existence is then checked explicitly.
func (s *Store) Update(ctx context.Context, collection, key string, content []byte) ([]byte, bool, error) {
	res, err := s.conn.ExecContext(ctx, s.stmt.update, content, collection, key)
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, false, fmt.Errorf("sqlstore: update: %w", err)
	}
	if n == 0 {
		var one int
		err := s.conn.QueryRowContext(ctx, s.stmt.exists, collection, key).Scan(&one)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, false, nil
		case err != nil:
			return nil, false, fmt.Errorf("sqlstore: update: %w", err)
		}
	}
	return content, true, nil
}

// Dialect returns the SQL dialect of the store.
func (s *Store) Dialect() string { return s.dialect }

// DB returns the underlying database.
func (s *Store) DB() *sql.DB { return s.db }

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

var _ relgen.Store = (*Store)(nil)
