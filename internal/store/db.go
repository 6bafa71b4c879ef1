// Package store persists the content catalog in SQLite or PostgreSQL.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/mattn/go-sqlite3"

	"github.com/starford/maqam/internal/apperr"
)

// Dialect selects SQL flavour and driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "pgx"
)

// DialectOf infers the dialect from a connection string.
func DialectOf(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return Postgres
	}
	return SQLite
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d Dialect) rebind(query string) string {
	if d != Postgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DB wraps a sql.DB with catalog operations.
type DB struct {
	conn    *sql.DB
	dialect Dialect
	now     func() time.Time
}

// Open connects to dsn and applies the schema.
// A dsn starting with postgres:// selects PostgreSQL; anything else is a SQLite file path.
func Open(ctx context.Context, dsn string) (*DB, error) {
	dialect := DialectOf(dsn)
	source := dsn
	if dialect == SQLite {
		source = strings.TrimPrefix(dsn, "sqlite://")
		if !strings.Contains(source, "?") {
			source += "?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"
		}
	}

	conn, err := sql.Open(string(dialect), source)
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	db := New(conn, dialect)
	if err := db.migrate(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// New wraps an open connection without touching the schema.
func New(conn *sql.DB, dialect Dialect) *DB {
	return &DB{conn: conn, dialect: dialect, now: time.Now}
}

// SetClock overrides the timestamp source for created_at and updated_at.
func (db *DB) SetClock(now func() time.Time) {
	db.now = now
}

// Dialect reports the SQL dialect in use.
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// Ping checks connectivity.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate(ctx context.Context) error {
	for _, stmt := range schemaFor(db.dialect) {
		if _, err := db.conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store: apply schema: %w", err)
		}
	}
	return nil
}

func (db *DB) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.conn.QueryContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return db.conn.QueryRowContext(ctx, db.dialect.rebind(query), args...)
}

func (db *DB) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.conn.ExecContext(ctx, db.dialect.rebind(query), args...)
}

// Tx is a single catalog transaction.
type Tx struct {
	tx      *sql.Tx
	dialect Dialect
	now     time.Time
}

// InTx runs fn in a transaction, committing when fn returns nil.
func (db *DB) InTx(ctx context.Context, fn func(*Tx) error) error {
	sqlTx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin tx: %w", err)
	}
	defer sqlTx.Rollback() //nolint:errcheck // no-op after commit

	if err := fn(&Tx{tx: sqlTx, dialect: db.dialect, now: db.now().UTC()}); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

func (t *Tx) query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return t.tx.QueryContext(ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) queryRow(ctx context.Context, query string, args ...any) *sql.Row {
	return t.tx.QueryRowContext(ctx, t.dialect.rebind(query), args...)
}

func (t *Tx) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return t.tx.ExecContext(ctx, t.dialect.rebind(query), args...)
}

// Count returns the number of rows of kind.
func (t *Tx) Count(ctx context.Context, kind Kind) (int, error) {
	if !kind.valid() {
		return 0, fmt.Errorf("store: unknown kind %q", kind)
	}
	var n int
	if err := t.queryRow(ctx, `SELECT COUNT(*) FROM `+string(kind)).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count %s: %w", kind, err)
	}
	return n, nil
}

// DeleteAll removes every row of kind and returns how many were deleted.
func (t *Tx) DeleteAll(ctx context.Context, kind Kind) (int64, error) {
	if !kind.valid() {
		return 0, fmt.Errorf("store: unknown kind %q", kind)
	}
	res, err := t.exec(ctx, `DELETE FROM `+string(kind))
	if err != nil {
		return 0, fmt.Errorf("store: delete all %s: %w", kind, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// mapWriteErr turns driver constraint errors into apperr kinds.
func mapWriteErr(op string, err error) error {
	switch {
	case isUniqueViolation(err):
		return fmt.Errorf("store: %s: %w: %v", op, apperr.ErrConflict, err)
	case isForeignKeyViolation(err):
		return fmt.Errorf("store: %s: %w: %v", op, apperr.ErrValidation, err)
	default:
		return fmt.Errorf("store: %s: %w", op, err)
	}
}

func isUniqueViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}

func notFound(kind Kind, id int64) error {
	return fmt.Errorf("store: %s %d: %w", kind, id, apperr.ErrNotFound)
}

// setList accumulates the assignments of a partial update.
type setList struct {
	cols []string
	args []any
}

func (s *setList) add(col string, v any) {
	s.cols = append(s.cols, col+" = ?")
	s.args = append(s.args, v)
}

func (s *setList) empty() bool {
	return len(s.cols) == 0
}

// statement renders UPDATE table SET ..., updated_at = ? WHERE id = ?.
func (s *setList) statement(table Kind, now time.Time, id int64) (string, []any) {
	q := `UPDATE ` + string(table) + ` SET ` + strings.Join(s.cols, ", ") + `, updated_at = ? WHERE id = ?`
	return q, append(s.args, now, id)
}

func deleteByID(ctx context.Context, t *Tx, kind Kind, id int64) error {
	res, err := t.exec(ctx, `DELETE FROM `+string(kind)+` WHERE id = ?`, id)
	if err != nil {
		return mapWriteErr("delete "+string(kind), err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return notFound(kind, id)
	}
	return nil
}
