package sqlcount

import (
	"context"
	"database/sql"
)

// DB wraps a *sql.DB so statements issued through it are visible to Capture.
type DB struct {
	*sql.DB
	c *Counter
}

// WrapDB attaches the Counter to a *sql.DB connection.
func (c *Counter) WrapDB(db *sql.DB) *DB {
	return &DB{DB: db, c: c}
}

func (db *DB) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	db.c.observe(ctx, q)
	return db.DB.ExecContext(ctx, q, args...)
}

func (db *DB) Exec(q string, args ...any) (sql.Result, error) {
	return db.ExecContext(context.Background(), q, args...)
}

func (db *DB) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	db.c.observe(ctx, q)
	return db.DB.QueryContext(ctx, q, args...)
}

func (db *DB) Query(q string, args ...any) (*sql.Rows, error) {
	return db.QueryContext(context.Background(), q, args...)
}

func (db *DB) QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row {
	db.c.observe(ctx, q)
	return db.DB.QueryRowContext(ctx, q, args...)
}

func (db *DB) QueryRow(q string, args ...any) *sql.Row {
	return db.QueryRowContext(context.Background(), q, args...)
}

// PrepareContext prepares q; each execution of the statement is captured, not the preparation.
func (db *DB) PrepareContext(ctx context.Context, q string) (*Stmt, error) {
	s, err := db.DB.PrepareContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Stmt{Stmt: s, c: db.c, query: q}, nil
}

func (db *DB) Prepare(q string) (*Stmt, error) {
	return db.PrepareContext(context.Background(), q)
}

// Tx wraps a *sql.Tx started from a DB.
type Tx struct {
	*sql.Tx
	c *Counter
}

// BeginTx starts a wrapped transaction whose statements are captured too.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*Tx, error) {
	t, err := db.DB.BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{Tx: t, c: db.c}, nil
}

func (db *DB) Begin() (*Tx, error) {
	return db.BeginTx(context.Background(), nil)
}

func (t *Tx) ExecContext(ctx context.Context, q string, args ...any) (sql.Result, error) {
	t.c.observe(ctx, q)
	return t.Tx.ExecContext(ctx, q, args...)
}

func (t *Tx) Exec(q string, args ...any) (sql.Result, error) {
	return t.ExecContext(context.Background(), q, args...)
}

func (t *Tx) QueryContext(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	t.c.observe(ctx, q)
	return t.Tx.QueryContext(ctx, q, args...)
}

func (t *Tx) Query(q string, args ...any) (*sql.Rows, error) {
	return t.QueryContext(context.Background(), q, args...)
}

func (t *Tx) QueryRowContext(ctx context.Context, q string, args ...any) *sql.Row {
	t.c.observe(ctx, q)
	return t.Tx.QueryRowContext(ctx, q, args...)
}

func (t *Tx) QueryRow(q string, args ...any) *sql.Row {
	return t.QueryRowContext(context.Background(), q, args...)
}

func (t *Tx) PrepareContext(ctx context.Context, q string) (*Stmt, error) {
	s, err := t.Tx.PrepareContext(ctx, q)
	if err != nil {
		return nil, err
	}
	return &Stmt{Stmt: s, c: t.c, query: q}, nil
}

func (t *Tx) Prepare(q string) (*Stmt, error) {
	return t.PrepareContext(context.Background(), q)
}

// Stmt wraps a prepared statement and remembers its text.
type Stmt struct {
	*sql.Stmt
	c     *Counter
	query string
}

func (s *Stmt) ExecContext(ctx context.Context, args ...any) (sql.Result, error) {
	s.c.observe(ctx, s.query)
	return s.Stmt.ExecContext(ctx, args...)
}

func (s *Stmt) Exec(args ...any) (sql.Result, error) {
	return s.ExecContext(context.Background(), args...)
}

func (s *Stmt) QueryContext(ctx context.Context, args ...any) (*sql.Rows, error) {
	s.c.observe(ctx, s.query)
	return s.Stmt.QueryContext(ctx, args...)
}

func (s *Stmt) Query(args ...any) (*sql.Rows, error) {
	return s.QueryContext(context.Background(), args...)
}

func (s *Stmt) QueryRowContext(ctx context.Context, args ...any) *sql.Row {
	s.c.observe(ctx, s.query)
	return s.Stmt.QueryRowContext(ctx, args...)
}

func (s *Stmt) QueryRow(args ...any) *sql.Row {
	return s.QueryRowContext(context.Background(), args...)
}
