package mocks

import (
	"context"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
)

// Query records one statement sent through a mocked Queryer.
type Query struct {
	Sql  string
	Args []interface{}
}

// Row adapts a scan function into a pgx.Row.
type Row func(dest ...interface{}) error

func (r Row) Scan(dest ...interface{}) error { return r(dest...) }

// Rows is a scripted pgx.Rows over a fixed list of scan functions.
// Methods the repositories never touch fall through to the nil
// embedded interface and panic when reached.
type Rows struct {
	pgx.Rows
	Scans  []func(dest ...interface{}) error
	Closed bool

	cursor int
}

func (r *Rows) Next() bool {
	return r.cursor < len(r.Scans)
}

func (r *Rows) Scan(dest ...interface{}) error {
	scan := r.Scans[r.cursor]
	r.cursor += 1
	return scan(dest...)
}

func (r *Rows) Close() {
	r.Closed = true
}

func (r *Rows) Err() error {
	return nil
}

type Tx struct {
	Impl struct {
		Begin    func(ctx context.Context) (kpool.Tx, error)
		Exec     func(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
		Query    func(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow func(ctx context.Context, sql string, args ...interface{}) pgx.Row

		// nil Commit/Rollback just succeed; repositories defer
		// Rollback unconditionally, so requiring an Impl for it
		// would burden every test.
		Commit   func(ctx context.Context) error
		Rollback func(ctx context.Context) error
	}
	Calls struct {
		Exec     []Query
		Query    []Query
		QueryRow []Query
		Commit   uint
		Rollback uint
	}
}

var _ kpool.Tx = &Tx{}

func NewTx() *Tx {
	return &Tx{}
}

func (tx *Tx) Begin(ctx context.Context) (kpool.Tx, error) {
	if tx.Impl.Begin == nil {
		panic(errors.New("it should not be called"))
	}
	return tx.Impl.Begin(ctx)
}

func (tx *Tx) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	tx.Calls.Exec = append(tx.Calls.Exec, Query{Sql: sql, Args: args})
	if tx.Impl.Exec == nil {
		panic(errors.New("it should not be called"))
	}
	return tx.Impl.Exec(ctx, sql, args...)
}

func (tx *Tx) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	tx.Calls.Query = append(tx.Calls.Query, Query{Sql: sql, Args: args})
	if tx.Impl.Query == nil {
		panic(errors.New("it should not be called"))
	}
	return tx.Impl.Query(ctx, sql, args...)
}

func (tx *Tx) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	tx.Calls.QueryRow = append(tx.Calls.QueryRow, Query{Sql: sql, Args: args})
	if tx.Impl.QueryRow == nil {
		panic(errors.New("it should not be called"))
	}
	return tx.Impl.QueryRow(ctx, sql, args...)
}

func (tx *Tx) Commit(ctx context.Context) error {
	tx.Calls.Commit += 1
	if tx.Impl.Commit == nil {
		return nil
	}
	return tx.Impl.Commit(ctx)
}

func (tx *Tx) Rollback(ctx context.Context) error {
	tx.Calls.Rollback += 1
	if tx.Impl.Rollback == nil {
		return nil
	}
	return tx.Impl.Rollback(ctx)
}

type Conn struct {
	Impl struct {
		Begin    func(ctx context.Context) (kpool.Tx, error)
		Exec     func(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
		Query    func(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
		QueryRow func(ctx context.Context, sql string, args ...interface{}) pgx.Row
		Ping     func(ctx context.Context) error
	}
	Calls struct {
		Exec     []Query
		Query    []Query
		QueryRow []Query
		Release  uint
	}
}

var _ kpool.Conn = &Conn{}

func NewConn() *Conn {
	return &Conn{}
}

func (c *Conn) Begin(ctx context.Context) (kpool.Tx, error) {
	if c.Impl.Begin == nil {
		panic(errors.New("it should not be called"))
	}
	return c.Impl.Begin(ctx)
}

func (c *Conn) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	c.Calls.Exec = append(c.Calls.Exec, Query{Sql: sql, Args: args})
	if c.Impl.Exec == nil {
		panic(errors.New("it should not be called"))
	}
	return c.Impl.Exec(ctx, sql, args...)
}

func (c *Conn) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	c.Calls.Query = append(c.Calls.Query, Query{Sql: sql, Args: args})
	if c.Impl.Query == nil {
		panic(errors.New("it should not be called"))
	}
	return c.Impl.Query(ctx, sql, args...)
}

func (c *Conn) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	c.Calls.QueryRow = append(c.Calls.QueryRow, Query{Sql: sql, Args: args})
	if c.Impl.QueryRow == nil {
		panic(errors.New("it should not be called"))
	}
	return c.Impl.QueryRow(ctx, sql, args...)
}

func (c *Conn) Release() {
	c.Calls.Release += 1
}

func (c *Conn) Ping(ctx context.Context) error {
	if c.Impl.Ping == nil {
		panic(errors.New("it should not be called"))
	}
	return c.Impl.Ping(ctx)
}

type Pool struct {
	Impl struct {
		Begin   func(ctx context.Context) (kpool.Tx, error)
		Acquire func(ctx context.Context) (kpool.Conn, error)
		Ping    func(ctx context.Context) error
	}
}

var _ kpool.Pool = &Pool{}

func NewPool() *Pool {
	return &Pool{}
}

func (p *Pool) Begin(ctx context.Context) (kpool.Tx, error) {
	if p.Impl.Begin == nil {
		panic(errors.New("it should not be called"))
	}
	return p.Impl.Begin(ctx)
}

func (p *Pool) Acquire(ctx context.Context) (kpool.Conn, error) {
	if p.Impl.Acquire == nil {
		panic(errors.New("it should not be called"))
	}
	return p.Impl.Acquire(ctx)
}

func (p *Pool) Ping(ctx context.Context) error {
	if p.Impl.Ping == nil {
		panic(errors.New("it should not be called"))
	}
	return p.Impl.Ping(ctx)
}
