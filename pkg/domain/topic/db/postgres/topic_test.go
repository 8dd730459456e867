package postgres_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
	poolmocks "github.com/khipulab/khipu/pkg/conn/db/postgres/pool/mock"
	"github.com/khipulab/khipu/pkg/domain"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
	kpgtopic "github.com/khipulab/khipu/pkg/domain/topic/db/postgres"
)

func poolWithTx(tx *poolmocks.Tx) *poolmocks.Pool {
	pool := poolmocks.NewPool()
	pool.Impl.Begin = func(context.Context) (kpool.Tx, error) { return tx, nil }
	return pool
}

func TestTopicRegister(t *testing.T) {

	t.Run("when the broker does not exist, it is Missing and nothing is written", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return poolmocks.Row(func(...interface{}) error { return pgx.ErrNoRows })
		}

		testee := kpgtopic.New(poolWithTx(tx))
		_, err := testee.Register(context.Background(), 99, domain.TopicSpec{Name: "telemetry"})

		if !errors.Is(err, domain.ErrMissing) {
			t.Errorf("error is not ErrMissing: %v", err)
		}
		if len(tx.Calls.QueryRow) != 1 {
			t.Errorf("only the broker lookup should run: %+v", tx.Calls.QueryRow)
		}
		if tx.Calls.Commit != 0 {
			t.Errorf("the transaction should not commit: %+v", tx.Calls)
		}
	})

	t.Run("when the broker already hosts the name, the pre-check reports the existing id", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			if strings.Contains(sql, `from "broker"`) {
				return poolmocks.Row(func(dest ...interface{}) error {
					*(dest[0].(*int)) = 3
					return nil
				})
			}
			return poolmocks.Row(func(dest ...interface{}) error {
				*(dest[0].(*int)) = 11
				return nil
			})
		}

		testee := kpgtopic.New(poolWithTx(tx))
		_, err := testee.Register(context.Background(), 3, domain.TopicSpec{Name: "telemetry"})

		dup := kpgerr.Duplicated{}
		if !errors.As(err, &dup) || dup.ExistingId != 11 {
			t.Errorf("error does not carry the existing id: %v", err)
		}
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("error is not ErrConflict: %v", err)
		}
		if tx.Calls.Commit != 0 {
			t.Errorf("the transaction should not commit: %+v", tx.Calls)
		}
	})
}

func TestTopicUpdate(t *testing.T) {

	t.Run("when no topic has the id, it is Missing", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return poolmocks.Row(func(...interface{}) error { return pgx.ErrNoRows })
		}

		testee := kpgtopic.New(poolWithTx(tx))
		_, err := testee.Update(context.Background(), 99, domain.TopicPatch{})

		if !errors.Is(err, domain.ErrMissing) {
			t.Errorf("error is not ErrMissing: %v", err)
		}
	})

	t.Run("renaming onto a taken (name, broker) pair is Duplicated, not a raw driver error", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return poolmocks.Row(func(...interface{}) error {
				return &pgconn.PgError{Code: pgerrcode.UniqueViolation}
			})
		}

		conn := poolmocks.NewConn()
		conn.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			if strings.Contains(sql, `select "broker_id"`) {
				return poolmocks.Row(func(dest ...interface{}) error {
					*(dest[0].(*int)) = 3
					return nil
				})
			}
			return poolmocks.Row(func(dest ...interface{}) error {
				*(dest[0].(*int)) = 11
				return nil
			})
		}

		pool := poolWithTx(tx)
		pool.Impl.Acquire = func(context.Context) (kpool.Conn, error) { return conn, nil }

		name := "telemetry"
		testee := kpgtopic.New(pool)
		_, err := testee.Update(context.Background(), 12, domain.TopicPatch{Name: &name})

		dup := kpgerr.Duplicated{}
		if !errors.As(err, &dup) || dup.ExistingId != 11 {
			t.Errorf("error does not carry the winning row's id: %v", err)
		}
		if !errors.Is(err, domain.ErrConflict) {
			t.Errorf("error is not ErrConflict: %v", err)
		}
		pgErr := new(pgconn.PgError)
		if errors.As(err, &pgErr) {
			t.Errorf("raw driver error escaped: %v", err)
		}
		if tx.Calls.Commit != 0 {
			t.Errorf("the transaction should not commit: %+v", tx.Calls)
		}
		if conn.Calls.Release != 1 {
			t.Errorf("the lookup connection should be released: %+v", conn.Calls)
		}
	})
}

func TestTopicDelete(t *testing.T) {

	t.Run("referencing links go before the topic, in one committed transaction", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.Exec = func(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("DELETE 1"), nil
		}
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return poolmocks.Row(func(dest ...interface{}) error {
				*(dest[0].(*int)) = 11
				return nil
			})
		}

		testee := kpgtopic.New(poolWithTx(tx))
		if err := testee.Delete(context.Background(), 11); err != nil {
			t.Fatal(err)
		}

		if len(tx.Calls.Exec) != 1 ||
			!strings.Contains(tx.Calls.Exec[0].Sql, `delete from "dataset_topic"`) {
			t.Errorf("links should be deleted first: %+v", tx.Calls.Exec)
		}
		if len(tx.Calls.QueryRow) != 1 ||
			!strings.Contains(tx.Calls.QueryRow[0].Sql, `delete from "topic"`) {
			t.Errorf("the topic row should go last: %+v", tx.Calls.QueryRow)
		}
		if tx.Calls.Commit != 1 {
			t.Errorf("the transaction should commit once: %+v", tx.Calls)
		}
	})

	t.Run("when no topic has the id, it is Missing and nothing commits", func(t *testing.T) {
		tx := poolmocks.NewTx()
		tx.Impl.Exec = func(_ context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
			return pgconn.CommandTag("DELETE 0"), nil
		}
		tx.Impl.QueryRow = func(_ context.Context, sql string, args ...interface{}) pgx.Row {
			return poolmocks.Row(func(...interface{}) error { return pgx.ErrNoRows })
		}

		testee := kpgtopic.New(poolWithTx(tx))
		err := testee.Delete(context.Background(), 99)

		if !errors.Is(err, domain.ErrMissing) {
			t.Errorf("error is not ErrMissing: %v", err)
		}
		if tx.Calls.Commit != 0 {
			t.Errorf("the transaction should not commit: %+v", tx.Calls)
		}
	})
}
