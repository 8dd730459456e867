package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
	"github.com/khipulab/khipu/pkg/domain"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
)

type brokerPG struct { // implements db.BrokerInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *brokerPG {
	return &brokerPG{pool: pool}
}

func (b *brokerPG) Register(ctx context.Context, spec domain.BrokerSpec) (domain.Broker, error) {
	if err := spec.Validate(); err != nil {
		return domain.Broker{}, err
	}

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return domain.Broker{}, err
	}
	defer tx.Rollback(ctx)

	// pre-check, so that conflicts report the existing broker's id
	// instead of a bare constraint violation.
	var existingId int
	err = tx.QueryRow(
		ctx, `select "broker_id" from "broker" where "name" = $1`, spec.Name,
	).Scan(&existingId)
	switch {
	case err == nil:
		return domain.Broker{}, kpgerr.Duplicated{
			Table:      "broker",
			Identity:   fmt.Sprintf("name='%s'", spec.Name),
			ExistingId: existingId,
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Broker{}, err
	}

	registered := domain.Broker{
		Name:    spec.Name,
		Address: spec.Address,
		Port:    spec.Port,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "broker" ("name", "address", "port")
		values ($1, $2, $3)
		returning "broker_id", "created_at"
		`,
		spec.Name, spec.Address, spec.Port,
	).Scan(&registered.Id, &registered.CreatedAt); err != nil {
		if dup := b.asDuplication(ctx, err, spec.Name); dup != nil {
			return domain.Broker{}, dup
		}
		return domain.Broker{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Broker{}, err
	}
	return registered, nil
}

// asDuplication converts a unique violation raced past the pre-check into a
// Duplicated error carrying the winning row's id. Returns nil for other errors.
func (b *brokerPG) asDuplication(ctx context.Context, err error, name string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	conn, cerr := b.pool.Acquire(ctx)
	if cerr != nil {
		return cerr
	}
	defer conn.Release()

	var existingId int
	if qerr := conn.QueryRow(
		ctx, `select "broker_id" from "broker" where "name" = $1`, name,
	).Scan(&existingId); qerr != nil {
		return qerr
	}
	return kpgerr.Duplicated{
		Table:      "broker",
		Identity:   fmt.Sprintf("name='%s'", name),
		ExistingId: existingId,
	}
}

func (b *brokerPG) Update(ctx context.Context, id int, patch domain.BrokerPatch) (domain.Broker, error) {
	if err := patch.Validate(); err != nil {
		return domain.Broker{}, err
	}

	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return domain.Broker{}, err
	}
	defer tx.Rollback(ctx)

	updated := domain.Broker{Id: id}
	if err := tx.QueryRow(
		ctx,
		`
		update "broker" set
			"name" = coalesce($2, "name"),
			"address" = coalesce($3, "address"),
			"port" = coalesce($4, "port")
		where "broker_id" = $1
		returning "name", "address", "port", "created_at"
		`,
		id, patch.Name, patch.Address, patch.Port,
	).Scan(&updated.Name, &updated.Address, &updated.Port, &updated.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Broker{}, kpgerr.Missing{
				Table: "broker", Identity: fmt.Sprintf("broker_id=%d", id),
			}
		}
		if patch.Name != nil {
			if dup := b.asDuplication(ctx, err, *patch.Name); dup != nil {
				return domain.Broker{}, dup
			}
		}
		return domain.Broker{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Broker{}, err
	}
	return updated, nil
}

func (b *brokerPG) List(ctx context.Context) ([]domain.Broker, error) {
	conn, err := b.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "broker_id", "name", "address", "port", "created_at"
		from "broker"
		order by "broker_id"
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	brokers := []domain.Broker{}
	for rows.Next() {
		var bk domain.Broker
		if err := rows.Scan(
			&bk.Id, &bk.Name, &bk.Address, &bk.Port, &bk.CreatedAt,
		); err != nil {
			return nil, err
		}
		brokers = append(brokers, bk)
	}

	if len(brokers) == 0 {
		return nil, kpgerr.Missing{Table: "broker", Identity: "any broker"}
	}
	return brokers, nil
}

func (b *brokerPG) Delete(ctx context.Context, id int) error {
	tx, err := b.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// links first, then topics, then the broker itself. The FK cascade
	// would catch the links too, but the order is kept explicit so no
	// dangling link can survive a schema where the cascade is missing.
	if _, err := tx.Exec(
		ctx,
		`
		delete from "dataset_topic"
		where "topic_id" in (
			select "topic_id" from "topic" where "broker_id" = $1
		)
		`,
		id,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx, `delete from "topic" where "broker_id" = $1`, id,
	); err != nil {
		return err
	}

	var deletedId int
	if err := tx.QueryRow(
		ctx, `delete from "broker" where "broker_id" = $1 returning "broker_id"`, id,
	).Scan(&deletedId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table: "broker", Identity: fmt.Sprintf("broker_id=%d", id),
			}
		}
		return err
	}

	return tx.Commit(ctx)
}
