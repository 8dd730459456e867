package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pgerrcode "github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"
	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
	"github.com/khipulab/khipu/pkg/domain"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
)

type topicPG struct { // implements db.TopicInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *topicPG {
	return &topicPG{pool: pool}
}

// topic schemas are stored as jsonb. They pass through as text on the wire.
func marshalSchema(schema map[string]interface{}) (string, error) {
	if schema == nil {
		schema = map[string]interface{}{}
	}
	raw, err := json.Marshal(schema)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func unmarshalSchema(raw []byte) (map[string]interface{}, error) {
	schema := map[string]interface{}{}
	if len(raw) == 0 {
		return schema, nil
	}
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil, err
	}
	return schema, nil
}

func (t *topicPG) Register(ctx context.Context, brokerId int, spec domain.TopicSpec) (domain.Topic, error) {
	if err := spec.Validate(); err != nil {
		return domain.Topic{}, err
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return domain.Topic{}, err
	}
	defer tx.Rollback(ctx)

	// the broker must exist before anything is inserted.
	var foundBrokerId int
	if err := tx.QueryRow(
		ctx, `select "broker_id" from "broker" where "broker_id" = $1`, brokerId,
	).Scan(&foundBrokerId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Topic{}, kpgerr.Missing{
				Table: "broker", Identity: fmt.Sprintf("broker_id=%d", brokerId),
			}
		}
		return domain.Topic{}, err
	}

	// pre-check (name, broker) uniqueness to report the existing topic's id.
	var existingId int
	err = tx.QueryRow(
		ctx,
		`select "topic_id" from "topic" where "name" = $1 and "broker_id" = $2`,
		spec.Name, brokerId,
	).Scan(&existingId)
	switch {
	case err == nil:
		return domain.Topic{}, kpgerr.Duplicated{
			Table:      "topic",
			Identity:   fmt.Sprintf("name='%s', broker_id=%d", spec.Name, brokerId),
			ExistingId: existingId,
		}
	case !errors.Is(err, pgx.ErrNoRows):
		return domain.Topic{}, err
	}

	schemaJSON, err := marshalSchema(spec.Schema)
	if err != nil {
		return domain.Topic{}, err
	}

	registered := domain.Topic{
		Name:     spec.Name,
		Schema:   spec.Schema,
		BrokerId: brokerId,
	}
	if registered.Schema == nil {
		registered.Schema = map[string]interface{}{}
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "topic" ("name", "schema", "broker_id")
		values ($1, $2::jsonb, $3)
		returning "topic_id", "created_at"
		`,
		spec.Name, schemaJSON, brokerId,
	).Scan(&registered.Id, &registered.CreatedAt); err != nil {
		if dup := t.asDuplication(ctx, err, spec.Name, brokerId); dup != nil {
			return domain.Topic{}, dup
		}
		return domain.Topic{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Topic{}, err
	}
	return registered, nil
}

// asDuplication converts a unique violation raced past the pre-check into a
// Duplicated error carrying the winning row's id. Returns nil for other errors.
func (t *topicPG) asDuplication(ctx context.Context, err error, name string, brokerId int) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	conn, cerr := t.pool.Acquire(ctx)
	if cerr != nil {
		return cerr
	}
	defer conn.Release()

	var existingId int
	if qerr := conn.QueryRow(
		ctx,
		`select "topic_id" from "topic" where "name" = $1 and "broker_id" = $2`,
		name, brokerId,
	).Scan(&existingId); qerr != nil {
		return qerr
	}
	return kpgerr.Duplicated{
		Table:      "topic",
		Identity:   fmt.Sprintf("name='%s', broker_id=%d", name, brokerId),
		ExistingId: existingId,
	}
}

// asRenameDuplication is the rename counterpart of asDuplication. The
// hosting broker is not in the caller's hands on an update, so it is
// read back from the topic row before the winning topic is looked up.
func (t *topicPG) asRenameDuplication(ctx context.Context, err error, id int, name string) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return nil
	}

	conn, cerr := t.pool.Acquire(ctx)
	if cerr != nil {
		return cerr
	}
	defer conn.Release()

	var brokerId int
	if qerr := conn.QueryRow(
		ctx, `select "broker_id" from "topic" where "topic_id" = $1`, id,
	).Scan(&brokerId); qerr != nil {
		return qerr
	}

	var existingId int
	if qerr := conn.QueryRow(
		ctx,
		`select "topic_id" from "topic" where "name" = $1 and "broker_id" = $2`,
		name, brokerId,
	).Scan(&existingId); qerr != nil {
		return qerr
	}
	return kpgerr.Duplicated{
		Table:      "topic",
		Identity:   fmt.Sprintf("name='%s', broker_id=%d", name, brokerId),
		ExistingId: existingId,
	}
}

func (t *topicPG) Update(ctx context.Context, id int, patch domain.TopicPatch) (domain.Topic, error) {
	if err := patch.Validate(); err != nil {
		return domain.Topic{}, err
	}

	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return domain.Topic{}, err
	}
	defer tx.Rollback(ctx)

	var schemaJSON *string
	if patch.Schema != nil {
		s, err := marshalSchema(patch.Schema)
		if err != nil {
			return domain.Topic{}, err
		}
		schemaJSON = &s
	}

	updated := domain.Topic{Id: id}
	var rawSchema []byte
	if err := tx.QueryRow(
		ctx,
		`
		update "topic" set
			"name" = coalesce($2, "name"),
			"schema" = coalesce($3::jsonb, "schema")
		where "topic_id" = $1
		returning "name", "schema", "broker_id", "created_at"
		`,
		id, patch.Name, schemaJSON,
	).Scan(&updated.Name, &rawSchema, &updated.BrokerId, &updated.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Topic{}, kpgerr.Missing{
				Table: "topic", Identity: fmt.Sprintf("topic_id=%d", id),
			}
		}
		if patch.Name != nil {
			if dup := t.asRenameDuplication(ctx, err, id, *patch.Name); dup != nil {
				return domain.Topic{}, dup
			}
		}
		return domain.Topic{}, err
	}

	schema, err := unmarshalSchema(rawSchema)
	if err != nil {
		return domain.Topic{}, err
	}
	updated.Schema = schema

	if err := tx.Commit(ctx); err != nil {
		return domain.Topic{}, err
	}
	return updated, nil
}

func (t *topicPG) List(ctx context.Context) ([]domain.Topic, error) {
	conn, err := t.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "topic_id", "name", "schema", "broker_id", "created_at"
		from "topic"
		order by "topic_id"
		`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	topics := []domain.Topic{}
	for rows.Next() {
		var tp domain.Topic
		var rawSchema []byte
		if err := rows.Scan(
			&tp.Id, &tp.Name, &rawSchema, &tp.BrokerId, &tp.CreatedAt,
		); err != nil {
			return nil, err
		}
		schema, err := unmarshalSchema(rawSchema)
		if err != nil {
			return nil, err
		}
		tp.Schema = schema
		topics = append(topics, tp)
	}

	if len(topics) == 0 {
		return nil, kpgerr.Missing{Table: "topic", Identity: "any topic"}
	}
	return topics, nil
}

func (t *topicPG) Delete(ctx context.Context, id int) error {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// links referencing the topic go first; a dataset-topic link must
	// never outlive its topic.
	if _, err := tx.Exec(
		ctx, `delete from "dataset_topic" where "topic_id" = $1`, id,
	); err != nil {
		return err
	}

	var deletedId int
	if err := tx.QueryRow(
		ctx, `delete from "topic" where "topic_id" = $1 returning "topic_id"`, id,
	).Scan(&deletedId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table: "topic", Identity: fmt.Sprintf("topic_id=%d", id),
			}
		}
		return err
	}

	return tx.Commit(ctx)
}
