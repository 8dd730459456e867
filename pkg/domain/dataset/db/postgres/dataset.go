package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
	"github.com/khipulab/khipu/pkg/domain"
	kpgerr "github.com/khipulab/khipu/pkg/domain/errors/dberrors/postgres"
)

type datasetPG struct { // implements db.DatasetInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *datasetPG {
	return &datasetPG{pool: pool}
}

func (d *datasetPG) RegisterMessageBinding(
	ctx context.Context,
	spec domain.DatasetSpec, brokerId int, topicId int,
) (domain.MessageBinding, error) {
	if err := spec.Validate(); err != nil {
		return domain.MessageBinding{}, err
	}

	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return domain.MessageBinding{}, err
	}
	defer tx.Rollback(ctx)

	// resolve both anchors before writing anything.
	broker := domain.Broker{Id: brokerId}
	if err := tx.QueryRow(
		ctx,
		`select "name", "address", "port", "created_at" from "broker" where "broker_id" = $1`,
		brokerId,
	).Scan(&broker.Name, &broker.Address, &broker.Port, &broker.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MessageBinding{}, kpgerr.Missing{
				Table: "broker", Identity: fmt.Sprintf("broker_id=%d", brokerId),
			}
		}
		return domain.MessageBinding{}, err
	}

	topic := domain.Topic{Id: topicId}
	var rawSchema []byte
	if err := tx.QueryRow(
		ctx,
		`select "name", "schema", "broker_id", "created_at" from "topic" where "topic_id" = $1`,
		topicId,
	).Scan(&topic.Name, &rawSchema, &topic.BrokerId, &topic.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.MessageBinding{}, kpgerr.Missing{
				Table: "topic", Identity: fmt.Sprintf("topic_id=%d", topicId),
			}
		}
		return domain.MessageBinding{}, err
	}
	// the named broker must actually host the topic, or the composite
	// view would name an endpoint the stream never reads from.
	if topic.BrokerId != brokerId {
		return domain.MessageBinding{}, kpgerr.Missing{
			Table:    "topic",
			Identity: fmt.Sprintf("topic_id=%d hosted by broker_id=%d", topicId, brokerId),
		}
	}

	topic.Schema = map[string]interface{}{}
	if len(rawSchema) != 0 {
		if err := json.Unmarshal(rawSchema, &topic.Schema); err != nil {
			return domain.MessageBinding{}, err
		}
	}

	// dataset row first: the link needs its generated id.
	dataset := domain.Dataset{
		Name:        spec.Name,
		Description: spec.Description,
		Type:        spec.Type,
		Source:      domain.SourceBroker,
	}
	if err := tx.QueryRow(
		ctx,
		`
		insert into "dataset" ("name", "description", "dataset_type", "source_type")
		values ($1, $2, $3, $4)
		returning "dataset_id", "created_at", "updated_at"
		`,
		spec.Name, spec.Description, int(spec.Type), int(domain.SourceBroker),
	).Scan(&dataset.Id, &dataset.CreatedAt, &dataset.UpdatedAt); err != nil {
		return domain.MessageBinding{}, err
	}

	if _, err := tx.Exec(
		ctx,
		`insert into "dataset_topic" ("dataset_id", "topic_id") values ($1, $2)`,
		dataset.Id, topicId,
	); err != nil {
		return domain.MessageBinding{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.MessageBinding{}, err
	}

	return domain.MessageBinding{Dataset: dataset, Broker: broker, Topic: topic}, nil
}

func (d *datasetPG) GetMessageBinding(ctx context.Context, datasetId int) (domain.MessageBinding, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return domain.MessageBinding{}, err
	}
	defer conn.Release()

	binding := domain.MessageBinding{}
	var rawSchema []byte
	if err := conn.QueryRow(
		ctx,
		`
		select
			"d"."dataset_id", "d"."name", "d"."description",
			"d"."dataset_type", "d"."source_type",
			"d"."created_at", "d"."updated_at",
			"t"."topic_id", "t"."name", "t"."schema", "t"."broker_id", "t"."created_at",
			"b"."broker_id", "b"."name", "b"."address", "b"."port", "b"."created_at"
		from "dataset" as "d"
		inner join "dataset_topic" as "l" on "d"."dataset_id" = "l"."dataset_id"
		inner join "topic" as "t" on "l"."topic_id" = "t"."topic_id"
		inner join "broker" as "b" on "t"."broker_id" = "b"."broker_id"
		where "d"."dataset_id" = $1
		`,
		datasetId,
	).Scan(
		&binding.Dataset.Id, &binding.Dataset.Name, &binding.Dataset.Description,
		&binding.Dataset.Type, &binding.Dataset.Source,
		&binding.Dataset.CreatedAt, &binding.Dataset.UpdatedAt,
		&binding.Topic.Id, &binding.Topic.Name, &rawSchema,
		&binding.Topic.BrokerId, &binding.Topic.CreatedAt,
		&binding.Broker.Id, &binding.Broker.Name, &binding.Broker.Address,
		&binding.Broker.Port, &binding.Broker.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// any broken hop in the chain reads the same from outside:
			// the dataset has no message configuration.
			return domain.MessageBinding{}, kpgerr.Missing{
				Table:    "dataset",
				Identity: fmt.Sprintf("dataset_id=%d (message binding)", datasetId),
			}
		}
		return domain.MessageBinding{}, err
	}

	binding.Topic.Schema = map[string]interface{}{}
	if len(rawSchema) != 0 {
		if err := json.Unmarshal(rawSchema, &binding.Topic.Schema); err != nil {
			return domain.MessageBinding{}, err
		}
	}
	return binding, nil
}

func (d *datasetPG) ResolveTopicEndpoint(ctx context.Context, datasetId int) (domain.TopicEndpoint, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return domain.TopicEndpoint{}, err
	}
	defer conn.Release()

	endpoint := domain.TopicEndpoint{}
	if err := conn.QueryRow(
		ctx,
		`
		select "t"."name", "b"."address", "b"."port"
		from "dataset_topic" as "l"
		inner join "topic" as "t" on "l"."topic_id" = "t"."topic_id"
		inner join "broker" as "b" on "t"."broker_id" = "b"."broker_id"
		where "l"."dataset_id" = $1
		`,
		datasetId,
	).Scan(&endpoint.TopicName, &endpoint.BrokerAddress, &endpoint.BrokerPort); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TopicEndpoint{}, kpgerr.Missing{
				Table:    "dataset",
				Identity: fmt.Sprintf("dataset_id=%d (message binding)", datasetId),
			}
		}
		return domain.TopicEndpoint{}, err
	}
	return endpoint, nil
}

func (d *datasetPG) DeregisterMessageBinding(ctx context.Context, datasetId int) error {
	tx, err := d.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// only broker-sourced datasets can leave through this door.
	var foundId int
	if err := tx.QueryRow(
		ctx,
		`
		select "dataset_id" from "dataset"
		where "dataset_id" = $1 and "source_type" = $2
		for update
		`,
		datasetId, int(domain.SourceBroker),
	).Scan(&foundId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table:    "dataset",
				Identity: fmt.Sprintf("dataset_id=%d (broker sourced)", datasetId),
			}
		}
		return err
	}

	// link first, then the dataset. A binding may legitimately have no
	// link row if a topic deletion already cascaded it away.
	if _, err := tx.Exec(
		ctx, `delete from "dataset_topic" where "dataset_id" = $1`, datasetId,
	); err != nil {
		return err
	}

	if _, err := tx.Exec(
		ctx, `delete from "dataset" where "dataset_id" = $1`, datasetId,
	); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
