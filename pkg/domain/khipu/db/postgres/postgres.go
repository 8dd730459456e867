package postgres

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
	kpool "github.com/khipulab/khipu/pkg/conn/db/postgres/pool"
	kbroker "github.com/khipulab/khipu/pkg/domain/broker/db"
	kpgbroker "github.com/khipulab/khipu/pkg/domain/broker/db/postgres"
	kdataset "github.com/khipulab/khipu/pkg/domain/dataset/db"
	kpgdataset "github.com/khipulab/khipu/pkg/domain/dataset/db/postgres"
	dbInterface "github.com/khipulab/khipu/pkg/domain/khipu/db"
	kschema "github.com/khipulab/khipu/pkg/domain/schema/db"
	kpgschema "github.com/khipulab/khipu/pkg/domain/schema/db/postgres"
	ktopic "github.com/khipulab/khipu/pkg/domain/topic/db"
	kpgtopic "github.com/khipulab/khipu/pkg/domain/topic/db/postgres"
	xe "github.com/khipulab/khipu/pkg/errors"
)

type khipuDBPostgres struct {
	pool    *pgxpool.Pool
	broker  kbroker.BrokerInterface
	topic   ktopic.TopicInterface
	dataset kdataset.DatasetInterface
	schema  kschema.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

func New(
	ctx context.Context,
	url string,
	options ...Option,
) (dbInterface.KhipuDatabase, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, xe.Wrap(err)
	}

	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	p := kpool.Wrap(pool)
	var schema kschema.SchemaInterface = kpgschema.Null()
	if c.SchemaRepository != "" {
		schema = kpgschema.New(p, c.SchemaRepository)
	}

	return &khipuDBPostgres{
		pool:    pool,
		broker:  kpgbroker.New(p),
		topic:   kpgtopic.New(p),
		dataset: kpgdataset.New(p),
		schema:  schema,
	}, nil
}

func (k *khipuDBPostgres) Broker() kbroker.BrokerInterface {
	return k.broker
}

func (k *khipuDBPostgres) Topic() ktopic.TopicInterface {
	return k.topic
}

func (k *khipuDBPostgres) Dataset() kdataset.DatasetInterface {
	return k.dataset
}

func (k *khipuDBPostgres) Schema() kschema.SchemaInterface {
	return k.schema
}

func (k *khipuDBPostgres) Close() error {
	k.pool.Close()
	return nil
}
