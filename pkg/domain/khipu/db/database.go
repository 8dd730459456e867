package db

import (
	kdbbroker "github.com/khipulab/khipu/pkg/domain/broker/db"
	kdbdataset "github.com/khipulab/khipu/pkg/domain/dataset/db"
	kdbschema "github.com/khipulab/khipu/pkg/domain/schema/db"
	kdbtopic "github.com/khipulab/khipu/pkg/domain/topic/db"
)

// KhipuDatabase bundles every persistence interface the server needs.
type KhipuDatabase interface {
	Broker() kdbbroker.BrokerInterface
	Topic() kdbtopic.TopicInterface
	Dataset() kdbdataset.DatasetInterface
	Schema() kdbschema.SchemaInterface
	Close() error
}
