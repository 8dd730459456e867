package db

import (
	"context"

	"github.com/khipulab/khipu/pkg/domain"
)

type DatasetInterface interface {
	// RegisterMessageBinding creates a broker-sourced dataset and its link
	// to the topic as one atomic unit: either both rows exist afterwards,
	// or neither does.
	//
	// Returns domain.ErrMissing when the broker or the topic does not
	// exist or the broker does not host the topic, and domain.ErrInvalid
	// when the spec does not validate.
	RegisterMessageBinding(
		ctx context.Context,
		spec domain.DatasetSpec, brokerId int, topicId int,
	) (domain.MessageBinding, error)

	// GetMessageBinding resolves dataset -> link -> topic -> broker and
	// returns the composite view.
	//
	// Any missing hop is reported uniformly as domain.ErrMissing; callers
	// cannot tell which hop broke, only that the dataset has no message
	// configuration.
	GetMessageBinding(ctx context.Context, datasetId int) (domain.MessageBinding, error)

	// ResolveTopicEndpoint resolves the connection target for a stream
	// read of the dataset: topic name, broker address and broker port.
	//
	// Returns domain.ErrMissing when any hop of the chain is missing.
	ResolveTopicEndpoint(ctx context.Context, datasetId int) (domain.TopicEndpoint, error)

	// DeregisterMessageBinding removes the dataset and its link as one
	// atomic unit. Only broker-sourced datasets can be removed this way;
	// file- and table-backed datasets are reported as domain.ErrMissing.
	DeregisterMessageBinding(ctx context.Context, datasetId int) error
}
