package db

import (
	"context"

	"github.com/khipulab/khipu/pkg/domain"
)

type TopicInterface interface {
	// Register records a topic hosted by the broker.
	//
	// Returns domain.ErrMissing when the broker does not exist, or a
	// Duplicated error (wrapping domain.ErrConflict, carrying the existing
	// topic's id) when the broker already hosts a topic with the name.
	Register(ctx context.Context, brokerId int, spec domain.TopicSpec) (domain.Topic, error)

	// Update applies non-nil fields of patch to the topic.
	//
	// Returns domain.ErrMissing when no topic has the id.
	Update(ctx context.Context, id int, patch domain.TopicPatch) (domain.Topic, error)

	// List returns all registered topics.
	//
	// Returns domain.ErrMissing when there are none.
	List(ctx context.Context) ([]domain.Topic, error)

	// Delete removes the topic and any dataset-topic links referencing it,
	// in a single transaction, so no link is left dangling.
	//
	// Returns domain.ErrMissing when no topic has the id.
	Delete(ctx context.Context, id int) error
}
