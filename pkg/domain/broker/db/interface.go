package db

import (
	"context"

	"github.com/khipulab/khipu/pkg/domain"
)

type BrokerInterface interface {
	// Register records a new broker endpoint.
	//
	// Returns domain.ErrInvalid when the spec does not validate, or
	// a Duplicated error (wrapping domain.ErrConflict, carrying the
	// existing broker's id) when the name is taken.
	Register(ctx context.Context, spec domain.BrokerSpec) (domain.Broker, error)

	// Update applies non-nil fields of patch to the broker.
	//
	// Returns domain.ErrMissing when no broker has the id.
	Update(ctx context.Context, id int, patch domain.BrokerPatch) (domain.Broker, error)

	// List returns all registered brokers.
	//
	// Returns domain.ErrMissing when there are none, so callers can tell
	// "nothing registered yet" apart from an empty filter match.
	List(ctx context.Context) ([]domain.Broker, error)

	// Delete removes the broker, its topics and any dataset-topic links
	// referencing those topics, in a single transaction.
	//
	// Returns domain.ErrMissing when no broker has the id.
	Delete(ctx context.Context, id int) error
}
