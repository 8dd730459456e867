package stream

import (
	"context"
	"fmt"

	"github.com/khipulab/khipu/pkg/domain"
)

// Reader drains one bounded window of records from the topic behind a
// dataset. Each call opens a fresh subscription and closes it before
// returning; nothing is retained between calls.
type Reader interface {
	// Read subscribes to the endpoint's topic and collects records until
	// maxRecords are decoded or the poll window elapses, whichever comes
	// first. maxRecords <= 0 selects the default cap.
	//
	// Returns domain.ErrNoMessages when the window closes empty and
	// domain.ErrBrokerUnreachable when the broker cannot be reached.
	Read(
		ctx context.Context,
		datasetId int, endpoint domain.TopicEndpoint,
		policy domain.OffsetPolicy, maxRecords int,
	) (domain.StreamWindow, error)
}

// NoMessages reports a poll window which closed without a single record.
type NoMessages struct {
	Topic string
}

func (e NoMessages) Error() string {
	return fmt.Sprintf("no messages received from topic '%s'", e.Topic)
}

func (e NoMessages) Unwrap() error {
	return domain.ErrNoMessages
}

// Unreachable reports a broker which could not be connected or which
// dropped the transport mid-read.
type Unreachable struct {
	Endpoint string
	Cause    error
}

func (e Unreachable) Error() string {
	return fmt.Sprintf("broker at %s is unreachable: %s", e.Endpoint, e.Cause)
}

func (e Unreachable) Unwrap() error {
	return domain.ErrBrokerUnreachable
}
