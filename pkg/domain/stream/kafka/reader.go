package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/khipulab/khipu/pkg/domain"
	"github.com/khipulab/khipu/pkg/domain/stream"
)

const (
	// pollWindow bounds one Read. Consuming stops when the window has
	// elapsed even if the topic keeps producing.
	pollWindow = 10 * time.Second

	// DefaultMaxRecords caps a window when the caller passes no count.
	DefaultMaxRecords = 200
)

// consumer is the slice of *kafka.Consumer the reader relies on.
type consumer interface {
	SubscribeTopics(topics []string, rebalanceCb kafka.RebalanceCb) error
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	Close() error
}

type reader struct { // implements stream.Reader
	connect func(endpoint domain.TopicEndpoint, policy domain.OffsetPolicy) (consumer, error)
}

func New() *reader {
	return &reader{connect: connect}
}

// each Read gets a throwaway consumer group, so a window always starts
// from the requested offset policy rather than a committed position.
func connect(endpoint domain.TopicEndpoint, policy domain.OffsetPolicy) (consumer, error) {
	return kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers": endpoint.BootstrapServer(),
		"group.id":          fmt.Sprintf("khipu-stream-%d", rand.Int63()),
		"auto.offset.reset": string(policy),
	})
}

func (r *reader) Read(
	ctx context.Context,
	datasetId int, endpoint domain.TopicEndpoint,
	policy domain.OffsetPolicy, maxRecords int,
) (domain.StreamWindow, error) {
	if _, err := domain.AsOffsetPolicy(string(policy)); err != nil {
		return domain.StreamWindow{}, fmt.Errorf("%w: %s", domain.ErrInvalid, err)
	}
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}

	con, err := r.connect(endpoint, policy)
	if err != nil {
		return domain.StreamWindow{}, stream.Unreachable{
			Endpoint: endpoint.BootstrapServer(), Cause: err,
		}
	}
	defer con.Close()

	if err := con.SubscribeTopics([]string{endpoint.TopicName}, nil); err != nil {
		return domain.StreamWindow{}, stream.Unreachable{
			Endpoint: endpoint.BootstrapServer(), Cause: err,
		}
	}

	records := []interface{}{}
	skipped := 0
	deadline := time.Now().Add(pollWindow)
	for len(records) < maxRecords {
		if err := ctx.Err(); err != nil {
			return domain.StreamWindow{}, err
		}
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		msg, err := con.ReadMessage(remaining)
		if err != nil {
			var kerr kafka.Error
			if errors.As(err, &kerr) {
				if kerr.Code() == kafka.ErrTimedOut {
					break
				}
				if kerr.Code() == kafka.ErrTransport || kerr.Code() == kafka.ErrAllBrokersDown {
					return domain.StreamWindow{}, stream.Unreachable{
						Endpoint: endpoint.BootstrapServer(), Cause: err,
					}
				}
			}
			return domain.StreamWindow{}, err
		}

		var record interface{}
		if err := json.Unmarshal(msg.Value, &record); err != nil {
			// malformed payloads do not abort the window
			skipped += 1
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		return domain.StreamWindow{}, stream.NoMessages{Topic: endpoint.TopicName}
	}

	return domain.StreamWindow{
		DatasetId:    datasetId,
		Records:      records,
		RecordCount:  len(records),
		SkippedCount: skipped,
		TopicName:    endpoint.TopicName,
	}, nil
}
