package domain

import (
	"errors"
	"fmt"
	"time"
)

// DatasetType tells what a dataset is meant to be used for.
type DatasetType int

const (
	TrainingData             DatasetType = 0
	InferenceData            DatasetType = 1
	TrainingAndInferenceData DatasetType = 2
)

var ErrUnknownDatasetType = errors.New("unknown dataset type")

func AsDatasetType(v int) (DatasetType, error) {
	switch t := DatasetType(v); t {
	case TrainingData, InferenceData, TrainingAndInferenceData:
		return t, nil
	default:
		return t, fmt.Errorf("%w: %d", ErrUnknownDatasetType, v)
	}
}

// SourceType tells where the content of a dataset comes from.
type SourceType int

const (
	SourceFile   SourceType = 0
	SourceTable  SourceType = 1
	SourceBroker SourceType = 2
)

// Dataset is the slice of a dataset record this subsystem cares about.
// Only datasets with Source == SourceBroker can carry a topic binding.
type Dataset struct {
	Id          int
	Name        string
	Description string
	Type        DatasetType
	Source      SourceType
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (d *Dataset) Equal(other *Dataset) bool {
	return d.Id == other.Id &&
		d.Name == other.Name &&
		d.Description == other.Description &&
		d.Type == other.Type &&
		d.Source == other.Source
}

type DatasetSpec struct {
	Name        string
	Description string
	Type        DatasetType
}

func (s DatasetSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: dataset name is required", ErrInvalid)
	}
	if _, err := AsDatasetType(int(s.Type)); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	return nil
}

// MessageBinding is the composite view over a broker-sourced Dataset,
// the Topic it is linked to and the Broker hosting that Topic.
type MessageBinding struct {
	Dataset Dataset
	Broker  Broker
	Topic   Topic
}

// TopicEndpoint is the resolved connection target for a stream read:
// which topic to subscribe to, and where the broker listens.
type TopicEndpoint struct {
	TopicName     string
	BrokerAddress string
	BrokerPort    int
}

func (e TopicEndpoint) BootstrapServer() string {
	return fmt.Sprintf("%s:%d", e.BrokerAddress, e.BrokerPort)
}

// OffsetPolicy selects where a fresh subscription starts reading:
// from the oldest retained message, or only from new ones.
type OffsetPolicy string

const (
	OffsetEarliest OffsetPolicy = "earliest"
	OffsetLatest   OffsetPolicy = "latest"
)

var ErrUnknownOffsetPolicy = errors.New("unknown offset policy")

func AsOffsetPolicy(s string) (OffsetPolicy, error) {
	switch p := OffsetPolicy(s); p {
	case OffsetEarliest, OffsetLatest:
		return p, nil
	default:
		return p, fmt.Errorf("%w: %s", ErrUnknownOffsetPolicy, s)
	}
}

// StreamWindow is the bounded set of records returned by one timed poll.
// SkippedCount tells how many messages arrived in the window but did not
// decode as JSON.
type StreamWindow struct {
	DatasetId    int
	Records      []interface{}
	RecordCount  int
	SkippedCount int
	TopicName    string
}
