package datasets

import (
	"github.com/khipulab/khipu/pkg/api/types/brokers"
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
	"github.com/khipulab/khipu/pkg/api/types/topics"
)

// Spec is the request body binding a new dataset to a topic.
type Spec struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	DatasetType int    `json:"datasetType"`
	BrokerId    int    `json:"brokerId"`
	TopicId     int    `json:"topicId"`
}

type Detail struct {
	DatasetId   int             `json:"datasetId"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	DatasetType int             `json:"datasetType"`
	SourceType  int             `json:"sourceType"`
	CreatedAt   rfctime.RFC3339 `json:"createdAt"`
	UpdatedAt   rfctime.RFC3339 `json:"updatedAt"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.DatasetId == o.DatasetId &&
		d.Name == o.Name &&
		d.Description == o.Description &&
		d.DatasetType == o.DatasetType &&
		d.SourceType == o.SourceType &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		d.UpdatedAt.Equal(o.UpdatedAt)
}

// MessageBinding is the composite view over a broker-sourced dataset,
// the topic it reads and the broker hosting that topic.
type MessageBinding struct {
	Dataset Detail         `json:"dataset"`
	Broker  brokers.Detail `json:"broker"`
	Topic   topics.Detail  `json:"topic"`
}

func (b *MessageBinding) Equal(o *MessageBinding) bool {
	return b.Dataset.Equal(&o.Dataset) &&
		b.Broker.Equal(&o.Broker) &&
		b.Topic.Equal(&o.Topic)
}

// StreamWindow is one bounded read from the topic behind a dataset.
type StreamWindow struct {
	DatasetId    int           `json:"datasetId"`
	TopicName    string        `json:"topicName"`
	RecordCount  int           `json:"recordCount"`
	SkippedCount int           `json:"skippedCount"`
	Records      []interface{} `json:"records"`
}
