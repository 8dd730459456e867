package topics

import (
	"reflect"

	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
)

// Spec is the request body registering a topic under a broker.
type Spec struct {
	Name   string                 `json:"name"`
	Schema map[string]interface{} `json:"schema"`
}

// Change is the request body patching a topic.
// nil fields are left as they are.
type Change struct {
	Name   *string                `json:"name,omitempty"`
	Schema map[string]interface{} `json:"schema,omitempty"`
}

type Detail struct {
	TopicId   int                    `json:"topicId"`
	Name      string                 `json:"name"`
	Schema    map[string]interface{} `json:"schema"`
	BrokerId  int                    `json:"brokerId"`
	CreatedAt rfctime.RFC3339        `json:"createdAt"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.TopicId == o.TopicId &&
		d.Name == o.Name &&
		d.BrokerId == o.BrokerId &&
		d.CreatedAt.Equal(o.CreatedAt) &&
		reflect.DeepEqual(d.Schema, o.Schema)
}
