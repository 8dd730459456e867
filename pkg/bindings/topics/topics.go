package topics

import (
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
	apitopics "github.com/khipulab/khipu/pkg/api/types/topics"
	"github.com/khipulab/khipu/pkg/domain"
)

func ComposeDetail(t domain.Topic) apitopics.Detail {
	schema := t.Schema
	if schema == nil {
		schema = map[string]interface{}{}
	}
	return apitopics.Detail{
		TopicId:   t.Id,
		Name:      t.Name,
		Schema:    schema,
		BrokerId:  t.BrokerId,
		CreatedAt: rfctime.New(t.CreatedAt),
	}
}
