package datasets

import (
	apidatasets "github.com/khipulab/khipu/pkg/api/types/datasets"
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
	bindbrokers "github.com/khipulab/khipu/pkg/bindings/brokers"
	bindtopics "github.com/khipulab/khipu/pkg/bindings/topics"
	"github.com/khipulab/khipu/pkg/domain"
)

func ComposeDetail(d domain.Dataset) apidatasets.Detail {
	return apidatasets.Detail{
		DatasetId:   d.Id,
		Name:        d.Name,
		Description: d.Description,
		DatasetType: int(d.Type),
		SourceType:  int(d.Source),
		CreatedAt:   rfctime.New(d.CreatedAt),
		UpdatedAt:   rfctime.New(d.UpdatedAt),
	}
}

// ComposeMessageBinding is shared by the register and fetch paths, so
// both render a binding identically.
func ComposeMessageBinding(b domain.MessageBinding) apidatasets.MessageBinding {
	return apidatasets.MessageBinding{
		Dataset: ComposeDetail(b.Dataset),
		Broker:  bindbrokers.ComposeDetail(b.Broker),
		Topic:   bindtopics.ComposeDetail(b.Topic),
	}
}

func ComposeStreamWindow(w domain.StreamWindow) apidatasets.StreamWindow {
	records := w.Records
	if records == nil {
		records = []interface{}{}
	}
	return apidatasets.StreamWindow{
		DatasetId:    w.DatasetId,
		TopicName:    w.TopicName,
		RecordCount:  w.RecordCount,
		SkippedCount: w.SkippedCount,
		Records:      records,
	}
}
