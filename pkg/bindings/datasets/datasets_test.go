package datasets_test

import (
	"testing"
	"time"

	apidatasets "github.com/khipulab/khipu/pkg/api/types/datasets"
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
	binddatasets "github.com/khipulab/khipu/pkg/bindings/datasets"
	"github.com/khipulab/khipu/pkg/domain"
)

func TestComposeMessageBinding(t *testing.T) {
	createdAt := time.Date(2024, 4, 1, 12, 30, 0, 0, time.UTC)
	updatedAt := createdAt.Add(2 * time.Hour)

	binding := domain.MessageBinding{
		Dataset: domain.Dataset{
			Id: 7, Name: "reactor-telemetry", Description: "live reactor readings",
			Type: domain.InferenceData, Source: domain.SourceBroker,
			CreatedAt: createdAt, UpdatedAt: updatedAt,
		},
		Broker: domain.Broker{
			Id: 3, Name: "plant-kafka", Address: "10.0.0.8", Port: 9092,
			CreatedAt: createdAt,
		},
		Topic: domain.Topic{
			Id: 11, Name: "telemetry",
			Schema:   map[string]interface{}{"temp": "float"},
			BrokerId: 3, CreatedAt: createdAt,
		},
	}

	actual := binddatasets.ComposeMessageBinding(binding)

	expectedDataset := apidatasets.Detail{
		DatasetId: 7, Name: "reactor-telemetry",
		Description: "live reactor readings",
		DatasetType: int(domain.InferenceData),
		SourceType:  int(domain.SourceBroker),
		CreatedAt:   rfctime.New(createdAt), UpdatedAt: rfctime.New(updatedAt),
	}
	if !actual.Dataset.Equal(&expectedDataset) {
		t.Errorf("dataset detail mismatch: got %+v, want %+v", actual.Dataset, expectedDataset)
	}

	if actual.Broker.BrokerId != 3 || actual.Broker.Name != "plant-kafka" ||
		actual.Broker.Address != "10.0.0.8" || actual.Broker.Port != 9092 {
		t.Errorf("broker detail mismatch: got %+v", actual.Broker)
	}

	if actual.Topic.TopicId != 11 || actual.Topic.Name != "telemetry" ||
		actual.Topic.BrokerId != 3 {
		t.Errorf("topic detail mismatch: got %+v", actual.Topic)
	}
	if v, ok := actual.Topic.Schema["temp"]; !ok || v != "float" {
		t.Errorf("topic schema mismatch: got %+v", actual.Topic.Schema)
	}
}

func TestComposeDetailTranslatesEnums(t *testing.T) {
	for name, testcase := range map[string]struct {
		dataset  domain.Dataset
		wantType int
		wantSrc  int
	}{
		"training dataset from a file": {
			dataset:  domain.Dataset{Type: domain.TrainingData, Source: domain.SourceFile},
			wantType: 0, wantSrc: 0,
		},
		"mixed-use dataset from a broker": {
			dataset:  domain.Dataset{Type: domain.TrainingAndInferenceData, Source: domain.SourceBroker},
			wantType: 2, wantSrc: 2,
		},
	} {
		t.Run(name, func(t *testing.T) {
			detail := binddatasets.ComposeDetail(testcase.dataset)
			if detail.DatasetType != testcase.wantType {
				t.Errorf("dataset type: got %d, want %d", detail.DatasetType, testcase.wantType)
			}
			if detail.SourceType != testcase.wantSrc {
				t.Errorf("source type: got %d, want %d", detail.SourceType, testcase.wantSrc)
			}
		})
	}
}

func TestComposeStreamWindowNeverRendersNullRecords(t *testing.T) {
	window := binddatasets.ComposeStreamWindow(domain.StreamWindow{
		DatasetId: 7, TopicName: "telemetry",
	})
	if window.Records == nil {
		t.Error("records should be an empty slice, not nil")
	}
	if window.RecordCount != 0 {
		t.Errorf("record count: got %d, want 0", window.RecordCount)
	}
}
