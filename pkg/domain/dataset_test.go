package domain_test

import (
	"errors"
	"testing"

	"github.com/khipulab/khipu/pkg/domain"
)

func TestAsDatasetType(t *testing.T) {
	for v, want := range map[int]domain.DatasetType{
		0: domain.TrainingData,
		1: domain.InferenceData,
		2: domain.TrainingAndInferenceData,
	} {
		got, err := domain.AsDatasetType(v)
		if err != nil {
			t.Errorf("unexpected error for %d: %s", v, err)
		}
		if got != want {
			t.Errorf("AsDatasetType(%d) = %v, want %v", v, got, want)
		}
	}

	if _, err := domain.AsDatasetType(3); !errors.Is(err, domain.ErrUnknownDatasetType) {
		t.Errorf("error is not ErrUnknownDatasetType: %v", err)
	}
}

func TestAsOffsetPolicy(t *testing.T) {
	for s, want := range map[string]domain.OffsetPolicy{
		"earliest": domain.OffsetEarliest,
		"latest":   domain.OffsetLatest,
	} {
		got, err := domain.AsOffsetPolicy(s)
		if err != nil {
			t.Errorf("unexpected error for %q: %s", s, err)
		}
		if got != want {
			t.Errorf("AsOffsetPolicy(%q) = %v, want %v", s, got, want)
		}
	}

	if _, err := domain.AsOffsetPolicy("newest"); !errors.Is(err, domain.ErrUnknownOffsetPolicy) {
		t.Errorf("error is not ErrUnknownOffsetPolicy: %v", err)
	}
}

func TestDatasetSpecValidate(t *testing.T) {

	t.Run("a named spec with a known type passes", func(t *testing.T) {
		spec := domain.DatasetSpec{Name: "reactor-telemetry", Type: domain.InferenceData}
		if err := spec.Validate(); err != nil {
			t.Errorf("unexpected error: %s", err)
		}
	})

	t.Run("bad specs are ErrInvalid", func(t *testing.T) {
		for name, spec := range map[string]domain.DatasetSpec{
			"empty name":   {Name: "", Type: domain.TrainingData},
			"unknown type": {Name: "x", Type: domain.DatasetType(9)},
		} {
			t.Run(name, func(t *testing.T) {
				if err := spec.Validate(); !errors.Is(err, domain.ErrInvalid) {
					t.Errorf("error is not ErrInvalid: %v", err)
				}
			})
		}
	})
}

func TestTopicEndpointBootstrapServer(t *testing.T) {
	endpoint := domain.TopicEndpoint{
		TopicName: "telemetry", BrokerAddress: "10.0.0.8", BrokerPort: 9092,
	}
	if actual := endpoint.BootstrapServer(); actual != "10.0.0.8:9092" {
		t.Errorf("bootstrap server = %s", actual)
	}
}
