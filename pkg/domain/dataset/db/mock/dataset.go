package mocks

import (
	"context"
	"errors"

	"github.com/khipulab/khipu/pkg/domain"
	kdbdataset "github.com/khipulab/khipu/pkg/domain/dataset/db"
	dbmock "github.com/khipulab/khipu/pkg/domain/internal/db/mock"
)

type DatasetInterface struct {
	Impl struct {
		RegisterMessageBinding   func(context.Context, domain.DatasetSpec, int, int) (domain.MessageBinding, error)
		GetMessageBinding        func(context.Context, int) (domain.MessageBinding, error)
		ResolveTopicEndpoint     func(context.Context, int) (domain.TopicEndpoint, error)
		DeregisterMessageBinding func(context.Context, int) error
	}
	Calls struct {
		RegisterMessageBinding dbmock.CallLog[struct {
			Spec     domain.DatasetSpec
			BrokerId int
			TopicId  int
		}]
		GetMessageBinding        dbmock.CallLog[struct{ DatasetId int }]
		ResolveTopicEndpoint     dbmock.CallLog[struct{ DatasetId int }]
		DeregisterMessageBinding dbmock.CallLog[struct{ DatasetId int }]
	}
}

func NewDatasetInterface() *DatasetInterface {
	return &DatasetInterface{}
}

var _ kdbdataset.DatasetInterface = &DatasetInterface{}

func (di *DatasetInterface) RegisterMessageBinding(
	ctx context.Context, spec domain.DatasetSpec, brokerId int, topicId int,
) (domain.MessageBinding, error) {
	di.Calls.RegisterMessageBinding = append(di.Calls.RegisterMessageBinding, struct {
		Spec     domain.DatasetSpec
		BrokerId int
		TopicId  int
	}{
		Spec: spec, BrokerId: brokerId, TopicId: topicId,
	})
	if di.Impl.RegisterMessageBinding != nil {
		return di.Impl.RegisterMessageBinding(ctx, spec, brokerId, topicId)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) GetMessageBinding(ctx context.Context, datasetId int) (domain.MessageBinding, error) {
	di.Calls.GetMessageBinding = append(di.Calls.GetMessageBinding, struct{ DatasetId int }{DatasetId: datasetId})
	if di.Impl.GetMessageBinding != nil {
		return di.Impl.GetMessageBinding(ctx, datasetId)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) ResolveTopicEndpoint(ctx context.Context, datasetId int) (domain.TopicEndpoint, error) {
	di.Calls.ResolveTopicEndpoint = append(di.Calls.ResolveTopicEndpoint, struct{ DatasetId int }{DatasetId: datasetId})
	if di.Impl.ResolveTopicEndpoint != nil {
		return di.Impl.ResolveTopicEndpoint(ctx, datasetId)
	}
	panic(errors.New("it should not be called"))
}

func (di *DatasetInterface) DeregisterMessageBinding(ctx context.Context, datasetId int) error {
	di.Calls.DeregisterMessageBinding = append(di.Calls.DeregisterMessageBinding, struct{ DatasetId int }{DatasetId: datasetId})
	if di.Impl.DeregisterMessageBinding != nil {
		return di.Impl.DeregisterMessageBinding(ctx, datasetId)
	}
	panic(errors.New("it should not be called"))
}
