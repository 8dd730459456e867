package mocks

import (
	"context"
	"errors"

	"github.com/khipulab/khipu/pkg/domain"
	dbmock "github.com/khipulab/khipu/pkg/domain/internal/db/mock"
	"github.com/khipulab/khipu/pkg/domain/stream"
)

type Reader struct {
	Impl struct {
		Read func(context.Context, int, domain.TopicEndpoint, domain.OffsetPolicy, int) (domain.StreamWindow, error)
	}
	Calls struct {
		Read dbmock.CallLog[struct {
			DatasetId  int
			Endpoint   domain.TopicEndpoint
			Policy     domain.OffsetPolicy
			MaxRecords int
		}]
	}
}

func NewReader() *Reader {
	return &Reader{}
}

var _ stream.Reader = &Reader{}

func (r *Reader) Read(
	ctx context.Context,
	datasetId int, endpoint domain.TopicEndpoint,
	policy domain.OffsetPolicy, maxRecords int,
) (domain.StreamWindow, error) {
	r.Calls.Read = append(r.Calls.Read, struct {
		DatasetId  int
		Endpoint   domain.TopicEndpoint
		Policy     domain.OffsetPolicy
		MaxRecords int
	}{
		DatasetId: datasetId, Endpoint: endpoint, Policy: policy, MaxRecords: maxRecords,
	})
	if r.Impl.Read != nil {
		return r.Impl.Read(ctx, datasetId, endpoint, policy, maxRecords)
	}
	panic(errors.New("it should not be called"))
}
