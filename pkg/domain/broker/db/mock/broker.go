package mocks

import (
	"context"
	"errors"

	"github.com/khipulab/khipu/pkg/domain"
	kdbbroker "github.com/khipulab/khipu/pkg/domain/broker/db"
	dbmock "github.com/khipulab/khipu/pkg/domain/internal/db/mock"
)

type BrokerInterface struct {
	Impl struct {
		Register func(context.Context, domain.BrokerSpec) (domain.Broker, error)
		Update   func(context.Context, int, domain.BrokerPatch) (domain.Broker, error)
		List     func(context.Context) ([]domain.Broker, error)
		Delete   func(context.Context, int) error
	}
	Calls struct {
		Register dbmock.CallLog[struct{ Spec domain.BrokerSpec }]
		Update   dbmock.CallLog[struct {
			Id    int
			Patch domain.BrokerPatch
		}]
		List   dbmock.CallLog[struct{}]
		Delete dbmock.CallLog[struct{ Id int }]
	}
}

func NewBrokerInterface() *BrokerInterface {
	return &BrokerInterface{}
}

var _ kdbbroker.BrokerInterface = &BrokerInterface{}

func (bi *BrokerInterface) Register(ctx context.Context, spec domain.BrokerSpec) (domain.Broker, error) {
	bi.Calls.Register = append(bi.Calls.Register, struct{ Spec domain.BrokerSpec }{Spec: spec})
	if bi.Impl.Register != nil {
		return bi.Impl.Register(ctx, spec)
	}
	panic(errors.New("it should not be called"))
}

func (bi *BrokerInterface) Update(ctx context.Context, id int, patch domain.BrokerPatch) (domain.Broker, error) {
	bi.Calls.Update = append(bi.Calls.Update, struct {
		Id    int
		Patch domain.BrokerPatch
	}{
		Id: id, Patch: patch,
	})
	if bi.Impl.Update != nil {
		return bi.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("it should not be called"))
}

func (bi *BrokerInterface) List(ctx context.Context) ([]domain.Broker, error) {
	bi.Calls.List = append(bi.Calls.List, struct{}{})
	if bi.Impl.List != nil {
		return bi.Impl.List(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (bi *BrokerInterface) Delete(ctx context.Context, id int) error {
	bi.Calls.Delete = append(bi.Calls.Delete, struct{ Id int }{Id: id})
	if bi.Impl.Delete != nil {
		return bi.Impl.Delete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}
