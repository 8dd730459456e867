package mocks

import (
	"context"
	"errors"

	"github.com/khipulab/khipu/pkg/domain"
	dbmock "github.com/khipulab/khipu/pkg/domain/internal/db/mock"
	kdbtopic "github.com/khipulab/khipu/pkg/domain/topic/db"
)

type TopicInterface struct {
	Impl struct {
		Register func(context.Context, int, domain.TopicSpec) (domain.Topic, error)
		Update   func(context.Context, int, domain.TopicPatch) (domain.Topic, error)
		List     func(context.Context) ([]domain.Topic, error)
		Delete   func(context.Context, int) error
	}
	Calls struct {
		Register dbmock.CallLog[struct {
			BrokerId int
			Spec     domain.TopicSpec
		}]
		Update dbmock.CallLog[struct {
			Id    int
			Patch domain.TopicPatch
		}]
		List   dbmock.CallLog[struct{}]
		Delete dbmock.CallLog[struct{ Id int }]
	}
}

func NewTopicInterface() *TopicInterface {
	return &TopicInterface{}
}

var _ kdbtopic.TopicInterface = &TopicInterface{}

func (ti *TopicInterface) Register(ctx context.Context, brokerId int, spec domain.TopicSpec) (domain.Topic, error) {
	ti.Calls.Register = append(ti.Calls.Register, struct {
		BrokerId int
		Spec     domain.TopicSpec
	}{
		BrokerId: brokerId, Spec: spec,
	})
	if ti.Impl.Register != nil {
		return ti.Impl.Register(ctx, brokerId, spec)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TopicInterface) Update(ctx context.Context, id int, patch domain.TopicPatch) (domain.Topic, error) {
	ti.Calls.Update = append(ti.Calls.Update, struct {
		Id    int
		Patch domain.TopicPatch
	}{
		Id: id, Patch: patch,
	})
	if ti.Impl.Update != nil {
		return ti.Impl.Update(ctx, id, patch)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TopicInterface) List(ctx context.Context) ([]domain.Topic, error) {
	ti.Calls.List = append(ti.Calls.List, struct{}{})
	if ti.Impl.List != nil {
		return ti.Impl.List(ctx)
	}
	panic(errors.New("it should not be called"))
}

func (ti *TopicInterface) Delete(ctx context.Context, id int) error {
	ti.Calls.Delete = append(ti.Calls.Delete, struct{ Id int }{Id: id})
	if ti.Impl.Delete != nil {
		return ti.Impl.Delete(ctx, id)
	}
	panic(errors.New("it should not be called"))
}
