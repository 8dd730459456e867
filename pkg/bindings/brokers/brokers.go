package brokers

import (
	apibrokers "github.com/khipulab/khipu/pkg/api/types/brokers"
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
	"github.com/khipulab/khipu/pkg/domain"
)

func ComposeDetail(b domain.Broker) apibrokers.Detail {
	return apibrokers.Detail{
		BrokerId:  b.Id,
		Name:      b.Name,
		Address:   b.Address,
		Port:      b.Port,
		CreatedAt: rfctime.New(b.CreatedAt),
	}
}
