package brokers

import (
	"github.com/khipulab/khipu/pkg/api/types/misc/rfctime"
)

// Spec is the request body registering a broker.
type Spec struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Port    int    `json:"port"`
}

// Change is the request body patching a broker.
// nil fields are left as they are.
type Change struct {
	Name    *string `json:"name,omitempty"`
	Address *string `json:"address,omitempty"`
	Port    *int    `json:"port,omitempty"`
}

type Detail struct {
	BrokerId  int             `json:"brokerId"`
	Name      string          `json:"name"`
	Address   string          `json:"address"`
	Port      int             `json:"port"`
	CreatedAt rfctime.RFC3339 `json:"createdAt"`
}

func (d *Detail) Equal(o *Detail) bool {
	return d.BrokerId == o.BrokerId &&
		d.Name == o.Name &&
		d.Address == o.Address &&
		d.Port == o.Port &&
		d.CreatedAt.Equal(o.CreatedAt)
}
