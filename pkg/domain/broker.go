package domain

import (
	"fmt"
	"net"
	"time"
)

// Broker is a reachable message-broker endpoint hosting topics.
type Broker struct {
	Id        int
	Name      string
	Address   string
	Port      int
	CreatedAt time.Time
}

func (b *Broker) Equal(other *Broker) bool {
	return b.Id == other.Id &&
		b.Name == other.Name &&
		b.Address == other.Address &&
		b.Port == other.Port &&
		b.CreatedAt.Equal(other.CreatedAt)
}

// BrokerSpec is what a caller declares to register a Broker.
type BrokerSpec struct {
	Name    string
	Address string
	Port    int
}

// Validate tests the spec before it reaches the database.
//
// Address must be an IPv4 or IPv6 literal, port must be positive.
func (s BrokerSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: broker name is required", ErrInvalid)
	}
	if net.ParseIP(s.Address) == nil {
		return fmt.Errorf("%w: broker address %q is not an IP address literal", ErrInvalid, s.Address)
	}
	if s.Port <= 0 {
		return fmt.Errorf("%w: broker port %d is not positive", ErrInvalid, s.Port)
	}
	return nil
}

// BrokerPatch carries the fields of a partial Broker update.
// nil fields are left as they are.
type BrokerPatch struct {
	Name    *string
	Address *string
	Port    *int
}

func (p BrokerPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: broker name cannot be emptied", ErrInvalid)
	}
	if p.Address != nil && net.ParseIP(*p.Address) == nil {
		return fmt.Errorf("%w: broker address %q is not an IP address literal", ErrInvalid, *p.Address)
	}
	if p.Port != nil && *p.Port <= 0 {
		return fmt.Errorf("%w: broker port %d is not positive", ErrInvalid, *p.Port)
	}
	return nil
}
