package domain

import (
	"fmt"
	"time"
)

// Topic is a named message stream hosted by a Broker.
//
// Schema declares the shape of messages in the stream. It is stored and
// returned as-is; khipu does not validate payloads against it.
type Topic struct {
	Id        int
	Name      string
	Schema    map[string]interface{}
	BrokerId  int
	CreatedAt time.Time
}

func (t *Topic) Equal(other *Topic) bool {
	return t.Id == other.Id &&
		t.Name == other.Name &&
		t.BrokerId == other.BrokerId &&
		t.CreatedAt.Equal(other.CreatedAt)
}

type TopicSpec struct {
	Name   string
	Schema map[string]interface{}
}

func (s TopicSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: topic name is required", ErrInvalid)
	}
	return nil
}

// TopicPatch carries the fields of a partial Topic update.
// nil fields are left as they are.
type TopicPatch struct {
	Name   *string
	Schema map[string]interface{}
}

func (p TopicPatch) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return fmt.Errorf("%w: topic name cannot be emptied", ErrInvalid)
	}
	return nil
}
