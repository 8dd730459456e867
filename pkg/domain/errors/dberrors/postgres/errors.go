package postgres

import (
	"fmt"

	"github.com/khipulab/khipu/pkg/domain"
)

// requested row is missing.
type Missing struct {
	Table    string
	Identity string
}

var _ error = Missing{}

func (m Missing) Error() string {
	return fmt.Sprintf("%s is not found in %s", m.Identity, m.Table)
}

func (m Missing) Unwrap() error {
	return domain.ErrMissing
}

// a row with the same identity already exists.
//
// ExistingId is the id of the row already holding the identity, found by
// pre-check query before the insert. Callers surface it so their users can
// decide whether to reuse the existing registration.
type Duplicated struct {
	Table      string
	Identity   string
	ExistingId int
}

var _ error = Duplicated{}

func (d Duplicated) Error() string {
	return fmt.Sprintf(
		"%s already exists in %s as id %d",
		d.Identity, d.Table, d.ExistingId,
	)
}

func (d Duplicated) Unwrap() error {
	return domain.ErrConflict
}
