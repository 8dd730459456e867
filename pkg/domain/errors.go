package domain

import "errors"

var (
	// requested broker, topic, dataset or link does not exist.
	// Listing operations also return this when the registry is empty.
	ErrMissing = errors.New("missing")

	// uniqueness violation. The wrapping error carries the id of the
	// pre-existing row (see dberrors/postgres.Duplicated).
	ErrConflict = errors.New("conflict")

	// a caller-supplied value failed validation before reaching the store.
	ErrInvalid = errors.New("invalid")

	// the stream poll finished its window with zero records.
	// The binding is valid; the topic just yielded nothing in time.
	ErrNoMessages = errors.New("no messages in stream window")

	// the broker could not be contacted or the read failed in transport.
	ErrBrokerUnreachable = errors.New("broker unreachable")
)
