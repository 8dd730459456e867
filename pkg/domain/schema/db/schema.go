package db

import "context"

// SchemaInterface manages the versioned table layout of the database.
type SchemaInterface interface {
	// Upgrade applies every schema version newer than the one recorded
	// in the database, in ascending order.
	Upgrade(ctx context.Context) error

	// Version returns the schema version recorded in the database.
	// A database without a schema_version table reports version 0.
	Version(ctx context.Context) (int, error)

	// Context derives a context which is cancelled when the database
	// schema falls behind the repository on disk.
	Context(ctx context.Context) (context.Context, context.CancelFunc)
}
