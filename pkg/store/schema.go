package store

import "context"

// SchemaStore manages the lifecycle of the mapped schema.
type SchemaStore interface {
	// Drop removes every mapped table, ignoring tables that do not exist
	Drop(ctx context.Context) error

	// Create issues the create statements for every mapped table and index
	Create(ctx context.Context) error

	// Reset drops and recreates the schema
	Reset(ctx context.Context) error
}
