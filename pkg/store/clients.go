package store

import (
	"context"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
)

// ClientsStore abstracts client and project storage operations
type ClientsStore interface {
	// Transaction runs fn against a store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(ClientsStore) error) error

	// CreateClients inserts clients together with their projects.
	// Identities are assigned on the passed values.
	CreateClients(ctx context.Context, clients []model.Client) error

	// ClientsWithProjectNameContaining returns the clients owning at least
	// one project whose name contains substr, each with all of its projects.
	ClientsWithProjectNameContaining(ctx context.Context, substr string) ([]model.Client, error)
}
