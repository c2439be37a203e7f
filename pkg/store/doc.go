// Package store provides storage abstractions for projectctl.
//
// This package defines interfaces for database operations, allowing the seed
// and query routines to be decoupled from the specific database
// implementation. Tests substitute in-memory fakes.
//
// # Available Stores
//
//   - SchemaStore: drop and recreate the mapped schema
//   - ClientsStore: insert clients with their projects, filtered lookups
//   - HealthStore: connectivity checks
//
// # Usage
//
//	clients := gormstore.NewClientsStore(db)
//	err := clients.Transaction(ctx, func(tx store.ClientsStore) error {
//	    return tx.CreateClients(ctx, dataset)
//	})
package store
