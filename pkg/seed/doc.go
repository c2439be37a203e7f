// Package seed populates a freshly created schema with the fixed
// demonstration dataset.
//
// All clients and their projects are written in a single transaction, so a
// failed seed (for example against a store that was already seeded) leaves
// no rows behind.
package seed
