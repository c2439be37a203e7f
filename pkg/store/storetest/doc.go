// Package storetest provides test doubles for the store interfaces.
//
// The Mock* types are testify mocks for asserting call sequences. Memory is
// an in-memory ClientsStore that enforces the same uniqueness rules as the
// database schema, for exercising routines without a server.
package storetest
