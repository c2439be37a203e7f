// Package model defines the database models for projectctl.
//
// The gorm tags on each model are the schema mapping: table names, primary
// keys, foreign keys and unique indexes. Identities are uuids assigned in a
// BeforeCreate hook, so callers never set them.
//
// # Models
//
//   - Client: named owner of projects (table "Client")
//   - Project: named project of one client (table "Project")
//   - User: declared with a many-to-many link to clients (table "Users")
//
// # Constraints
//
//   - IX_Client_Name: unique client name
//   - IX_Project_ClientId_Name: unique (client_id, name)
//   - Project.client_id references Client.id ON DELETE CASCADE
//   - client_users joins Users and Client
package model
