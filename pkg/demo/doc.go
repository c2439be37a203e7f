// Package demo runs the complete sequence against a datastore: reset the
// schema, seed the fixed dataset, then print the clients owning a project
// whose name contains query.DefaultSubstring.
package demo
