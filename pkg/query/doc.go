// Package query runs the filtered client lookup and renders its console
// report: each client name on its own line followed by its project names
// indented two spaces.
package query
