package query

import (
	"context"
	"fmt"
	"io"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

// DefaultSubstring is the project name fragment the demo run filters on.
const DefaultSubstring = "3"

// Run fetches the clients owning a project whose name contains substr and
// writes the report to w.
func Run(ctx context.Context, clients store.ClientsStore, w io.Writer, substr string) error {
	matches, err := clients.ClientsWithProjectNameContaining(ctx, substr)
	if err != nil {
		return fmt.Errorf("failed to query clients: %w", err)
	}
	return Write(w, matches)
}

// Write renders clients in the order given.
func Write(w io.Writer, clients []model.Client) error {
	for _, c := range clients {
		if _, err := fmt.Fprintln(w, c.Name); err != nil {
			return err
		}
		for _, p := range c.Projects {
			if _, err := fmt.Fprintf(w, "  %s\n", p.Name); err != nil {
				return err
			}
		}
	}
	return nil
}
