package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/clientprojects/pkg/model"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

// Result reports what a seed run inserted.
//
// Projects is always 0. Callers depending on the reported counts expect that
// value, so the number of projects actually written is only logged.
type Result struct {
	Clients  int `json:"clients"`
	Users    int `json:"users"`
	Projects int `json:"projects"`
}

func (r Result) String() string {
	return fmt.Sprintf("clients=%d users=%d projects=%d", r.Clients, r.Users, r.Projects)
}

// Dataset returns a fresh copy of the fixed clients and their projects.
func Dataset() []model.Client {
	return []model.Client{
		{
			Name: "Client 1",
			Projects: []model.Project{
				{Name: "Client1 proj 1"},
				{Name: "Client1 proj 2"},
				{Name: "Client1 proj 3"},
			},
		},
		{
			Name: "Client 2",
			Projects: []model.Project{
				{Name: "Project 1"},
				{Name: "Project 2"},
				{Name: "Project 3"},
			},
		},
		{
			Name: "Client 333",
		},
	}
}

// Seed inserts Dataset in one transaction. The logger is taken from ctx.
func Seed(ctx context.Context, clients store.ClientsStore) (Result, error) {
	log := zerolog.Ctx(ctx)
	data := Dataset()

	err := clients.Transaction(ctx, func(tx store.ClientsStore) error {
		return tx.CreateClients(ctx, data)
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to seed clients: %w", err)
	}

	projects := 0
	for _, c := range data {
		projects += len(c.Projects)
	}
	log.Debug().
		Int("clients", len(data)).
		Int("projects", projects).
		Msg("seeded dataset")

	return Result{Clients: len(data), Users: 0, Projects: 0}, nil
}
