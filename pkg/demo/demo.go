package demo

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"github.com/doodlesbykumbi/clientprojects/pkg/query"
	"github.com/doodlesbykumbi/clientprojects/pkg/seed"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
)

// Runner wires the stores and output of a demo run.
type Runner struct {
	Schema  store.SchemaStore
	Clients store.ClientsStore
	Out     io.Writer
	Log     zerolog.Logger
}

// Run executes reset, seed and query in order and stops at the first error.
func (r *Runner) Run(ctx context.Context) error {
	ctx = r.Log.WithContext(ctx)

	r.Log.Info().Msg("recreating schema")
	if err := r.Schema.Reset(ctx); err != nil {
		return err
	}

	result, err := seed.Seed(ctx, r.Clients)
	if err != nil {
		return err
	}
	r.Log.Info().
		Int("clients", result.Clients).
		Int("users", result.Users).
		Int("projects", result.Projects).
		Msg("seeded")

	r.Log.Info().Str("substring", query.DefaultSubstring).Msg("querying clients by project name")
	return query.Run(ctx, r.Clients, r.Out, query.DefaultSubstring)
}
