package main

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/clientprojects/pkg/db"
	"github.com/doodlesbykumbi/clientprojects/pkg/query"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

// queryCmd represents the query command
var queryCmd = &cobra.Command{
	Use:   "query [substring]",
	Short: "Print clients owning a project whose name contains a substring",
	Long: `Print every client owning at least one project whose name contains the
substring (default "3"), followed by all of that client's projects. The match
is case-sensitive and only looks at project names.

Example:
  projectctl query
  projectctl query proj`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		substr := query.DefaultSubstring
		if len(args) > 0 {
			substr = args[0]
		}

		if err := runQuery(cmd.Context(), cmd, cmd.OutOrStdout(), substr); err != nil {
			exitWithError("query clients", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}

func runQuery(ctx context.Context, cmd *cobra.Command, out io.Writer, substr string) error {
	log, database, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	log.Debug().Str("substring", substr).Msg("querying clients by project name")
	return query.Run(ctx, gormstore.NewClientsStore(database), out, substr)
}
