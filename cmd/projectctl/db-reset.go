package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/clientprojects/pkg/db"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

// dbResetCmd represents the db reset command
var dbResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop and recreate the schema",
	Long: `Drop the Client, Project, Users and client_users tables if they exist
and create them again with their keys and unique indexes. All data is lost.

Example:
  projectctl db reset`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := resetSchema(cmd.Context(), cmd); err != nil {
			exitWithError("reset schema", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Schema recreated")
	},
}

func init() {
	dbCmd.AddCommand(dbResetCmd)
}

func resetSchema(ctx context.Context, cmd *cobra.Command) error {
	log, database, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	log.Info().Msg("recreating schema")
	return gormstore.NewSchemaStore(database).Reset(ctx)
}
