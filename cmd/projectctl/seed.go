package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/clientprojects/pkg/db"
	"github.com/doodlesbykumbi/clientprojects/pkg/seed"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

// seedCmd represents the seed command
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the demonstration clients and projects",
	Long: `Insert the three demonstration clients and their projects in a single
transaction and print the result counts. Seeding a database that already
holds the data fails on the unique client name and writes nothing.

Example:
  projectctl db reset && projectctl seed
  projectctl seed --output json`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		if err := runSeed(cmd.Context(), cmd, cmd.OutOrStdout(), output); err != nil {
			exitWithError("seed database", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
	seedCmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
}

func runSeed(ctx context.Context, cmd *cobra.Command, out io.Writer, output string) error {
	log, database, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	result, err := seed.Seed(log.WithContext(ctx), gormstore.NewClientsStore(database))
	if err != nil {
		return err
	}
	return writeSeedResult(out, result, output)
}

func writeSeedResult(out io.Writer, result seed.Result, output string) error {
	if output == "json" {
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
	_, err := fmt.Fprintf(out, "Clients: %d\nUsers: %d\nProjects: %d\n", result.Clients, result.Users, result.Projects)
	return err
}
