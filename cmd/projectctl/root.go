package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/doodlesbykumbi/clientprojects/pkg/config"
	"github.com/doodlesbykumbi/clientprojects/pkg/db"
	"github.com/doodlesbykumbi/clientprojects/pkg/dberr"
	"github.com/doodlesbykumbi/clientprojects/pkg/demo"
	"github.com/doodlesbykumbi/clientprojects/pkg/logging"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "projectctl",
	Short: "Recreate, seed and query the client projects database",
	Long: `Recreate, seed and query the client projects database.

Without a subcommand this drops and recreates the schema, seeds three clients
with their projects and prints every client owning a project whose name
contains "3", followed by all of that client's projects.

Example:
  projectctl
  projectctl --config ./appsettings.Staging.yml --log-level debug`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runDemo(cmd.Context(), cmd, cmd.OutOrStdout()); err != nil {
			exitWithError("run", err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to the settings file (must exist when given)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: trace, debug, info, warn or error")
}

// Execute runs the root command with a context cancelled on SIGINT or SIGTERM.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func runDemo(ctx context.Context, cmd *cobra.Command, out io.Writer) error {
	log, database, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	runner := &demo.Runner{
		Schema:  gormstore.NewSchemaStore(database),
		Clients: gormstore.NewClientsStore(database),
		Out:     out,
		Log:     log,
	}
	return runner.Run(ctx)
}

// loadConfig loads and validates the configuration, applying the persistent
// flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(config.Options{File: file})
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.SetLogLevel(level, "flag")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads the configuration, builds the stderr logger and opens the
// database session.
func setup(cmd *cobra.Command) (zerolog.Logger, *gorm.DB, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	log.Debug().
		Str("environment", cfg.Environment).
		Str("config_file", cfg.ConfigFilePath()).
		Msg("configuration loaded")

	dbConfig, err := db.FromAppConfig(cfg, log)
	if err != nil {
		return log, nil, err
	}
	database, err := db.Connect(dbConfig)
	if err != nil {
		return log, nil, err
	}
	return log, database, nil
}

// failureMessage formats err for the console, explaining unique violations.
func failureMessage(action string, err error) string {
	msg := fmt.Sprintf("Failed to %s: %v", action, err)
	switch {
	case dberr.IsUniqueViolation(err):
		if constraint := dberr.Constraint(err); constraint != "" {
			msg += "\nThe database already holds this data (" + constraint + ")."
		} else {
			msg += "\nThe database already holds this data."
		}
		msg += " Run 'projectctl db reset' first."
	case errors.Is(err, config.ErrMissingConnectionString):
		msg += "\nSet ConnectionStrings__" + config.DefaultConnectionName + " or DATABASE_URL."
	}
	return msg
}

func exitWithError(action string, err error) {
	fmt.Fprintln(os.Stderr, failureMessage(action, err))
	os.Exit(1)
}
