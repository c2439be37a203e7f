package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/clientprojects/pkg/db"
	"github.com/doodlesbykumbi/clientprojects/pkg/store"
	gormstore "github.com/doodlesbykumbi/clientprojects/pkg/store/gorm"
)

var errInvalidRetries = errors.New("retries must be at least 1")

// dbWaitCmd represents the db wait command
var dbWaitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for the database to accept connections",
	Long: `Wait for the database to accept connections by running a trivial query
once per second until it succeeds or the maximum number of retries is reached.

Example:
  projectctl db wait
  projectctl db wait --retries 60`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		retries, _ := cmd.Flags().GetInt("retries")
		if retries < 1 {
			exitWithError("reach database", errInvalidRetries)
		}

		if err := waitForDatabase(cmd.Context(), cmd, retries); err != nil {
			exitWithError("reach database", err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Database is ready")
	},
}

func init() {
	dbCmd.AddCommand(dbWaitCmd)
	dbWaitCmd.Flags().IntP("retries", "r", 90, "Number of retries")
}

func waitForDatabase(ctx context.Context, cmd *cobra.Command, retries int) error {
	log, database, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close(database) }()

	return pollHealth(ctx, gormstore.NewHealthStore(database), retries, time.Second, log)
}

// pollHealth checks connectivity up to retries times, sleeping interval
// between attempts.
func pollHealth(ctx context.Context, health store.HealthStore, retries int, interval time.Duration, log zerolog.Logger) error {
	if retries < 1 {
		return errInvalidRetries
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		if lastErr = health.CheckConnectivity(ctx); lastErr == nil {
			return nil
		}
		log.Debug().Err(lastErr).Int("attempt", i+1).Msg("database not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
	return fmt.Errorf("database is not ready after %d attempts: %w", retries, lastErr)
}
