// Command cleanup_audit prunes old rows from the command_audit table. The
// audit trail is append-only at runtime; retention is enforced out of band
// by this job.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog"
	"google.golang.org/api/iterator"
)

type Config struct {
	SpannerDB        string
	SuccessRetention int
	FailureRetention int
	DryRun           bool
}

func main() {
	config := Config{}
	flag.StringVar(&config.SpannerDB, "database", "", "Spanner database (required, format: projects/PROJECT/instances/INSTANCE/databases/DATABASE)")
	flag.IntVar(&config.SuccessRetention, "success-retention", 30, "Retention days for successful audit rows")
	flag.IntVar(&config.FailureRetention, "failure-retention", 90, "Retention days for failed audit rows")
	flag.BoolVar(&config.DryRun, "dry-run", false, "Show what would be deleted without actually deleting")
	flag.Parse()

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	if config.SpannerDB == "" {
		logger.Fatal().Msg("-database flag is required")
	}

	ctx := context.Background()
	if err := cleanupAudit(ctx, config, logger); err != nil {
		logger.Fatal().Err(err).Msg("cleanup failed")
	}
	logger.Info().Msg("cleanup completed")
}

func cleanupAudit(ctx context.Context, config Config, logger zerolog.Logger) error {
	client, err := spanner.NewClient(ctx, config.SpannerDB)
	if err != nil {
		return fmt.Errorf("failed to create Spanner client: %w", err)
	}
	defer client.Close()

	now := time.Now().UTC()
	successCutoff := now.AddDate(0, 0, -config.SuccessRetention)
	failureCutoff := now.AddDate(0, 0, -config.FailureRetention)

	logger.Info().
		Time("success_cutoff", successCutoff).
		Time("failure_cutoff", failureCutoff).
		Bool("dry_run", config.DryRun).
		Msg("starting audit cleanup")

	params := map[string]interface{}{
		"successCutoff": successCutoff,
		"failureCutoff": failureCutoff,
	}
	where := `(success AND created_at < @successCutoff)
	   OR (NOT success AND created_at < @failureCutoff)`

	if config.DryRun {
		stmt := spanner.Statement{
			SQL:    "SELECT COUNT(*) FROM command_audit WHERE " + where,
			Params: params,
		}
		iter := client.Single().Query(ctx, stmt)
		defer iter.Stop()

		row, err := iter.Next()
		if err != nil && err != iterator.Done {
			return fmt.Errorf("failed to count audit rows: %w", err)
		}
		var count int64
		if err := row.Columns(&count); err != nil {
			return fmt.Errorf("failed to parse count: %w", err)
		}
		logger.Info().Int64("rows", count).Msg("dry run: rows that would be deleted")
		return nil
	}

	_, err = client.ReadWriteTransaction(ctx, func(ctx context.Context, txn *spanner.ReadWriteTransaction) error {
		rowCount, err := txn.Update(ctx, spanner.Statement{
			SQL:    "DELETE FROM command_audit WHERE " + where,
			Params: params,
		})
		if err != nil {
			return fmt.Errorf("failed to delete audit rows: %w", err)
		}
		logger.Info().Int64("rows", rowCount).Msg("deleted old audit rows")
		return nil
	})
	if err != nil {
		return fmt.Errorf("cleanup transaction failed: %w", err)
	}
	return nil
}
