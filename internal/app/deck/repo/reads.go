package repo

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// readRow reads through the active transaction when ctx carries one, so a
// handler sees rows written earlier in the same unit of work (including by
// nested command invocations). Outside a transaction it falls back to a
// single-use read-only snapshot.
func readRow(ctx context.Context, client *spanner.Client, table string, key spanner.Key, columns []string) (*spanner.Row, error) {
	if txn, ok := committer.FromContext(ctx); ok {
		return txn.ReadRow(ctx, table, key, columns)
	}
	return client.Single().ReadRow(ctx, table, key, columns)
}

func nullTimePtr(t spanner.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	value := t.Time
	return &value
}

func nullInt64Ptr(i spanner.NullInt64) *int64 {
	if !i.Valid {
		return nil
	}
	value := i.Int64
	return &value
}
