package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/repo"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
	"github.com/machingclee/scriptdeck/tests/testutil"
)

func auditID() int64 {
	now := time.Now()
	return now.UnixMilli()*1000 + int64(now.Nanosecond()/1000)%1000
}

func TestAuditStore_InsertAndMarkSuccessInOneTransaction(t *testing.T) {
	testutil.RequireEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	runner := committer.NewRunner(client)
	store := repo.NewAuditStore(client, runner)

	id := auditID()
	err := runner.ReadWrite(ctx, func(txCtx context.Context) error {
		rec := &cqrs.AuditRecord{
			ID:        id,
			RequestID: "req-1",
			EventType: "CreateFolder",
			Payload:   `{"name":"x"}`,
			Success:   false,
		}
		if err := store.Insert(txCtx, rec); err != nil {
			return err
		}
		// The DML insert is visible to the success flip in the same
		// transaction.
		return store.MarkSuccess(txCtx, id)
	})
	require.NoError(t, err)

	readModel := repo.NewAuditReadModel(client)
	requestID := "req-1"
	records, err := readModel.List(ctx, contracts.AuditFilter{RequestID: &requestID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].Success)
	assert.Equal(t, "CreateFolder", records[0].EventType)
}

func TestAuditStore_RollbackDiscardsInsert(t *testing.T) {
	testutil.RequireEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	runner := committer.NewRunner(client)
	store := repo.NewAuditStore(client, runner)

	boom := errors.New("boom")
	err := runner.ReadWrite(ctx, func(txCtx context.Context) error {
		rec := &cqrs.AuditRecord{ID: auditID(), RequestID: "req-2", EventType: "CreateFolder"}
		if err := store.Insert(txCtx, rec); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	testutil.AssertRowCount(t, client, "command_audit", 0)
}

func TestAuditStore_InsertOutsideTransactionIsDurable(t *testing.T) {
	testutil.RequireEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	runner := committer.NewRunner(client)
	store := repo.NewAuditStore(client, runner)

	rec := &cqrs.AuditRecord{
		ID:        auditID(),
		RequestID: "req-3",
		EventType: "ScriptRan",
		Payload:   `{"script_id":"s-1"}`,
		Success:   true,
	}
	require.NoError(t, store.Insert(ctx, rec))
	assert.Equal(t, int64(1), testutil.CountAuditRows(t, client, "req-3"))
}

func TestAuditStore_MarkSuccessRequiresTransaction(t *testing.T) {
	testutil.RequireEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	runner := committer.NewRunner(client)
	store := repo.NewAuditStore(client, runner)

	err := store.MarkSuccess(context.Background(), auditID())
	assert.ErrorIs(t, err, cqrs.ErrNoActiveTransaction)
}

func TestAuditStore_MarkFailureWritesIndependently(t *testing.T) {
	testutil.RequireEmulator(t)
	client, cleanup := testutil.SetupSpannerTest(t)
	defer cleanup()

	ctx := context.Background()
	runner := committer.NewRunner(client)
	store := repo.NewAuditStore(client, runner)

	id := auditID()
	rec := &cqrs.AuditRecord{ID: id, RequestID: "req-4", EventType: "CreateFolder"}
	require.NoError(t, store.Insert(ctx, rec))

	require.NoError(t, store.MarkFailure(ctx, id, "folder not found"))

	readModel := repo.NewAuditReadModel(client)
	requestID := "req-4"
	records, err := readModel.List(ctx, contracts.AuditFilter{RequestID: &requestID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.False(t, records[0].Success)
	assert.Equal(t, "folder not found", records[0].FailureReason)
}
