package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/models/m_command_audit"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// AuditStore implements cqrs.AuditStore for Spanner.
//
// Rows written while a transaction is active use DML, so the success flip
// at the end of a command can update the row inserted at its start within
// the same transaction. Rows written outside a transaction (post-commit
// event records) and failure updates go through independent, auto-committed
// writes.
type AuditStore struct {
	client *spanner.Client
	runner *committer.Runner
	model  *m_command_audit.Model
}

// NewAuditStore creates a new AuditStore.
func NewAuditStore(client *spanner.Client, runner *committer.Runner) cqrs.AuditStore {
	return &AuditStore{
		client: client,
		runner: runner,
		model:  m_command_audit.NewModel(),
	}
}

// Insert writes a new audit row, joining the active transaction when ctx
// carries one.
func (s *AuditStore) Insert(ctx context.Context, rec *cqrs.AuditRecord) error {
	data := s.recordToData(rec)
	if txn, ok := committer.FromContext(ctx); ok {
		if _, err := txn.Update(ctx, s.model.InsertStmt(data)); err != nil {
			return fmt.Errorf("failed to insert audit row %d: %w", rec.ID, err)
		}
		return nil
	}
	return s.runner.Apply(ctx, s.model.InsertMut(data))
}

// MarkSuccess flips the row's success flag inside the active transaction.
func (s *AuditStore) MarkSuccess(ctx context.Context, id int64) error {
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return cqrs.ErrNoActiveTransaction
	}
	count, err := txn.Update(ctx, s.model.MarkSuccessStmt(id))
	if err != nil {
		return fmt.Errorf("failed to mark audit row %d successful: %w", id, err)
	}
	if count == 0 {
		return fmt.Errorf("audit row %d not found", id)
	}
	return nil
}

// MarkFailure records the failure reason in its own write, independent of
// the (about to roll back) business transaction.
func (s *AuditStore) MarkFailure(ctx context.Context, id int64, reason string) error {
	return s.runner.Apply(ctx, s.model.FailureMut(id, reason))
}

func (s *AuditStore) recordToData(rec *cqrs.AuditRecord) *m_command_audit.Data {
	return &m_command_audit.Data{
		AuditID:       rec.ID,
		RequestID:     rec.RequestID,
		EventType:     rec.EventType,
		Payload:       spanner.NullJSON{Value: json.RawMessage(rec.Payload), Valid: rec.Payload != ""},
		ActorID:       spanner.NullString{StringVal: rec.ActorID, Valid: rec.ActorID != ""},
		Success:       rec.Success,
		FailureReason: spanner.NullString{StringVal: rec.FailureReason, Valid: rec.FailureReason != ""},
	}
}
