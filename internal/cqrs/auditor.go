package cqrs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/machingclee/scriptdeck/internal/pkg/clock"
)

// AuditRecord is one row of the command audit trail: a command attempt or a
// published event, with its serialized payload and requestor identity.
type AuditRecord struct {
	ID            int64
	RequestID     string
	EventType     string // provenance-aware type label
	Payload       string // JSON
	ActorID       string
	Success       bool
	FailureReason string
	CreatedAt     time.Time
}

// AuditStore persists audit records.
type AuditStore interface {
	// Insert writes a new record. When a transaction is active in ctx the
	// insert joins it; otherwise the store writes independently.
	Insert(ctx context.Context, rec *AuditRecord) error

	// MarkSuccess flips the record's success flag inside the active
	// transaction, so "success" is only durable if the whole unit commits.
	MarkSuccess(ctx context.Context, id int64) error

	// MarkFailure records the failure reason in an independent write, so it
	// can survive the rollback of the business transaction.
	MarkFailure(ctx context.Context, id int64, reason string) error
}

// Auditor writes the immutable audit trail of command attempts and
// published events.
type Auditor struct {
	store  AuditStore
	txm    TxManager
	clock  clock.Clock
	logger zerolog.Logger
}

// NewAuditor creates an Auditor.
func NewAuditor(store AuditStore, txm TxManager, clk clock.Clock, logger zerolog.Logger) *Auditor {
	return &Auditor{store: store, txm: txm, clock: clk, logger: logger}
}

// LogCommandInTransaction serializes the command payload and persists the
// audit-start row with success=false. It must run inside the same
// transaction as the command's business mutation: this is a hard
// precondition, and any failure here fails the invocation.
func (a *Auditor) LogCommandInTransaction(ctx context.Context, cmd Command, requestID string) (*AuditRecord, error) {
	if !a.txm.Active(ctx) {
		return nil, fmt.Errorf("audit command %s: %w", cmd.CommandName(), ErrNoActiveTransaction)
	}

	payload, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize command %s: %w", cmd.CommandName(), err)
	}

	rec := &AuditRecord{
		ID:        a.nextID(),
		RequestID: requestID,
		EventType: a.commandLabel(ctx, cmd),
		Payload:   string(payload),
		ActorID:   ActorIDFromContext(ctx),
		Success:   false,
		CreatedAt: a.clock.Now(),
	}
	if err := a.store.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("failed to write audit record for %s: %w", cmd.CommandName(), err)
	}
	return rec, nil
}

// LogSuccess flips the record's success flag inside the current
// transaction.
func (a *Auditor) LogSuccess(ctx context.Context, id int64) error {
	return a.store.MarkSuccess(ctx, id)
}

// LogFailure records the failure reason in an independent write. Best
// effort: for a top-level failure the audit-start row rolls back with the
// business transaction, so there may be no durable row to update.
func (a *Auditor) LogFailure(ctx context.Context, id int64, reason string) {
	if err := a.store.MarkFailure(ctx, id, reason); err != nil {
		a.logger.Warn().
			Int64("audit_id", id).
			Err(err).
			Msg("failed to record command failure")
	}
}

// EventListener returns a wrapper listener that persists every published
// event to the audit store. Persistence is best-effort: event-logging
// failures must never mask or break application behavior, so errors are
// logged and swallowed.
func (a *Auditor) EventListener() WrapperListenerFunc {
	return func(ctx context.Context, wrapper EventWrapper) {
		payload, err := json.Marshal(wrapper.Event)
		if err != nil {
			a.logger.Warn().
				Str("event", wrapper.Event.EventName()).
				Err(err).
				Msg("failed to serialize event for audit")
			return
		}

		rec := &AuditRecord{
			ID:        a.nextID(),
			RequestID: RequestIDFromContext(ctx),
			EventType: wrapper.Event.EventName(),
			Payload:   string(payload),
			ActorID:   ActorIDFromContext(ctx),
			Success:   true,
			CreatedAt: a.clock.Now(),
		}
		if ectx := wrapper.Context; ectx != nil {
			if rec.RequestID == "" {
				rec.RequestID = ectx.RequestID
			}
			if rec.ActorID == "" {
				rec.ActorID = ectx.ActorID
			}
		}
		if err := a.store.Insert(ctx, rec); err != nil {
			a.logger.Warn().
				Str("event", wrapper.Event.EventName()).
				Err(err).
				Msg("failed to persist event audit record")
		}
	}
}

// commandLabel builds the audit type label. A command invoked by a policy
// reacting to an event is labeled "<Event> > <Policy> > <Command>"; one
// invoked by a policy whose triggering event is unknown is labeled
// "<Policy> > <Command>"; a direct invocation is just the command name.
func (a *Auditor) commandLabel(ctx context.Context, cmd Command) string {
	prov, ok := ProvenanceFromContext(ctx)
	if !ok || prov.Policy == "" {
		return cmd.CommandName()
	}
	if prov.Event == "" {
		return fmt.Sprintf("%s > %s", prov.Policy, cmd.CommandName())
	}
	return fmt.Sprintf("%s > %s > %s", prov.Event, prov.Policy, cmd.CommandName())
}

// nextID derives a uniqueness-biased identifier from the wall clock:
// milliseconds scaled by a thousand plus a sub-millisecond sample, so rows
// created in rapid succession within the same millisecond still sort
// distinctly. Best-effort only: not monotonic and not collision-free.
func (a *Auditor) nextID() int64 {
	now := a.clock.Now()
	return now.UnixMilli()*1000 + int64(now.Nanosecond()/1000)%1000
}
