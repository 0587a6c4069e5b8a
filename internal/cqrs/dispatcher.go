package cqrs

import (
	"context"

	"github.com/rs/zerolog"
)

// TxManager is the transaction boundary the runtime executes against.
// committer.Runner implements it over Spanner; tests use in-memory fakes.
type TxManager interface {
	// ReadWrite runs fn inside a read-write transaction, joining the
	// transaction already carried by ctx if one is active.
	ReadWrite(ctx context.Context, fn func(ctx context.Context) error) error

	// AfterCommit registers fn to fire strictly after the active
	// transaction commits, never on rollback. Returns false when no
	// transaction is active.
	AfterCommit(ctx context.Context, fn func(ctx context.Context)) bool

	// Active reports whether ctx carries an active transaction.
	Active(ctx context.Context) bool
}

// Dispatcher publishes a queue's events according to their declared timing.
type Dispatcher struct {
	bus    *Bus
	txm    TxManager
	logger zerolog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(bus *Bus, txm TxManager, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{bus: bus, txm: txm, logger: logger}
}

// Dispatch publishes every immediate event now, synchronously and in queue
// order, then registers the queue's post-commit events to fire after the
// active transaction commits. If no transaction is active the post-commit
// events are published immediately instead of being silently dropped.
func (d *Dispatcher) Dispatch(ctx context.Context, queue *EventQueue, requestID string) {
	for _, wrapper := range queue.ImmediateEvents() {
		d.publish(ctx, wrapper)
	}

	postCommit := queue.PostCommitEvents()
	if len(postCommit) == 0 {
		return
	}

	registered := d.txm.AfterCommit(ctx, func(cbCtx context.Context) {
		d.dispatchPostCommit(cbCtx, postCommit, requestID)
	})
	if !registered {
		d.logger.Debug().
			Str("request_id", requestID).
			Int("events", len(postCommit)).
			Msg("no active transaction, dispatching post-commit events now")
		for _, wrapper := range postCommit {
			d.publish(ctx, wrapper)
		}
	}
}

// DispatchNow flattens immediate and post-commit events and publishes
// everything synchronously, ignoring timing semantics. Retained for callers
// that do not care about commit ordering.
func (d *Dispatcher) DispatchNow(ctx context.Context, queue *EventQueue, requestID string) {
	for _, wrapper := range queue.AllEvents() {
		d.publish(ctx, wrapper)
	}
}

// dispatchPostCommit fires after the commit. The per-request ambient state
// the events were enqueued under may already be gone from cbCtx, so each
// wrapper's context is replaced by a fresh capture, backfilled from the
// enqueue-time snapshot, and restored for the duration of its publish.
func (d *Dispatcher) dispatchPostCommit(cbCtx context.Context, wrappers []EventWrapper, requestID string) {
	for _, wrapper := range wrappers {
		captured := CaptureExecution(cbCtx)
		if captured.RequestID == "" {
			captured.RequestID = requestID
		}
		if stale := wrapper.Context; stale != nil {
			if captured.ActorID == "" {
				captured.ActorID = stale.ActorID
			}
			if captured.CommandName == "" {
				captured.CommandName = stale.CommandName
			}
			if len(captured.Fields) == 0 {
				captured.Fields = stale.Fields
			}
		}
		wrapper.Context = captured
		d.publish(cbCtx, wrapper)
	}
}

// publish delivers one wrapper: the wrapper itself first (audit and other
// observers), then the inner event (business-reactive consumers). Listener
// failures are isolated inside the bus, so a bad listener never aborts the
// remainder of the batch.
func (d *Dispatcher) publish(ctx context.Context, wrapper EventWrapper) {
	d.bus.Publish(wrapper.Context.Apply(ctx), wrapper)
}
