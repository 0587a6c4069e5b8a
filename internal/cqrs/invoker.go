package cqrs

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Invoker is the single entry point for executing commands.
//
// A top-level invocation (no ambient request id) generates a request id,
// opens a new transaction and audits, executes, and dispatches inside it;
// post-commit events fire after the commit, before Invoke returns. A nested
// invocation (an ambient request id with an active transaction) reuses both
// but still gets a fresh, independent event queue, so a nested failure
// rolls back everything the enclosing invocation had done.
type Invoker struct {
	registry   *Registry
	dispatcher *Dispatcher
	auditor    *Auditor
	txm        TxManager
	logger     zerolog.Logger
}

// NewInvoker creates an Invoker.
func NewInvoker(registry *Registry, dispatcher *Dispatcher, auditor *Auditor, txm TxManager, logger zerolog.Logger) *Invoker {
	return &Invoker{
		registry:   registry,
		dispatcher: dispatcher,
		auditor:    auditor,
		txm:        txm,
		logger:     logger,
	}
}

// Invoke resolves the handler for cmd and executes it inside a transaction.
// Handler errors propagate unchanged after best-effort failure logging; on
// any error the whole transaction rolls back, audit-start row included.
func (inv *Invoker) Invoke(ctx context.Context, cmd Command) (any, error) {
	return inv.invoke(ctx, cmd, nil)
}

// InvokeWithQueue executes cmd accumulating events on a caller-supplied
// queue, giving test harnesses direct access to the produced events without
// going through the durable audit store. Dispatch semantics are unchanged.
func (inv *Invoker) InvokeWithQueue(ctx context.Context, cmd Command, queue *EventQueue) (any, error) {
	return inv.invoke(ctx, cmd, queue)
}

func (inv *Invoker) invoke(ctx context.Context, cmd Command, queue *EventQueue) (any, error) {
	handler, ok := inv.registry.HandlerFor(cmd.CommandName())
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoHandler, cmd.CommandName())
	}

	// Top-level invocations mint the request id; nested ones inherit it.
	// Context scoping keeps the identity alive for exactly the lifetime of
	// the outermost invocation on every exit path.
	requestID := RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = WithRequestID(ctx, requestID)
	}
	ctx = WithCommandName(ctx, cmd.CommandName())

	var result any
	err := inv.txm.ReadWrite(ctx, func(txCtx context.Context) error {
		q := queue
		if q == nil {
			q = NewEventQueue()
		}

		rec, err := inv.auditor.LogCommandInTransaction(txCtx, cmd, requestID)
		if err != nil {
			return err
		}

		res, err := handler.Handle(txCtx, q, cmd)
		if err != nil {
			inv.auditor.LogFailure(txCtx, rec.ID, err.Error())
			return err
		}

		inv.dispatcher.Dispatch(txCtx, q, requestID)

		// Best-effort past this point: the handler succeeded, and audit
		// bookkeeping must not mask that outcome.
		if err := inv.auditor.LogSuccess(txCtx, rec.ID); err != nil {
			inv.logger.Warn().
				Str("command", cmd.CommandName()).
				Str("request_id", requestID).
				Err(err).
				Msg("failed to flip audit record to success")
		}

		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Invoke executes cmd through inv and asserts the handler's result to R.
func Invoke[R any](ctx context.Context, inv *Invoker, cmd Command) (R, error) {
	var zero R
	res, err := inv.Invoke(ctx, cmd)
	if err != nil {
		return zero, err
	}
	typed, ok := res.(R)
	if !ok {
		return zero, fmt.Errorf("command %s returned %T, want %T", cmd.CommandName(), res, zero)
	}
	return typed, nil
}
