// Package committer owns the Spanner transaction boundary for command
// execution.
//
// A top-level command opens one read-write transaction; the active
// transaction travels in the context so that nested command invocations
// join it instead of opening their own. Repositories buffer mutations into
// the active transaction (or run DML through it when a row written earlier
// in the same transaction must be updated), and callbacks registered with
// AfterCommit fire only once the transaction has durably committed.
package committer

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
)

// Txn is the active read-write transaction plus its post-commit hooks.
type Txn struct {
	rw    *spanner.ReadWriteTransaction
	hooks []func(context.Context)
}

// BufferWrite queues mutations to be applied at commit time.
// Nil mutations are silently ignored for convenience.
func (t *Txn) BufferWrite(muts ...*spanner.Mutation) error {
	filtered := make([]*spanner.Mutation, 0, len(muts))
	for _, mut := range muts {
		if mut != nil {
			filtered = append(filtered, mut)
		}
	}
	if len(filtered) == 0 {
		return nil
	}
	return t.rw.BufferWrite(filtered)
}

// Update executes a DML statement inside the transaction and returns the
// affected row count. Unlike buffered mutations, DML is visible to later
// statements in the same transaction, which is what allows a row inserted
// at the start of a command to be updated before commit.
func (t *Txn) Update(ctx context.Context, stmt spanner.Statement) (int64, error) {
	return t.rw.Update(ctx, stmt)
}

// Query runs a read inside the transaction.
func (t *Txn) Query(ctx context.Context, stmt spanner.Statement) *spanner.RowIterator {
	return t.rw.Query(ctx, stmt)
}

// ReadRow reads a single row inside the transaction.
func (t *Txn) ReadRow(ctx context.Context, table string, key spanner.Key, columns []string) (*spanner.Row, error) {
	return t.rw.ReadRow(ctx, table, key, columns)
}

// AfterCommit registers fn to run after the transaction commits.
// Hooks never run on rollback.
func (t *Txn) AfterCommit(fn func(context.Context)) {
	t.hooks = append(t.hooks, fn)
}

type txnContextKey struct{}

// FromContext returns the active transaction carried by ctx, if any.
func FromContext(ctx context.Context) (*Txn, bool) {
	txn, ok := ctx.Value(txnContextKey{}).(*Txn)
	return txn, ok
}

func withTxn(ctx context.Context, txn *Txn) context.Context {
	return context.WithValue(ctx, txnContextKey{}, txn)
}

// Runner executes units of work against Spanner.
type Runner struct {
	client *spanner.Client
}

// NewRunner creates a new Runner.
func NewRunner(client *spanner.Client) *Runner {
	return &Runner{client: client}
}

// ReadWrite runs fn inside a read-write transaction.
//
// If ctx already carries an active transaction the call joins it: fn runs
// directly and commit (or rollback) stays with the enclosing unit of work.
// Otherwise a new transaction is opened, fn runs with the transaction in
// its context, and on successful commit every registered post-commit hook
// fires, in registration order, before ReadWrite returns.
func (r *Runner) ReadWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := FromContext(ctx); ok {
		return fn(ctx)
	}

	txn := &Txn{}
	_, err := r.client.ReadWriteTransaction(ctx, func(txCtx context.Context, rw *spanner.ReadWriteTransaction) error {
		// Spanner may retry the whole function on abort; hooks collected
		// by an abandoned attempt must not survive into the next one.
		txn.rw = rw
		txn.hooks = nil
		return fn(withTxn(txCtx, txn))
	})
	if err != nil {
		return err
	}

	for _, hook := range txn.hooks {
		hook(ctx)
	}
	return nil
}

// Active reports whether ctx carries an active transaction.
func (r *Runner) Active(ctx context.Context) bool {
	_, ok := FromContext(ctx)
	return ok
}

// AfterCommit registers fn on the active transaction. It returns false when
// no transaction is active, leaving the caller to decide how to degrade.
func (r *Runner) AfterCommit(ctx context.Context, fn func(context.Context)) bool {
	txn, ok := FromContext(ctx)
	if !ok {
		return false
	}
	txn.AfterCommit(fn)
	return true
}

// Apply writes mutations in their own transaction, independent of any
// transaction carried by ctx. Used for writes that must survive a rollback
// of the surrounding unit of work.
func (r *Runner) Apply(ctx context.Context, muts ...*spanner.Mutation) error {
	if len(muts) == 0 {
		return nil
	}
	if _, err := r.client.Apply(context.WithoutCancel(ctx), muts); err != nil {
		return fmt.Errorf("failed to apply mutations: %w", err)
	}
	return nil
}
