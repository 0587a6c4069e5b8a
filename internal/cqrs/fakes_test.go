package cqrs

import (
	"context"
	"fmt"
	"sync"
)

// fakeTxn mirrors the shape of a real transaction for unit tests: staged
// audit rows and post-commit hooks, both discarded when the unit of work
// fails.
type fakeTxn struct {
	pending []*AuditRecord
	hooks   []func(context.Context)
}

type fakeTxnContextKey struct{}

// fakeTxManager implements TxManager in memory. Commit flushes the staged
// audit rows into the store and then runs the hooks; an error from fn
// discards both.
type fakeTxManager struct {
	store *memAuditStore

	commits   int
	rollbacks int
}

func newFakeTxManager(store *memAuditStore) *fakeTxManager {
	return &fakeTxManager{store: store}
}

func (m *fakeTxManager) ReadWrite(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(fakeTxnContextKey{}).(*fakeTxn); ok {
		return fn(ctx)
	}

	txn := &fakeTxn{}
	err := fn(context.WithValue(ctx, fakeTxnContextKey{}, txn))
	if err != nil {
		m.rollbacks++
		return err
	}

	m.commits++
	if m.store != nil {
		m.store.flush(txn.pending)
	}
	for _, hook := range txn.hooks {
		hook(ctx)
	}
	return nil
}

func (m *fakeTxManager) AfterCommit(ctx context.Context, fn func(ctx context.Context)) bool {
	txn, ok := ctx.Value(fakeTxnContextKey{}).(*fakeTxn)
	if !ok {
		return false
	}
	txn.hooks = append(txn.hooks, fn)
	return true
}

func (m *fakeTxManager) Active(ctx context.Context) bool {
	_, ok := ctx.Value(fakeTxnContextKey{}).(*fakeTxn)
	return ok
}

// memAuditStore implements AuditStore in memory with the real store's
// durability semantics: inserts inside a transaction only become visible
// when the transaction commits, MarkSuccess flips a staged row, and
// MarkFailure writes independently against durable rows only.
type memAuditStore struct {
	mu   sync.Mutex
	rows []*AuditRecord
}

func newMemAuditStore() *memAuditStore {
	return &memAuditStore{}
}

func (s *memAuditStore) Insert(ctx context.Context, rec *AuditRecord) error {
	copied := *rec
	if txn, ok := ctx.Value(fakeTxnContextKey{}).(*fakeTxn); ok {
		txn.pending = append(txn.pending, &copied)
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, &copied)
	return nil
}

func (s *memAuditStore) MarkSuccess(ctx context.Context, id int64) error {
	txn, ok := ctx.Value(fakeTxnContextKey{}).(*fakeTxn)
	if !ok {
		return fmt.Errorf("mark success outside transaction")
	}
	for _, rec := range txn.pending {
		if rec.ID == id {
			rec.Success = true
			return nil
		}
	}
	return fmt.Errorf("audit record %d not staged", id)
}

func (s *memAuditStore) MarkFailure(ctx context.Context, id int64, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.rows {
		if rec.ID == id {
			rec.Success = false
			rec.FailureReason = reason
			return nil
		}
	}
	return fmt.Errorf("audit record %d not found", id)
}

func (s *memAuditStore) flush(pending []*AuditRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, pending...)
}

// durable returns a snapshot of the committed rows.
func (s *memAuditStore) durable() []*AuditRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]*AuditRecord, len(s.rows))
	copy(snapshot, s.rows)
	return snapshot
}

func (s *memAuditStore) byType(eventType string) []*AuditRecord {
	var matched []*AuditRecord
	for _, rec := range s.durable() {
		if rec.EventType == eventType {
			matched = append(matched, rec)
		}
	}
	return matched
}

// testEvent is a minimal event for runtime tests.
type testEvent struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

func (e testEvent) EventName() string { return e.Name }

// testCommand is a minimal command for runtime tests.
type testCommand struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

func (c testCommand) CommandName() string { return c.Type }

// funcHandler adapts a closure into a Handler.
type funcHandler struct {
	commandType string
	events      []string
	handle      func(ctx context.Context, queue *EventQueue, cmd Command) (any, error)
}

func (h *funcHandler) CommandType() string     { return h.commandType }
func (h *funcHandler) DeclareEvents() []string { return h.events }
func (h *funcHandler) Handle(ctx context.Context, queue *EventQueue, cmd Command) (any, error) {
	return h.handle(ctx, queue, cmd)
}

// staticPolicy declares flows without any behavior.
type staticPolicy struct {
	name  string
	flows []PolicyFlow
}

func (p *staticPolicy) PolicyName() string         { return p.name }
func (p *staticPolicy) DeclareFlows() []PolicyFlow { return p.flows }
