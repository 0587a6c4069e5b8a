package cqrs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machingclee/scriptdeck/internal/pkg/clock"
)

func newTestAuditor(store *memAuditStore, txm *fakeTxManager, clk clock.Clock) *Auditor {
	if clk == nil {
		clk = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	}
	return NewAuditor(store, txm, clk, testLogger())
}

func TestAuditor_LogCommandRequiresTransaction(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)

	_, err := auditor.LogCommandInTransaction(context.Background(), testCommand{Type: "DoThing"}, "req-1")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveTransaction)
}

func TestAuditor_LogCommandWritesPendingRow(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)

	err := txm.ReadWrite(context.Background(), func(ctx context.Context) error {
		ctx = WithActorID(ctx, "alice")
		rec, err := auditor.LogCommandInTransaction(ctx, testCommand{Type: "DoThing", Value: "x"}, "req-1")
		require.NoError(t, err)

		assert.Equal(t, "DoThing", rec.EventType)
		assert.Equal(t, "req-1", rec.RequestID)
		assert.Equal(t, "alice", rec.ActorID)
		assert.False(t, rec.Success)
		assert.JSONEq(t, `{"type":"DoThing","value":"x"}`, rec.Payload)

		// Not durable yet.
		assert.Empty(t, store.durable())
		return nil
	})
	require.NoError(t, err)

	rows := store.durable()
	require.Len(t, rows, 1)
	assert.Equal(t, "DoThing", rows[0].EventType)
}

func TestAuditor_CommandLabelCarriesProvenance(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)

	cases := []struct {
		name string
		prov *Provenance
		want string
	}{
		{name: "direct invocation", prov: nil, want: "AddNotification"},
		{name: "policy without event", prov: &Provenance{Policy: "NotifyPolicy"}, want: "NotifyPolicy > AddNotification"},
		{name: "policy reaction", prov: &Provenance{Policy: "NotifyPolicy", Event: "ScriptCreated"}, want: "ScriptCreated > NotifyPolicy > AddNotification"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := txm.ReadWrite(context.Background(), func(ctx context.Context) error {
				if tc.prov != nil {
					ctx = WithProvenance(ctx, *tc.prov)
				}
				rec, err := auditor.LogCommandInTransaction(ctx, testCommand{Type: "AddNotification"}, "req-1")
				require.NoError(t, err)
				assert.Equal(t, tc.want, rec.EventType)
				return nil
			})
			require.NoError(t, err)
		})
	}
}

func TestAuditor_LogSuccessFlipsRowInsideTransaction(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)

	err := txm.ReadWrite(context.Background(), func(ctx context.Context) error {
		rec, err := auditor.LogCommandInTransaction(ctx, testCommand{Type: "DoThing"}, "req-1")
		require.NoError(t, err)
		return auditor.LogSuccess(ctx, rec.ID)
	})
	require.NoError(t, err)

	rows := store.durable()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Success)
}

func TestAuditor_LogFailureIsBestEffort(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)

	// The row was never committed, so the independent failure write finds
	// nothing; the auditor must swallow that.
	require.NotPanics(t, func() {
		auditor.LogFailure(context.Background(), 12345, "boom")
	})
	assert.Empty(t, store.durable())
}

func TestAuditor_EventListenerPersistsEvents(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)
	listener := auditor.EventListener()

	ctx := WithRequestID(context.Background(), "req-7")
	ctx = WithActorID(ctx, "gina")
	listener(ctx, EventWrapper{Event: testEvent{Name: "ScriptCreated", ID: "s1"}})

	rows := store.durable()
	require.Len(t, rows, 1)
	assert.Equal(t, "ScriptCreated", rows[0].EventType)
	assert.Equal(t, "req-7", rows[0].RequestID)
	assert.Equal(t, "gina", rows[0].ActorID)
	assert.True(t, rows[0].Success)
	assert.JSONEq(t, `{"name":"ScriptCreated","id":"s1"}`, rows[0].Payload)
}

func TestAuditor_EventListenerBackfillsFromWrapperContext(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	auditor := newTestAuditor(store, txm, nil)
	listener := auditor.EventListener()

	listener(context.Background(), EventWrapper{
		Event:   testEvent{Name: "ScriptRan"},
		Context: &ExecutionContext{RequestID: "req-8", ActorID: "hank"},
	})

	rows := store.durable()
	require.Len(t, rows, 1)
	assert.Equal(t, "req-8", rows[0].RequestID)
	assert.Equal(t, "hank", rows[0].ActorID)
}

func TestAuditor_NextIDDerivesFromClock(t *testing.T) {
	store := newMemAuditStore()
	txm := newFakeTxManager(store)
	base := time.Date(2026, 3, 1, 12, 0, 0, 123_456_789, time.UTC)
	clk := clock.NewMockClock(base)
	auditor := newTestAuditor(store, txm, clk)

	err := txm.ReadWrite(context.Background(), func(ctx context.Context) error {
		rec, err := auditor.LogCommandInTransaction(ctx, testCommand{Type: "DoThing"}, "req-1")
		require.NoError(t, err)
		want := base.UnixMilli()*1000 + int64(base.Nanosecond()/1000)%1000
		assert.Equal(t, want, rec.ID)
		return nil
	})
	require.NoError(t, err)
}
