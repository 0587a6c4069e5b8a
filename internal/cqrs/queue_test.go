package cqrs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventQueue_TimingPartition(t *testing.T) {
	ctx := context.Background()
	queue := NewEventQueue()

	queue.Add(ctx, testEvent{Name: "A", ID: "1"})
	queue.AddTransactional(ctx, testEvent{Name: "B", ID: "2"})
	queue.Add(ctx, testEvent{Name: "C", ID: "3"})
	queue.AddTransactional(ctx, testEvent{Name: "D", ID: "4"})

	require.Equal(t, 4, queue.Len())

	immediate := queue.ImmediateEvents()
	require.Len(t, immediate, 2)
	assert.Equal(t, "A", immediate[0].Event.EventName())
	assert.Equal(t, "C", immediate[1].Event.EventName())
	for _, w := range immediate {
		assert.Equal(t, Immediate, w.Timing)
	}

	postCommit := queue.PostCommitEvents()
	require.Len(t, postCommit, 2)
	assert.Equal(t, "B", postCommit[0].Event.EventName())
	assert.Equal(t, "D", postCommit[1].Event.EventName())
	for _, w := range postCommit {
		assert.Equal(t, PostCommit, w.Timing)
	}
}

func TestEventQueue_AllEventsGroupsImmediateFirst(t *testing.T) {
	ctx := context.Background()
	queue := NewEventQueue()

	queue.AddTransactional(ctx, testEvent{Name: "late"})
	queue.Add(ctx, testEvent{Name: "early"})

	all := queue.AllEvents()
	require.Len(t, all, 2)
	assert.Equal(t, "early", all[0].Event.EventName())
	assert.Equal(t, "late", all[1].Event.EventName())
}

func TestEventQueue_AddAll(t *testing.T) {
	ctx := context.Background()
	queue := NewEventQueue()

	queue.AddAll(ctx, testEvent{Name: "A"}, testEvent{Name: "B"})
	queue.AddAllTransactional(ctx, testEvent{Name: "C"}, testEvent{Name: "D"})

	require.Equal(t, 4, queue.Len())
	assert.Len(t, queue.ImmediateEvents(), 2)
	assert.Len(t, queue.PostCommitEvents(), 2)
}

func TestEventQueue_CapturesContextAtEnqueue(t *testing.T) {
	ctx := WithActorID(context.Background(), "alice")
	ctx = WithRequestID(ctx, "req-1")
	ctx = WithCommandName(ctx, "DoThing")
	ctx = WithDiagnosticField(ctx, "source", "test")

	queue := NewEventQueue()
	queue.Add(ctx, testEvent{Name: "A"})

	// Mutating the ambient context afterwards must not change the snapshot.
	_ = WithActorID(ctx, "mallory")

	wrapper := queue.ImmediateEvents()[0]
	require.NotNil(t, wrapper.Context)
	assert.Equal(t, "alice", wrapper.Context.ActorID)
	assert.Equal(t, "req-1", wrapper.Context.RequestID)
	assert.Equal(t, "DoThing", wrapper.Context.CommandName)
	assert.Equal(t, "test", wrapper.Context.Fields["source"])
}

func TestDispatchTiming_String(t *testing.T) {
	assert.Equal(t, "immediate", Immediate.String())
	assert.Equal(t, "post_commit", PostCommit.String())
	assert.Equal(t, "unknown", DispatchTiming(42).String())
}
