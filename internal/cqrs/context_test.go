package cqrs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextValues_RoundTrip(t *testing.T) {
	ctx := context.Background()

	assert.Empty(t, RequestIDFromContext(ctx))
	assert.Empty(t, ActorIDFromContext(ctx))
	assert.Empty(t, CommandNameFromContext(ctx))

	ctx = WithRequestID(ctx, "req-9")
	ctx = WithActorID(ctx, "bob")
	ctx = WithCommandName(ctx, "CreateScript")

	assert.Equal(t, "req-9", RequestIDFromContext(ctx))
	assert.Equal(t, "bob", ActorIDFromContext(ctx))
	assert.Equal(t, "CreateScript", CommandNameFromContext(ctx))
}

func TestWithDiagnosticField_CopyOnWrite(t *testing.T) {
	base := WithDiagnosticField(context.Background(), "a", "1")
	child := WithDiagnosticField(base, "b", "2")

	baseFields := DiagnosticFieldsFromContext(base)
	childFields := DiagnosticFieldsFromContext(child)

	require.Len(t, baseFields, 1)
	require.Len(t, childFields, 2)
	assert.Equal(t, "1", childFields["a"])
	assert.Equal(t, "2", childFields["b"])
	_, leaked := baseFields["b"]
	assert.False(t, leaked, "child write must not leak into parent context")
}

func TestProvenance_RoundTrip(t *testing.T) {
	_, ok := ProvenanceFromContext(context.Background())
	assert.False(t, ok)

	ctx := WithProvenance(context.Background(), Provenance{Policy: "NotifyPolicy", Event: "ScriptCreated"})
	prov, ok := ProvenanceFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "NotifyPolicy", prov.Policy)
	assert.Equal(t, "ScriptCreated", prov.Event)
}

func TestCaptureExecution_SnapshotIsDetached(t *testing.T) {
	ctx := WithActorID(context.Background(), "carol")
	ctx = WithRequestID(ctx, "req-2")
	ctx = WithDiagnosticField(ctx, "k", "v")

	snapshot := CaptureExecution(ctx)
	require.NotNil(t, snapshot)
	assert.Equal(t, "carol", snapshot.ActorID)
	assert.Equal(t, "req-2", snapshot.RequestID)
	assert.Equal(t, "v", snapshot.Fields["k"])

	snapshot.Fields["k"] = "mutated"
	assert.Equal(t, "v", DiagnosticFieldsFromContext(ctx)["k"])
}

func TestExecutionContext_Apply(t *testing.T) {
	snapshot := &ExecutionContext{
		ActorID:     "dave",
		RequestID:   "req-3",
		CommandName: "MoveScript",
		Fields:      map[string]string{"origin": "worker"},
	}

	restored := snapshot.Apply(context.Background())
	assert.Equal(t, "dave", ActorIDFromContext(restored))
	assert.Equal(t, "req-3", RequestIDFromContext(restored))
	assert.Equal(t, "MoveScript", CommandNameFromContext(restored))
	assert.Equal(t, "worker", DiagnosticFieldsFromContext(restored)["origin"])
}

func TestExecutionContext_ApplyNilIsNoop(t *testing.T) {
	ctx := context.Background()
	var snapshot *ExecutionContext
	assert.Equal(t, ctx, snapshot.Apply(ctx))
}

func TestExecutionContext_ApplySkipsEmptyValues(t *testing.T) {
	ctx := WithActorID(context.Background(), "erin")
	restored := (&ExecutionContext{RequestID: "req-4"}).Apply(ctx)

	// The empty actor in the snapshot must not shadow the ambient one.
	assert.Equal(t, "erin", ActorIDFromContext(restored))
	assert.Equal(t, "req-4", RequestIDFromContext(restored))
}
