package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScript(t *testing.T) *Script {
	t.Helper()
	return ReconstructScript("s-1", "f-1", "backup", "#!/bin/sh\necho hi", "", 0, nil, nil, testTime(), testTime())
}

func TestNewScript(t *testing.T) {
	t.Run("creates script with event", func(t *testing.T) {
		now := testTime()
		script, err := NewScript("s-1", "f-1", "backup", "#!/bin/sh\necho hi", 2, now)
		require.NoError(t, err)

		assert.Equal(t, "s-1", script.ID())
		assert.Equal(t, "f-1", script.FolderID())
		assert.Equal(t, int64(2), script.Position())
		assert.Nil(t, script.LastRunAt())
		assert.Nil(t, script.LastExitCode())

		require.Len(t, script.Events(), 1)
		created, ok := script.Events()[0].(*ScriptCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, "s-1", created.ScriptID)
		assert.Equal(t, "f-1", created.FolderID)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewScript("s-1", "f-1", "", "body", 0, testTime())
		assert.ErrorIs(t, err, ErrEmptyName)
	})

	t.Run("rejects empty body", func(t *testing.T) {
		_, err := NewScript("s-1", "f-1", "backup", "", 0, testTime())
		assert.ErrorIs(t, err, ErrEmptyBody)
	})
}

func TestScript_Update(t *testing.T) {
	t.Run("updates name and body", func(t *testing.T) {
		script := newTestScript(t)
		later := testTime().Add(time.Hour)

		require.NoError(t, script.Update("backup-v2", "echo bye", later))
		assert.Equal(t, "backup-v2", script.Name())
		assert.Equal(t, "echo bye", script.Body())
		assert.Equal(t, later, script.UpdatedAt())

		require.Len(t, script.Events(), 1)
		_, ok := script.Events()[0].(*ScriptUpdatedEvent)
		assert.True(t, ok)
		assert.True(t, script.Changes().Dirty(FieldScriptName))
		assert.True(t, script.Changes().Dirty(FieldScriptBody))
	})

	t.Run("rejects empty body", func(t *testing.T) {
		script := newTestScript(t)
		err := script.Update("backup-v2", "", testTime())
		assert.ErrorIs(t, err, ErrEmptyBody)
		assert.Empty(t, script.Events())
	})
}

func TestScript_Annotate(t *testing.T) {
	t.Run("sets annotation", func(t *testing.T) {
		script := newTestScript(t)
		script.Annotate("runs nightly", testTime())

		assert.Equal(t, "runs nightly", script.Annotation())
		require.Len(t, script.Events(), 1)
		annotated, ok := script.Events()[0].(*ScriptAnnotatedEvent)
		require.True(t, ok)
		assert.Equal(t, "runs nightly", annotated.Annotation)
	})

	t.Run("empty annotation clears it", func(t *testing.T) {
		script := ReconstructScript("s-1", "f-1", "backup", "body", "stale note", 0, nil, nil, testTime(), testTime())
		script.Annotate("", testTime())
		assert.Empty(t, script.Annotation())
		assert.True(t, script.Changes().Dirty(FieldScriptAnnotation))
	})
}

func TestScript_MoveTo(t *testing.T) {
	t.Run("moves to another folder", func(t *testing.T) {
		script := newTestScript(t)
		require.NoError(t, script.MoveTo("f-2", 5, testTime()))

		assert.Equal(t, "f-2", script.FolderID())
		assert.Equal(t, int64(5), script.Position())

		require.Len(t, script.Events(), 1)
		moved, ok := script.Events()[0].(*ScriptMovedEvent)
		require.True(t, ok)
		assert.Equal(t, "f-1", moved.FromFolderID)
		assert.Equal(t, "f-2", moved.ToFolderID)
	})

	t.Run("rejects move into the same folder", func(t *testing.T) {
		script := newTestScript(t)
		err := script.MoveTo("f-1", 5, testTime())
		assert.ErrorIs(t, err, ErrSameFolder)
		assert.Empty(t, script.Events())
	})
}

func TestScript_RecordRun(t *testing.T) {
	script := newTestScript(t)
	ranAt := testTime().Add(2 * time.Hour)
	script.RecordRun(137, ranAt)

	require.NotNil(t, script.LastRunAt())
	assert.Equal(t, ranAt, *script.LastRunAt())
	require.NotNil(t, script.LastExitCode())
	assert.Equal(t, int64(137), *script.LastExitCode())

	require.Len(t, script.Events(), 1)
	ran, ok := script.Events()[0].(*ScriptRanEvent)
	require.True(t, ok)
	assert.Equal(t, int64(137), ran.ExitCode)
	assert.True(t, script.Changes().Dirty(FieldScriptLastRunAt))
	assert.True(t, script.Changes().Dirty(FieldScriptLastExit))
}
