package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/machingclee/scriptdeck/internal/app/deck/commands/annotate_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_folder"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/move_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/record_run"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/rename_folder"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/update_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/app/deck/queries/list_notifications"
	"github.com/machingclee/scriptdeck/internal/app/deck/repo"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/tests/testutil"
)

func TestFolderAndScriptLifecycle(t *testing.T) {
	rt, cleanup := setupTest(t)
	defer cleanup()

	// Create a folder.
	folderID, err := cqrs.Invoke[string](ctx(), rt.Invoker, create_folder.Command{Name: "deploy"})
	require.NoError(t, err)
	assert.NotEmpty(t, folderID)
	testutil.AssertAuditRow(t, rt.Client, "CreateFolder")
	testutil.AssertAuditRow(t, rt.Client, "FolderCreated")

	// Rename it.
	_, err = rt.Invoker.Invoke(ctx(), rename_folder.Command{FolderID: folderID, NewName: "deployment"})
	require.NoError(t, err)
	folder := testutil.GetFolderByID(t, rt.Client, folderID)
	assert.Equal(t, "deployment", folder.Name)

	// Create a script inside it.
	scriptID, err := cqrs.Invoke[string](ctx(), rt.Invoker, create_script.Command{
		FolderID: folderID,
		Name:     "rollout",
		Body:     "#!/bin/sh\nkubectl rollout restart deploy/app",
	})
	require.NoError(t, err)

	script := testutil.GetScriptByID(t, rt.Client, scriptID)
	assert.Equal(t, folderID, script.FolderID)
	assert.Equal(t, "rollout", script.Name)

	// The notify policy reacted to ScriptCreated inside the same commit.
	testutil.AssertAuditRow(t, rt.Client, "ScriptCreated > NotifyPolicy > AddNotification")
	testutil.AssertRowCount(t, rt.Client, "notifications", 1)

	// And the feed serves it as unread.
	feed := list_notifications.NewQuery(repo.NewNotificationReadModel(rt.Client))
	notifications, err := feed.Execute(ctx(), &list_notifications.Request{OnlyUnread: true})
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "rollout")
	assert.False(t, notifications[0].Read)

	// Update body and name.
	_, err = rt.Invoker.Invoke(ctx(), update_script.Command{
		ScriptID: scriptID,
		Name:     "rollout-v2",
		Body:     "#!/bin/sh\necho updated",
	})
	require.NoError(t, err)
	script = testutil.GetScriptByID(t, rt.Client, scriptID)
	assert.Equal(t, "rollout-v2", script.Name)

	// Annotate.
	_, err = rt.Invoker.Invoke(ctx(), annotate_script.Command{ScriptID: scriptID, Annotation: "restarts the app"})
	require.NoError(t, err)
	script = testutil.GetScriptByID(t, rt.Client, scriptID)
	require.True(t, script.Annotation.Valid)
	assert.Equal(t, "restarts the app", script.Annotation.StringVal)

	// Move to a second folder.
	otherFolderID, err := cqrs.Invoke[string](ctx(), rt.Invoker, create_folder.Command{Name: "archive"})
	require.NoError(t, err)
	_, err = rt.Invoker.Invoke(ctx(), move_script.Command{ScriptID: scriptID, ToFolderID: otherFolderID})
	require.NoError(t, err)
	script = testutil.GetScriptByID(t, rt.Client, scriptID)
	assert.Equal(t, otherFolderID, script.FolderID)
	testutil.AssertAuditRow(t, rt.Client, "ScriptMoved > NotifyPolicy > AddNotification")

	// Record a run. ScriptRan is post-commit, so its notification lands in
	// a separate transaction after the run's commit.
	_, err = rt.Invoker.Invoke(ctx(), record_run.Command{ScriptID: scriptID, ExitCode: 0})
	require.NoError(t, err)
	script = testutil.GetScriptByID(t, rt.Client, scriptID)
	require.True(t, script.LastRunAt.Valid)
	require.True(t, script.LastExitCode.Valid)
	assert.Zero(t, script.LastExitCode.Int64)
	testutil.AssertAuditRow(t, rt.Client, "ScriptRan")
	testutil.AssertAuditRow(t, rt.Client, "ScriptRan > NotifyPolicy > AddNotification")
}

func TestCreateScript_UnknownFolderRollsBack(t *testing.T) {
	rt, cleanup := setupTest(t)
	defer cleanup()

	_, err := rt.Invoker.Invoke(ctx(), create_script.Command{
		FolderID: "no-such-folder",
		Name:     "orphan",
		Body:     "echo hi",
	})
	require.ErrorIs(t, err, domain.ErrFolderNotFound)

	// Nothing persisted: no script, no notification, no audit rows.
	testutil.AssertRowCount(t, rt.Client, "scripts", 0)
	testutil.AssertRowCount(t, rt.Client, "notifications", 0)
	testutil.AssertRowCount(t, rt.Client, "command_audit", 0)
}

func TestMoveScript_SameFolderConflict(t *testing.T) {
	rt, cleanup := setupTest(t)
	defer cleanup()

	folderID := testutil.CreateTestFolder(t, rt.Client, "only")
	scriptID := testutil.CreateTestScript(t, rt.Client, folderID, "stay")

	_, err := rt.Invoker.Invoke(ctx(), move_script.Command{ScriptID: scriptID, ToFolderID: folderID})
	require.ErrorIs(t, err, domain.ErrSameFolder)

	script := testutil.GetScriptByID(t, rt.Client, scriptID)
	assert.Equal(t, folderID, script.FolderID)
}
