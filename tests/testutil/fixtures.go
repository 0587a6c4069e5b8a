package testutil

import (
	"context"
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/machingclee/scriptdeck/internal/models/m_folder"
	"github.com/machingclee/scriptdeck/internal/models/m_script"
)

// CreateTestFolder creates a folder directly in the database.
func CreateTestFolder(t *testing.T, client *spanner.Client, name string) string {
	t.Helper()

	ctx := context.Background()
	folderID := uuid.New().String()

	model := m_folder.NewModel()
	mutation := model.InsertMut(&m_folder.Data{
		FolderID: folderID,
		Name:     name,
		Position: 0,
	})
	_, err := client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test folder")

	return folderID
}

// CreateTestScript creates a script directly in the database.
func CreateTestScript(t *testing.T, client *spanner.Client, folderID, name string) string {
	t.Helper()

	ctx := context.Background()
	scriptID := uuid.New().String()

	model := m_script.NewModel()
	mutation := model.InsertMut(&m_script.Data{
		ScriptID: scriptID,
		FolderID: folderID,
		Name:     name,
		Body:     "#!/bin/sh\necho test",
		Position: 0,
	})
	_, err := client.Apply(ctx, []*spanner.Mutation{mutation})
	require.NoError(t, err, "failed to create test script")

	return scriptID
}

// GetScriptByID retrieves a script row for verification.
func GetScriptByID(t *testing.T, client *spanner.Client, scriptID string) *m_script.Data {
	t.Helper()

	ctx := context.Background()
	row, err := client.Single().ReadRow(ctx, m_script.TableName, spanner.Key{scriptID}, []string{
		m_script.ScriptID,
		m_script.FolderID,
		m_script.Name,
		m_script.Body,
		m_script.Annotation,
		m_script.Position,
		m_script.LastRunAt,
		m_script.LastExitCode,
		m_script.CreatedAt,
		m_script.UpdatedAt,
	})
	require.NoError(t, err, "failed to get script by id")

	var data m_script.Data
	require.NoError(t, row.ToStruct(&data), "failed to parse script data")
	return &data
}

// GetFolderByID retrieves a folder row for verification.
func GetFolderByID(t *testing.T, client *spanner.Client, folderID string) *m_folder.Data {
	t.Helper()

	ctx := context.Background()
	row, err := client.Single().ReadRow(ctx, m_folder.TableName, spanner.Key{folderID}, []string{
		m_folder.FolderID,
		m_folder.Name,
		m_folder.Position,
		m_folder.CreatedAt,
		m_folder.UpdatedAt,
	})
	require.NoError(t, err, "failed to get folder by id")

	var data m_folder.Data
	require.NoError(t, row.ToStruct(&data), "failed to parse folder data")
	return &data
}

// AssertAuditRow verifies an audit row exists with the given event type.
func AssertAuditRow(t *testing.T, client *spanner.Client, eventType string) {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL:    "SELECT audit_id FROM command_audit WHERE event_type = @eventType",
		Params: map[string]interface{}{"eventType": eventType},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "audit row not found for type: %s", eventType)
	require.NotNil(t, row, "audit row not found for type: %s", eventType)
}

// CountAuditRows returns the number of audit rows for a request id.
func CountAuditRows(t *testing.T, client *spanner.Client, requestID string) int64 {
	t.Helper()

	ctx := context.Background()
	stmt := spanner.Statement{
		SQL:    "SELECT COUNT(*) FROM command_audit WHERE request_id = @requestID",
		Params: map[string]interface{}{"requestID": requestID},
	}

	iter := client.Single().Query(ctx, stmt)
	defer iter.Stop()

	row, err := iter.Next()
	require.NoError(t, err, "failed to count audit rows")

	var count int64
	require.NoError(t, row.Columns(&count), "failed to parse count")
	return count
}
