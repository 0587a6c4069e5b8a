package m_workspace

import "cloud.google.com/go/spanner"

// Model provides type-safe mutation builders for the workspaces table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a workspace.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{WorkspaceID, Name, DefaultFolderID, PinnedScriptIDs, CreatedAt, UpdatedAt},
		[]interface{}{
			data.WorkspaceID,
			data.Name,
			data.DefaultFolderID,
			data.PinnedScriptIDs,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a mutation for updating specific workspace fields.
func (m *Model) UpdateMut(workspaceID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, WorkspaceID)
	values = append(values, workspaceID)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}
	return spanner.Update(TableName, columns, values)
}
