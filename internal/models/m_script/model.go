package m_script

import "cloud.google.com/go/spanner"

// Model provides type-safe mutation builders for the scripts table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a script.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{
			ScriptID,
			FolderID,
			Name,
			Body,
			Annotation,
			Position,
			LastRunAt,
			LastExitCode,
			CreatedAt,
			UpdatedAt,
		},
		[]interface{}{
			data.ScriptID,
			data.FolderID,
			data.Name,
			data.Body,
			data.Annotation,
			data.Position,
			data.LastRunAt,
			data.LastExitCode,
			spanner.CommitTimestamp,
			spanner.CommitTimestamp,
		},
	)
}

// UpdateMut creates a mutation for updating specific script fields.
func (m *Model) UpdateMut(scriptID string, updates map[string]interface{}) *spanner.Mutation {
	if len(updates) == 0 {
		return nil
	}
	updates[UpdatedAt] = spanner.CommitTimestamp

	columns := make([]string, 0, len(updates)+1)
	values := make([]interface{}, 0, len(updates)+1)
	columns = append(columns, ScriptID)
	values = append(values, scriptID)
	for col, val := range updates {
		columns = append(columns, col)
		values = append(values, val)
	}
	return spanner.Update(TableName, columns, values)
}
