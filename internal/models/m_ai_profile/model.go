package m_ai_profile

import "cloud.google.com/go/spanner"

// Model provides type-safe mutation builders for the ai_profiles table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// UpsertMut creates a mutation for inserting or replacing the AI profile.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{ProfileID, Name, ModelField, SystemPrompt, UpdatedAt},
		[]interface{}{
			data.ProfileID,
			data.Name,
			data.Model,
			data.SystemPrompt,
			spanner.CommitTimestamp,
		},
	)
}
