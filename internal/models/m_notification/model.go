package m_notification

import "cloud.google.com/go/spanner"

// Model provides type-safe mutation builders for the notifications table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation for inserting a notification.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{NotificationID, Message, Read, CreatedAt},
		[]interface{}{
			data.NotificationID,
			data.Message,
			data.Read,
			spanner.CommitTimestamp,
		},
	)
}
