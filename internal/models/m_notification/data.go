package m_notification

import "time"

// Data represents the database model for the notifications table.
type Data struct {
	NotificationID string    `spanner:"notification_id"`
	Message        string    `spanner:"message"`
	Read           bool      `spanner:"read"`
	CreatedAt      time.Time `spanner:"created_at"`
}
