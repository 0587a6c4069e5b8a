package m_notification

// Field name constants for the notifications table.
const (
	TableName = "notifications"

	NotificationID = "notification_id"
	Message        = "message"
	Read           = "read"
	CreatedAt      = "created_at"
)
