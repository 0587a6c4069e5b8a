package m_command_audit

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the command_audit table.
type Data struct {
	AuditID       int64              `spanner:"audit_id"`
	RequestID     string             `spanner:"request_id"`
	EventType     string             `spanner:"event_type"`
	Payload       spanner.NullJSON   `spanner:"payload"`
	ActorID       spanner.NullString `spanner:"actor_id"`
	Success       bool               `spanner:"success"`
	FailureReason spanner.NullString `spanner:"failure_reason"`
	CreatedAt     time.Time          `spanner:"created_at"`
}
