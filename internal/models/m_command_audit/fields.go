package m_command_audit

// Field name constants for the command_audit table.
const (
	TableName = "command_audit"

	AuditID       = "audit_id"
	RequestID     = "request_id"
	EventType     = "event_type"
	Payload       = "payload"
	ActorID       = "actor_id"
	Success       = "success"
	FailureReason = "failure_reason"
	CreatedAt     = "created_at"
)
