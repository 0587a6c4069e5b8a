package m_command_audit

import (
	"fmt"

	"cloud.google.com/go/spanner"
)

// Model provides statement and mutation builders for the command_audit
// table. Audit rows written during a command use DML rather than buffered
// mutations so the success flip can update a row inserted earlier in the
// same transaction.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertStmt builds a DML statement inserting an audit row.
func (m *Model) InsertStmt(data *Data) spanner.Statement {
	sql := fmt.Sprintf(
		"INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s) VALUES (@auditID, @requestID, @eventType, @payload, @actorID, @success, @failureReason, PENDING_COMMIT_TIMESTAMP())",
		TableName, AuditID, RequestID, EventType, Payload, ActorID, Success, FailureReason, CreatedAt,
	)
	return spanner.Statement{
		SQL: sql,
		Params: map[string]interface{}{
			"auditID":       data.AuditID,
			"requestID":     data.RequestID,
			"eventType":     data.EventType,
			"payload":       data.Payload,
			"actorID":       data.ActorID,
			"success":       data.Success,
			"failureReason": data.FailureReason,
		},
	}
}

// MarkSuccessStmt builds a DML statement flipping a row's success flag.
func (m *Model) MarkSuccessStmt(auditID int64) spanner.Statement {
	sql := fmt.Sprintf("UPDATE %s SET %s = TRUE WHERE %s = @auditID", TableName, Success, AuditID)
	return spanner.Statement{
		SQL:    sql,
		Params: map[string]interface{}{"auditID": auditID},
	}
}

// FailureMut builds a mutation recording a failure reason, for application
// outside the business transaction.
func (m *Model) FailureMut(auditID int64, reason string) *spanner.Mutation {
	return spanner.Update(
		TableName,
		[]string{AuditID, Success, FailureReason},
		[]interface{}{auditID, false, reason},
	)
}

// InsertMut builds a plain insert mutation, for audit rows written outside
// any transaction (post-commit event records).
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.Insert(
		TableName,
		[]string{AuditID, RequestID, EventType, Payload, ActorID, Success, FailureReason, CreatedAt},
		[]interface{}{
			data.AuditID,
			data.RequestID,
			data.EventType,
			data.Payload,
			data.ActorID,
			data.Success,
			data.FailureReason,
			spanner.CommitTimestamp,
		},
	)
}
