package list_audit

import (
	"context"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
)

const defaultLimit = 100

// Request contains the audit trail filters.
type Request struct {
	RequestID *string
	EventType *string
	Limit     int64
}

// Query handles the list audit records read.
type Query struct {
	readModel contracts.AuditReadModel
}

// NewQuery creates a new list audit query.
func NewQuery(readModel contracts.AuditReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists audit records matching the request, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*cqrs.AuditRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return q.readModel.List(ctx, contracts.AuditFilter{
		RequestID: req.RequestID,
		EventType: req.EventType,
		Limit:     limit,
	})
}
