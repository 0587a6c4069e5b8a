package contracts

import (
	"context"

	"github.com/machingclee/scriptdeck/internal/cqrs"
)

// AuditFilter narrows an audit trail listing. Nil fields are unfiltered.
type AuditFilter struct {
	RequestID *string
	EventType *string
	Limit     int64
}

// AuditReadModel queries the command audit trail.
type AuditReadModel interface {
	List(ctx context.Context, filter AuditFilter) ([]*cqrs.AuditRecord, error)
}
