package list_notifications

import (
	"context"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
)

const defaultLimit = 50

// Request contains the notification feed filters.
type Request struct {
	OnlyUnread bool
	Limit      int64
}

// Query handles the list notifications read.
type Query struct {
	readModel contracts.NotificationReadModel
}

// NewQuery creates a new list notifications query.
func NewQuery(readModel contracts.NotificationReadModel) *Query {
	return &Query{readModel: readModel}
}

// Execute lists notifications matching the request, newest first.
func (q *Query) Execute(ctx context.Context, req *Request) ([]*contracts.NotificationRecord, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return q.readModel.List(ctx, req.OnlyUnread, limit)
}
