package contracts

import (
	"context"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
)

// NotificationRepository defines the interface for notification persistence.
type NotificationRepository interface {
	// InsertMut creates a mutation for appending a notification.
	InsertMut(notification *domain.Notification) *spanner.Mutation
}

// NotificationRecord is one row of the notification feed.
type NotificationRecord struct {
	ID        string
	Message   string
	Read      bool
	CreatedAt time.Time
}

// NotificationReadModel lists the notification feed, newest first.
type NotificationReadModel interface {
	List(ctx context.Context, onlyUnread bool, limit int64) ([]*NotificationRecord, error)
}
