package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/models/m_notification"
	"github.com/machingclee/scriptdeck/internal/pkg/query"
)

// NotificationReadModel implements the notification feed read model for Spanner.
type NotificationReadModel struct {
	client *spanner.Client
}

// NewNotificationReadModel creates a new NotificationReadModel.
func NewNotificationReadModel(client *spanner.Client) contracts.NotificationReadModel {
	return &NotificationReadModel{client: client}
}

// List retrieves notifications, newest first.
func (r *NotificationReadModel) List(ctx context.Context, onlyUnread bool, limit int64) ([]*contracts.NotificationRecord, error) {
	builder := query.From(m_notification.TableName).
		Select(
			m_notification.NotificationID,
			m_notification.Message,
			m_notification.Read,
			m_notification.CreatedAt,
		).
		OrderBy(m_notification.CreatedAt, query.Desc).
		Limit(limit)

	if onlyUnread {
		builder = builder.Where(query.Eq(m_notification.Read, false))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var records []*contracts.NotificationRecord
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate notification rows: %w", err)
		}

		var data m_notification.Data
		if err := row.Columns(&data.NotificationID, &data.Message, &data.Read, &data.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification row: %w", err)
		}
		records = append(records, &contracts.NotificationRecord{
			ID:        data.NotificationID,
			Message:   data.Message,
			Read:      data.Read,
			CreatedAt: data.CreatedAt,
		})
	}
	return records, nil
}
