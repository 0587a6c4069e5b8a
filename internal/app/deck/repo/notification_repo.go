package repo

import (
	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/models/m_notification"
)

// NotificationRepo implements NotificationRepository for Spanner.
type NotificationRepo struct {
	client *spanner.Client
	model  *m_notification.Model
}

// NewNotificationRepo creates a new NotificationRepo.
func NewNotificationRepo(client *spanner.Client) contracts.NotificationRepository {
	return &NotificationRepo{
		client: client,
		model:  m_notification.NewModel(),
	}
}

// InsertMut creates a mutation for appending a notification.
func (r *NotificationRepo) InsertMut(notification *domain.Notification) *spanner.Mutation {
	return r.model.InsertMut(&m_notification.Data{
		NotificationID: notification.ID(),
		Message:        notification.Message(),
		Read:           notification.Read(),
	})
}
