package domain

import "time"

// Notification is an entry in the tool's notification feed. Notifications
// are append-only from the runtime's point of view; the read flag belongs
// to the UI.
type Notification struct {
	id        string
	message   string
	read      bool
	createdAt time.Time

	events []Event
}

// NewNotification creates a new unread Notification.
func NewNotification(id, message string, now time.Time) *Notification {
	n := &Notification{
		id:        id,
		message:   message,
		createdAt: now,
	}
	n.events = append(n.events, &NotificationAddedEvent{
		NotificationID: n.id,
		Message:        n.message,
		AddedAt:        n.createdAt,
	})
	return n
}

func (n *Notification) ID() string           { return n.id }
func (n *Notification) Message() string      { return n.message }
func (n *Notification) Read() bool           { return n.read }
func (n *Notification) CreatedAt() time.Time { return n.createdAt }

// Events returns the recorded domain events.
func (n *Notification) Events() []Event { return n.events }
