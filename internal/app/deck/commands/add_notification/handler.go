package add_notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command appends an entry to the notification feed. It is issued both
// directly and by policies reacting to script events.
type Command struct {
	NotificationID string `json:"notification_id,omitempty"`
	Message        string `json:"message"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "AddNotification" }

// Handler handles the add notification command.
type Handler struct {
	notifications contracts.NotificationRepository
	clock         clock.Clock
}

// NewHandler creates a new add notification handler.
func NewHandler(notifications contracts.NotificationRepository, clk clock.Clock) *Handler {
	return &Handler{notifications: notifications, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"NotificationAdded"} }

// Handle appends the notification. NotificationAdded is enqueued
// post-commit so feed subscribers only learn about durable entries.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("add notification: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	notificationID := c.NotificationID
	if notificationID == "" {
		notificationID = uuid.NewString()
	}

	notification := domain.NewNotification(notificationID, c.Message, h.clock.Now())
	if err := txn.BufferWrite(h.notifications.InsertMut(notification)); err != nil {
		return nil, fmt.Errorf("failed to buffer notification insert: %w", err)
	}

	for _, event := range notification.Events() {
		queue.AddTransactional(ctx, event)
	}
	return notification.ID(), nil
}
