package http

import (
	"net/http"
	"strconv"

	"github.com/machingclee/scriptdeck/internal/app/deck/queries/list_notifications"
)

// NotificationsHandler serves the notification feed.
type NotificationsHandler struct {
	query *list_notifications.Query
}

// NewNotificationsHandler creates a new notifications handler.
func NewNotificationsHandler(query *list_notifications.Query) *NotificationsHandler {
	return &NotificationsHandler{query: query}
}

// NotificationResponse is one notification in the HTTP response.
type NotificationResponse struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Read      bool   `json:"read"`
	CreatedAt string `json:"created_at"`
}

// ListNotificationsResponse is the HTTP response for listing notifications.
type ListNotificationsResponse struct {
	Notifications []NotificationResponse `json:"notifications"`
}

// ServeHTTP handles GET /api/v1/notifications requests.
func (h *NotificationsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := &list_notifications.Request{}

	if params.Get("unread") == "true" {
		req.OnlyUnread = true
	}
	if limitStr := params.Get("limit"); limitStr != "" {
		if limit, err := strconv.ParseInt(limitStr, 10, 64); err == nil && limit > 0 {
			req.Limit = limit
		}
	}

	records, err := h.query.Execute(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := ListNotificationsResponse{Notifications: make([]NotificationResponse, 0, len(records))}
	for _, rec := range records {
		resp.Notifications = append(resp.Notifications, NotificationResponse{
			ID:        rec.ID,
			Message:   rec.Message,
			Read:      rec.Read,
			CreatedAt: rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
