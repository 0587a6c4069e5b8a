package http

import (
	"net/http"
	"strconv"

	"github.com/machingclee/scriptdeck/internal/app/deck/queries/list_audit"
)

// AuditHandler serves the audit trail read model.
type AuditHandler struct {
	query *list_audit.Query
}

// NewAuditHandler creates a new audit handler.
func NewAuditHandler(query *list_audit.Query) *AuditHandler {
	return &AuditHandler{query: query}
}

// AuditRecordResponse is one audit row in the HTTP response.
type AuditRecordResponse struct {
	ID            int64  `json:"id"`
	RequestID     string `json:"request_id"`
	EventType     string `json:"event_type"`
	Payload       string `json:"payload"`
	ActorID       string `json:"actor_id,omitempty"`
	Success       bool   `json:"success"`
	FailureReason string `json:"failure_reason,omitempty"`
	CreatedAt     string `json:"created_at"`
}

// ListAuditResponse is the HTTP response for listing audit records.
type ListAuditResponse struct {
	Records []AuditRecordResponse `json:"records"`
}

// ServeHTTP handles GET /api/v1/audit requests.
func (h *AuditHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	req := &list_audit.Request{}

	if requestID := params.Get("request_id"); requestID != "" {
		req.RequestID = &requestID
	}
	if eventType := params.Get("event_type"); eventType != "" {
		req.EventType = &eventType
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

	resp := ListAuditResponse{Records: make([]AuditRecordResponse, 0, len(records))}
	for _, rec := range records {
		resp.Records = append(resp.Records, AuditRecordResponse{
			ID:            rec.ID,
			RequestID:     rec.RequestID,
			EventType:     rec.EventType,
			Payload:       rec.Payload,
			ActorID:       rec.ActorID,
			Success:       rec.Success,
			FailureReason: rec.FailureReason,
			CreatedAt:     rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
