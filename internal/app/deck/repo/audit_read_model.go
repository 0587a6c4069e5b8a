package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/models/m_command_audit"
	"github.com/machingclee/scriptdeck/internal/pkg/query"
)

// AuditReadModel implements the audit trail read model for Spanner.
type AuditReadModel struct {
	client *spanner.Client
}

// NewAuditReadModel creates a new AuditReadModel.
func NewAuditReadModel(client *spanner.Client) contracts.AuditReadModel {
	return &AuditReadModel{client: client}
}

// List retrieves audit records matching the filter, newest first.
func (r *AuditReadModel) List(ctx context.Context, filter contracts.AuditFilter) ([]*cqrs.AuditRecord, error) {
	builder := query.From(m_command_audit.TableName).
		Select(
			m_command_audit.AuditID,
			m_command_audit.RequestID,
			m_command_audit.EventType,
			m_command_audit.Payload,
			m_command_audit.ActorID,
			m_command_audit.Success,
			m_command_audit.FailureReason,
			m_command_audit.CreatedAt,
		).
		OrderBy(m_command_audit.CreatedAt, query.Desc).
		Limit(filter.Limit)

	if filter.RequestID != nil {
		builder = builder.Where(query.Eq(m_command_audit.RequestID, *filter.RequestID))
	}
	if filter.EventType != nil {
		builder = builder.Where(query.Eq(m_command_audit.EventType, *filter.EventType))
	}

	iter := r.client.Single().Query(ctx, builder.Build())
	defer iter.Stop()

	var records []*cqrs.AuditRecord
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate audit rows: %w", err)
		}

		var data m_command_audit.Data
		if err := row.Columns(
			&data.AuditID,
			&data.RequestID,
			&data.EventType,
			&data.Payload,
			&data.ActorID,
			&data.Success,
			&data.FailureReason,
			&data.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit row: %w", err)
		}
		records = append(records, dataToRecord(&data))
	}
	return records, nil
}

func dataToRecord(data *m_command_audit.Data) *cqrs.AuditRecord {
	rec := &cqrs.AuditRecord{
		ID:            data.AuditID,
		RequestID:     data.RequestID,
		EventType:     data.EventType,
		ActorID:       data.ActorID.StringVal,
		Success:       data.Success,
		FailureReason: data.FailureReason.StringVal,
		CreatedAt:     data.CreatedAt,
	}
	if data.Payload.Valid {
		if raw, err := json.Marshal(data.Payload.Value); err == nil {
			rec.Payload = string(raw)
		}
	}
	return rec
}
