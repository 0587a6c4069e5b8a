package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/models/m_script"
)

// ScriptRepo implements ScriptRepository for Spanner.
type ScriptRepo struct {
	client *spanner.Client
	model  *m_script.Model
}

// NewScriptRepo creates a new ScriptRepo.
func NewScriptRepo(client *spanner.Client) contracts.ScriptRepository {
	return &ScriptRepo{
		client: client,
		model:  m_script.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new script.
func (r *ScriptRepo) InsertMut(script *domain.Script) *spanner.Mutation {
	return r.model.InsertMut(&m_script.Data{
		ScriptID:   script.ID(),
		FolderID:   script.FolderID(),
		Name:       script.Name(),
		Body:       script.Body(),
		Annotation: spanner.NullString{StringVal: script.Annotation(), Valid: script.Annotation() != ""},
		Position:   script.Position(),
	})
}

// UpdateMut creates a mutation for updating a script (dirty fields only).
func (r *ScriptRepo) UpdateMut(script *domain.Script) *spanner.Mutation {
	changes := script.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldScriptFolderID) {
		updates[m_script.FolderID] = script.FolderID()
	}
	if changes.Dirty(domain.FieldScriptName) {
		updates[m_script.Name] = script.Name()
	}
	if changes.Dirty(domain.FieldScriptBody) {
		updates[m_script.Body] = script.Body()
	}
	if changes.Dirty(domain.FieldScriptAnnotation) {
		updates[m_script.Annotation] = spanner.NullString{StringVal: script.Annotation(), Valid: script.Annotation() != ""}
	}
	if changes.Dirty(domain.FieldScriptPosition) {
		updates[m_script.Position] = script.Position()
	}
	if changes.Dirty(domain.FieldScriptLastRunAt) {
		if lastRunAt := script.LastRunAt(); lastRunAt != nil {
			updates[m_script.LastRunAt] = *lastRunAt
		} else {
			updates[m_script.LastRunAt] = spanner.NullTime{}
		}
	}
	if changes.Dirty(domain.FieldScriptLastExit) {
		if lastExit := script.LastExitCode(); lastExit != nil {
			updates[m_script.LastExitCode] = *lastExit
		} else {
			updates[m_script.LastExitCode] = spanner.NullInt64{}
		}
	}
	return r.model.UpdateMut(script.ID(), updates)
}

// GetByID retrieves a script by ID, reconstructing the domain aggregate.
func (r *ScriptRepo) GetByID(ctx context.Context, scriptID string) (*domain.Script, error) {
	row, err := readRow(ctx, r.client, m_script.TableName, spanner.Key{scriptID}, []string{
		m_script.ScriptID,
		m_script.FolderID,
		m_script.Name,
		m_script.Body,
		m_script.Annotation,
		m_script.Position,
		m_script.LastRunAt,
		m_script.LastExitCode,
		m_script.CreatedAt,
		m_script.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrScriptNotFound
		}
		return nil, fmt.Errorf("failed to read script %s: %w", scriptID, err)
	}

	var data m_script.Data
	if err := row.Columns(
		&data.ScriptID,
		&data.FolderID,
		&data.Name,
		&data.Body,
		&data.Annotation,
		&data.Position,
		&data.LastRunAt,
		&data.LastExitCode,
		&data.CreatedAt,
		&data.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan script %s: %w", scriptID, err)
	}

	return domain.ReconstructScript(
		data.ScriptID,
		data.FolderID,
		data.Name,
		data.Body,
		data.Annotation.StringVal,
		data.Position,
		nullTimePtr(data.LastRunAt),
		nullInt64Ptr(data.LastExitCode),
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
