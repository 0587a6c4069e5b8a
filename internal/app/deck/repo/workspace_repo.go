package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/models/m_workspace"
)

// WorkspaceRepo implements WorkspaceRepository for Spanner.
type WorkspaceRepo struct {
	client *spanner.Client
	model  *m_workspace.Model
}

// NewWorkspaceRepo creates a new WorkspaceRepo.
func NewWorkspaceRepo(client *spanner.Client) contracts.WorkspaceRepository {
	return &WorkspaceRepo{
		client: client,
		model:  m_workspace.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new workspace.
func (r *WorkspaceRepo) InsertMut(workspace *domain.Workspace) *spanner.Mutation {
	return r.model.InsertMut(&m_workspace.Data{
		WorkspaceID:     workspace.ID(),
		Name:            workspace.Name(),
		DefaultFolderID: workspace.DefaultFolderID(),
		PinnedScriptIDs: workspace.PinnedScriptIDs(),
	})
}

// UpdateMut creates a mutation for updating a workspace (dirty fields only).
func (r *WorkspaceRepo) UpdateMut(workspace *domain.Workspace) *spanner.Mutation {
	changes := workspace.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldWorkspaceName) {
		updates[m_workspace.Name] = workspace.Name()
	}
	if changes.Dirty(domain.FieldWorkspacePins) {
		updates[m_workspace.PinnedScriptIDs] = workspace.PinnedScriptIDs()
	}
	return r.model.UpdateMut(workspace.ID(), updates)
}

// GetByID retrieves a workspace by ID, reconstructing the domain aggregate.
func (r *WorkspaceRepo) GetByID(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	row, err := readRow(ctx, r.client, m_workspace.TableName, spanner.Key{workspaceID}, []string{
		m_workspace.WorkspaceID,
		m_workspace.Name,
		m_workspace.DefaultFolderID,
		m_workspace.PinnedScriptIDs,
		m_workspace.CreatedAt,
		m_workspace.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrWorkspaceNotFound
		}
		return nil, fmt.Errorf("failed to read workspace %s: %w", workspaceID, err)
	}

	var data m_workspace.Data
	if err := row.Columns(
		&data.WorkspaceID,
		&data.Name,
		&data.DefaultFolderID,
		&data.PinnedScriptIDs,
		&data.CreatedAt,
		&data.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan workspace %s: %w", workspaceID, err)
	}

	return domain.ReconstructWorkspace(
		data.WorkspaceID,
		data.Name,
		data.DefaultFolderID,
		data.PinnedScriptIDs,
		data.CreatedAt,
		data.UpdatedAt,
	), nil
}
