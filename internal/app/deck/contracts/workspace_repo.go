package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
)

// WorkspaceRepository defines the interface for workspace persistence.
type WorkspaceRepository interface {
	// InsertMut creates a mutation for inserting a new workspace.
	InsertMut(workspace *domain.Workspace) *spanner.Mutation

	// UpdateMut creates a mutation for updating a workspace (dirty fields only).
	UpdateMut(workspace *domain.Workspace) *spanner.Mutation

	// GetByID retrieves a workspace, reading through the active transaction
	// when one is carried by ctx.
	GetByID(ctx context.Context, workspaceID string) (*domain.Workspace, error)
}
