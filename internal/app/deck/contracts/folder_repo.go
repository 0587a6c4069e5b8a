package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
)

// FolderRepository defines the interface for folder persistence.
// Repositories return mutations, they don't apply them; the active
// transaction buffers them at the call site.
type FolderRepository interface {
	// InsertMut creates a mutation for inserting a new folder.
	InsertMut(folder *domain.Folder) *spanner.Mutation

	// UpdateMut creates a mutation for updating a folder (dirty fields only).
	UpdateMut(folder *domain.Folder) *spanner.Mutation

	// GetByID retrieves a folder, reading through the active transaction
	// when one is carried by ctx.
	GetByID(ctx context.Context, folderID string) (*domain.Folder, error)
}
