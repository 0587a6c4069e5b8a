package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/models/m_folder"
)

// FolderRepo implements FolderRepository for Spanner.
type FolderRepo struct {
	client *spanner.Client
	model  *m_folder.Model
}

// NewFolderRepo creates a new FolderRepo.
func NewFolderRepo(client *spanner.Client) contracts.FolderRepository {
	return &FolderRepo{
		client: client,
		model:  m_folder.NewModel(),
	}
}

// InsertMut creates a mutation for inserting a new folder.
func (r *FolderRepo) InsertMut(folder *domain.Folder) *spanner.Mutation {
	return r.model.InsertMut(&m_folder.Data{
		FolderID: folder.ID(),
		Name:     folder.Name(),
		Position: folder.Position(),
	})
}

// UpdateMut creates a mutation for updating a folder (dirty fields only).
func (r *FolderRepo) UpdateMut(folder *domain.Folder) *spanner.Mutation {
	changes := folder.Changes()
	if !changes.HasChanges() {
		return nil
	}

	updates := make(map[string]interface{})
	if changes.Dirty(domain.FieldFolderName) {
		updates[m_folder.Name] = folder.Name()
	}
	if changes.Dirty(domain.FieldFolderPosition) {
		updates[m_folder.Position] = folder.Position()
	}
	return r.model.UpdateMut(folder.ID(), updates)
}

// GetByID retrieves a folder by ID, reconstructing the domain aggregate.
func (r *FolderRepo) GetByID(ctx context.Context, folderID string) (*domain.Folder, error) {
	row, err := readRow(ctx, r.client, m_folder.TableName, spanner.Key{folderID}, []string{
		m_folder.FolderID,
		m_folder.Name,
		m_folder.Position,
		m_folder.CreatedAt,
		m_folder.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrFolderNotFound
		}
		return nil, fmt.Errorf("failed to read folder %s: %w", folderID, err)
	}

	var data m_folder.Data
	if err := row.Columns(&data.FolderID, &data.Name, &data.Position, &data.CreatedAt, &data.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan folder %s: %w", folderID, err)
	}

	return domain.ReconstructFolder(data.FolderID, data.Name, data.Position, data.CreatedAt, data.UpdatedAt), nil
}
