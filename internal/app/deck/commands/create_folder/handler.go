package create_folder

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

// Command creates a new folder. FolderID is optional; one is generated
// when empty.
type Command struct {
	FolderID string `json:"folder_id,omitempty"`
	Name     string `json:"name"`
	Position int64  `json:"position"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "CreateFolder" }

// Handler handles the create folder command. Its result is the new
// folder's id.
type Handler struct {
	folders contracts.FolderRepository
	clock   clock.Clock
}

// NewHandler creates a new create folder handler.
func NewHandler(folders contracts.FolderRepository, clk clock.Clock) *Handler {
	return &Handler{folders: folders, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"FolderCreated"} }

// Handle creates the folder and records its events on the queue.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("create folder: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	folderID := c.FolderID
	if folderID == "" {
		folderID = uuid.NewString()
	}

	folder, err := domain.NewFolder(folderID, c.Name, c.Position, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.folders.InsertMut(folder)); err != nil {
		return nil, fmt.Errorf("failed to buffer folder insert: %w", err)
	}

	for _, event := range folder.Events() {
		queue.Add(ctx, event)
	}
	return folder.ID(), nil
}
