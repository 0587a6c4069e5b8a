package rename_folder

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command renames an existing folder.
type Command struct {
	FolderID string `json:"folder_id"`
	NewName  string `json:"new_name"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "RenameFolder" }

// Handler handles the rename folder command.
type Handler struct {
	folders contracts.FolderRepository
	clock   clock.Clock
}

// NewHandler creates a new rename folder handler.
func NewHandler(folders contracts.FolderRepository, clk clock.Clock) *Handler {
	return &Handler{folders: folders, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"FolderRenamed"} }

// Handle loads the folder, renames it, and records its events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("rename folder: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	folder, err := h.folders.GetByID(ctx, c.FolderID)
	if err != nil {
		return nil, err
	}
	if err := folder.Rename(c.NewName, h.clock.Now()); err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.folders.UpdateMut(folder)); err != nil {
		return nil, fmt.Errorf("failed to buffer folder update: %w", err)
	}

	for _, event := range folder.Events() {
		queue.Add(ctx, event)
	}
	return folder.ID(), nil
}
