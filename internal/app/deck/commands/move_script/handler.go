package move_script

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command moves a script into another folder.
type Command struct {
	ScriptID   string `json:"script_id"`
	ToFolderID string `json:"to_folder_id"`
	Position   int64  `json:"position"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "MoveScript" }

// Handler handles the move script command.
type Handler struct {
	scripts contracts.ScriptRepository
	folders contracts.FolderRepository
	clock   clock.Clock
}

// NewHandler creates a new move script handler.
func NewHandler(scripts contracts.ScriptRepository, folders contracts.FolderRepository, clk clock.Clock) *Handler {
	return &Handler{scripts: scripts, folders: folders, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"ScriptMoved"} }

// Handle verifies the destination folder, moves the script, and records
// its events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("move script: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	if _, err := h.folders.GetByID(ctx, c.ToFolderID); err != nil {
		return nil, err
	}

	script, err := h.scripts.GetByID(ctx, c.ScriptID)
	if err != nil {
		return nil, err
	}
	if err := script.MoveTo(c.ToFolderID, c.Position, h.clock.Now()); err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.scripts.UpdateMut(script)); err != nil {
		return nil, fmt.Errorf("failed to buffer script update: %w", err)
	}

	for _, event := range script.Events() {
		queue.Add(ctx, event)
	}
	return script.ID(), nil
}
