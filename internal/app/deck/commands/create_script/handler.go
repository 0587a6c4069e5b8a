package create_script

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

// Command creates a new script inside an existing folder.
type Command struct {
	ScriptID string `json:"script_id,omitempty"`
	FolderID string `json:"folder_id"`
	Name     string `json:"name"`
	Body     string `json:"body"`
	Position int64  `json:"position"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "CreateScript" }

// Handler handles the create script command. Its result is the new
// script's id.
type Handler struct {
	scripts contracts.ScriptRepository
	folders contracts.FolderRepository
	clock   clock.Clock
}

// NewHandler creates a new create script handler.
func NewHandler(scripts contracts.ScriptRepository, folders contracts.FolderRepository, clk clock.Clock) *Handler {
	return &Handler{scripts: scripts, folders: folders, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"ScriptCreated"} }

// Handle verifies the target folder, creates the script, and records its
// events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("create script: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	// Referential integrity: the folder must exist.
	if _, err := h.folders.GetByID(ctx, c.FolderID); err != nil {
		return nil, err
	}

	scriptID := c.ScriptID
	if scriptID == "" {
		scriptID = uuid.NewString()
	}

	script, err := domain.NewScript(scriptID, c.FolderID, c.Name, c.Body, c.Position, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.scripts.InsertMut(script)); err != nil {
		return nil, fmt.Errorf("failed to buffer script insert: %w", err)
	}

	for _, event := range script.Events() {
		queue.Add(ctx, event)
	}
	return script.ID(), nil
}
