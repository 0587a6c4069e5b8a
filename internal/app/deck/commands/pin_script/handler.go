package pin_script

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command pins a script inside a workspace.
type Command struct {
	WorkspaceID string `json:"workspace_id"`
	ScriptID    string `json:"script_id"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "PinScript" }

// Handler handles the pin script command.
type Handler struct {
	workspaces contracts.WorkspaceRepository
	scripts    contracts.ScriptRepository
	clock      clock.Clock
}

// NewHandler creates a new pin script handler.
func NewHandler(workspaces contracts.WorkspaceRepository, scripts contracts.ScriptRepository, clk clock.Clock) *Handler {
	return &Handler{workspaces: workspaces, scripts: scripts, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"ScriptPinned"} }

// Handle verifies the script exists, pins it on the workspace, and records
// the workspace's events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("pin script: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	if _, err := h.scripts.GetByID(ctx, c.ScriptID); err != nil {
		return nil, err
	}

	workspace, err := h.workspaces.GetByID(ctx, c.WorkspaceID)
	if err != nil {
		return nil, err
	}
	if err := workspace.PinScript(c.ScriptID, h.clock.Now()); err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.workspaces.UpdateMut(workspace)); err != nil {
		return nil, fmt.Errorf("failed to buffer workspace update: %w", err)
	}

	for _, event := range workspace.Events() {
		queue.Add(ctx, event)
	}
	return workspace.ID(), nil
}
