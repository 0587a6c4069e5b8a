package create_workspace

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_folder"
	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command creates a workspace together with its default folder.
type Command struct {
	WorkspaceID string `json:"workspace_id,omitempty"`
	Name        string `json:"name"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "CreateWorkspace" }

// Handler handles the create workspace command. Creating the default
// folder goes through the invoker as a nested CreateFolder invocation, so
// the folder shares this command's transaction and request id and is
// audited in its own right.
type Handler struct {
	workspaces contracts.WorkspaceRepository
	clock      clock.Clock
	invoker    cqrs.CommandInvoker
}

// NewHandler creates a new create workspace handler. The invoker is
// attached after wiring via SetInvoker.
func NewHandler(workspaces contracts.WorkspaceRepository, clk clock.Clock) *Handler {
	return &Handler{workspaces: workspaces, clock: clk}
}

// SetInvoker attaches the command invoker. Must be called before the
// handler serves its first command.
func (h *Handler) SetInvoker(invoker cqrs.CommandInvoker) {
	h.invoker = invoker
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"WorkspaceCreated"} }

// Handle creates the default folder through a nested invocation, then the
// workspace referencing it. A failure in either rolls back both.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("create workspace: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}
	if h.invoker == nil {
		return nil, fmt.Errorf("create workspace: invoker not attached")
	}

	res, err := h.invoker.Invoke(ctx, create_folder.Command{
		Name:     c.Name,
		Position: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create default folder: %w", err)
	}
	folderID, ok := res.(string)
	if !ok {
		return nil, fmt.Errorf("create workspace: unexpected folder result %T", res)
	}

	workspaceID := c.WorkspaceID
	if workspaceID == "" {
		workspaceID = uuid.NewString()
	}

	workspace, err := domain.NewWorkspace(workspaceID, c.Name, folderID, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.workspaces.InsertMut(workspace)); err != nil {
		return nil, fmt.Errorf("failed to buffer workspace insert: %w", err)
	}

	for _, event := range workspace.Events() {
		queue.Add(ctx, event)
	}
	return workspace.ID(), nil
}
