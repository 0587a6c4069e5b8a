package record_run

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command records the outcome of a script execution.
type Command struct {
	ScriptID string `json:"script_id"`
	ExitCode int64  `json:"exit_code"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "RecordRun" }

// Handler handles the record run command.
type Handler struct {
	scripts contracts.ScriptRepository
	clock   clock.Clock
}

// NewHandler creates a new record run handler.
func NewHandler(scripts contracts.ScriptRepository, clk clock.Clock) *Handler {
	return &Handler{scripts: scripts, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"ScriptRan"} }

// Handle records the run on the script. The ScriptRan event is enqueued
// post-commit: run watchers must only ever see runs that are durable.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("record run: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	script, err := h.scripts.GetByID(ctx, c.ScriptID)
	if err != nil {
		return nil, err
	}
	script.RecordRun(c.ExitCode, h.clock.Now())

	if err := txn.BufferWrite(h.scripts.UpdateMut(script)); err != nil {
		return nil, fmt.Errorf("failed to buffer script update: %w", err)
	}

	for _, event := range script.Events() {
		queue.AddTransactional(ctx, event)
	}
	return script.ID(), nil
}
