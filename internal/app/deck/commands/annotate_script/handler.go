package annotate_script

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// Command replaces a script's annotation. An empty annotation clears it.
type Command struct {
	ScriptID   string `json:"script_id"`
	Annotation string `json:"annotation"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "AnnotateScript" }

// Handler handles the annotate script command.
type Handler struct {
	scripts contracts.ScriptRepository
	clock   clock.Clock
}

// NewHandler creates a new annotate script handler.
func NewHandler(scripts contracts.ScriptRepository, clk clock.Clock) *Handler {
	return &Handler{scripts: scripts, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"ScriptAnnotated"} }

// Handle loads the script, annotates it, and records its events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("annotate script: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	script, err := h.scripts.GetByID(ctx, c.ScriptID)
	if err != nil {
		return nil, err
	}
	script.Annotate(c.Annotation, h.clock.Now())

	if err := txn.BufferWrite(h.scripts.UpdateMut(script)); err != nil {
		return nil, fmt.Errorf("failed to buffer script update: %w", err)
	}

	for _, event := range script.Events() {
		queue.Add(ctx, event)
	}
	return script.ID(), nil
}
