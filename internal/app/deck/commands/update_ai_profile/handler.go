package update_ai_profile

import (
	"context"
	"fmt"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
)

// DefaultProfileID is the id of the tool's single AI profile row.
const DefaultProfileID = "default"

// Command replaces the AI profile wholesale.
type Command struct {
	ProfileID    string `json:"profile_id,omitempty"`
	Name         string `json:"name"`
	Model        string `json:"model"`
	SystemPrompt string `json:"system_prompt"`
}

// CommandName implements cqrs.Command.
func (c Command) CommandName() string { return "UpdateAIProfile" }

// Handler handles the update AI profile command.
type Handler struct {
	profiles contracts.AIProfileRepository
	clock    clock.Clock
}

// NewHandler creates a new update AI profile handler.
func NewHandler(profiles contracts.AIProfileRepository, clk clock.Clock) *Handler {
	return &Handler{profiles: profiles, clock: clk}
}

// CommandType implements cqrs.Handler.
func (h *Handler) CommandType() string { return Command{}.CommandName() }

// DeclareEvents implements cqrs.Handler.
func (h *Handler) DeclareEvents() []string { return []string{"AIProfileUpdated"} }

// Handle upserts the profile row and records its events.
func (h *Handler) Handle(ctx context.Context, queue *cqrs.EventQueue, cmd cqrs.Command) (any, error) {
	c, ok := cmd.(Command)
	if !ok {
		return nil, fmt.Errorf("update ai profile: unexpected command %T", cmd)
	}
	txn, ok := committer.FromContext(ctx)
	if !ok {
		return nil, cqrs.ErrNoActiveTransaction
	}

	profileID := c.ProfileID
	if profileID == "" {
		profileID = DefaultProfileID
	}

	profile, err := domain.NewAIProfile(profileID, c.Name, c.Model, c.SystemPrompt, h.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := txn.BufferWrite(h.profiles.UpsertMut(profile)); err != nil {
		return nil, fmt.Errorf("failed to buffer profile upsert: %w", err)
	}

	for _, event := range profile.Events() {
		queue.Add(ctx, event)
	}
	return profile.ID(), nil
}
