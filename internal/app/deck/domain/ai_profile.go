package domain

import "time"

// AIProfile holds the tool's single AI configuration: which model to use
// and the system prompt applied when annotating scripts.
type AIProfile struct {
	id           string
	name         string
	model        string
	systemPrompt string
	updatedAt    time.Time

	events []Event
}

// NewAIProfile creates or replaces the AI profile.
func NewAIProfile(id, name, model, systemPrompt string, now time.Time) (*AIProfile, error) {
	if model == "" {
		return nil, ErrEmptyModel
	}

	p := &AIProfile{
		id:           id,
		name:         name,
		model:        model,
		systemPrompt: systemPrompt,
		updatedAt:    now,
	}
	p.events = append(p.events, &AIProfileUpdatedEvent{
		ProfileID: p.id,
		Model:     p.model,
		UpdatedAt: p.updatedAt,
	})
	return p, nil
}

// ReconstructAIProfile reconstitutes an AIProfile from the database.
func ReconstructAIProfile(id, name, model, systemPrompt string, updatedAt time.Time) *AIProfile {
	return &AIProfile{
		id:           id,
		name:         name,
		model:        model,
		systemPrompt: systemPrompt,
		updatedAt:    updatedAt,
	}
}

func (p *AIProfile) ID() string           { return p.id }
func (p *AIProfile) Name() string         { return p.name }
func (p *AIProfile) Model() string        { return p.model }
func (p *AIProfile) SystemPrompt() string { return p.systemPrompt }
func (p *AIProfile) UpdatedAt() time.Time { return p.updatedAt }

// Events returns the recorded domain events.
func (p *AIProfile) Events() []Event { return p.events }
