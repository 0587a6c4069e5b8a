package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
)

// ScriptRepository defines the interface for script persistence.
type ScriptRepository interface {
	// InsertMut creates a mutation for inserting a new script.
	InsertMut(script *domain.Script) *spanner.Mutation

	// UpdateMut creates a mutation for updating a script (dirty fields only).
	UpdateMut(script *domain.Script) *spanner.Mutation

	// GetByID retrieves a script, reading through the active transaction
	// when one is carried by ctx.
	GetByID(ctx context.Context, scriptID string) (*domain.Script, error)
}
