package contracts

import (
	"context"

	"cloud.google.com/go/spanner"

	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
)

// AIProfileRepository defines the interface for AI profile persistence.
// The tool keeps a single profile row, replaced wholesale on update.
type AIProfileRepository interface {
	// UpsertMut creates a mutation inserting or replacing the profile.
	UpsertMut(profile *domain.AIProfile) *spanner.Mutation

	// GetByID retrieves the profile.
	GetByID(ctx context.Context, profileID string) (*domain.AIProfile, error)
}
