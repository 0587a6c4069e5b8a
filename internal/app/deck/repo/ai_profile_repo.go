package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/machingclee/scriptdeck/internal/app/deck/contracts"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/models/m_ai_profile"
)

// AIProfileRepo implements AIProfileRepository for Spanner.
type AIProfileRepo struct {
	client *spanner.Client
	model  *m_ai_profile.Model
}

// NewAIProfileRepo creates a new AIProfileRepo.
func NewAIProfileRepo(client *spanner.Client) contracts.AIProfileRepository {
	return &AIProfileRepo{
		client: client,
		model:  m_ai_profile.NewModel(),
	}
}

// UpsertMut creates a mutation inserting or replacing the profile.
func (r *AIProfileRepo) UpsertMut(profile *domain.AIProfile) *spanner.Mutation {
	return r.model.UpsertMut(&m_ai_profile.Data{
		ProfileID:    profile.ID(),
		Name:         profile.Name(),
		Model:        profile.Model(),
		SystemPrompt: profile.SystemPrompt(),
	})
}

// GetByID retrieves the profile.
func (r *AIProfileRepo) GetByID(ctx context.Context, profileID string) (*domain.AIProfile, error) {
	row, err := readRow(ctx, r.client, m_ai_profile.TableName, spanner.Key{profileID}, []string{
		m_ai_profile.ProfileID,
		m_ai_profile.Name,
		m_ai_profile.ModelField,
		m_ai_profile.SystemPrompt,
		m_ai_profile.UpdatedAt,
	})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to read ai profile %s: %w", profileID, err)
	}

	var data m_ai_profile.Data
	if err := row.Columns(&data.ProfileID, &data.Name, &data.Model, &data.SystemPrompt, &data.UpdatedAt); err != nil {
		return nil, fmt.Errorf("failed to scan ai profile %s: %w", profileID, err)
	}

	return domain.ReconstructAIProfile(data.ProfileID, data.Name, data.Model, data.SystemPrompt, data.UpdatedAt), nil
}
