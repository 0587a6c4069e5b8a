package m_ai_profile

// Field name constants for the ai_profiles table.
const (
	TableName = "ai_profiles"

	ProfileID    = "profile_id"
	Name         = "name"
	ModelField   = "model"
	SystemPrompt = "system_prompt"
	UpdatedAt    = "updated_at"
)
