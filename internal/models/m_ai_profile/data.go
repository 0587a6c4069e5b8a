package m_ai_profile

import "time"

// Data represents the database model for the ai_profiles table.
type Data struct {
	ProfileID    string    `spanner:"profile_id"`
	Name         string    `spanner:"name"`
	Model        string    `spanner:"model"`
	SystemPrompt string    `spanner:"system_prompt"`
	UpdatedAt    time.Time `spanner:"updated_at"`
}
