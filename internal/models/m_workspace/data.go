package m_workspace

import "time"

// Data represents the database model for the workspaces table.
type Data struct {
	WorkspaceID     string    `spanner:"workspace_id"`
	Name            string    `spanner:"name"`
	DefaultFolderID string    `spanner:"default_folder_id"`
	PinnedScriptIDs []string  `spanner:"pinned_script_ids"`
	CreatedAt       time.Time `spanner:"created_at"`
	UpdatedAt       time.Time `spanner:"updated_at"`
}
