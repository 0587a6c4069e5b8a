package m_workspace

// Field name constants for the workspaces table.
const (
	TableName = "workspaces"

	WorkspaceID     = "workspace_id"
	Name            = "name"
	DefaultFolderID = "default_folder_id"
	PinnedScriptIDs = "pinned_script_ids"
	CreatedAt       = "created_at"
	UpdatedAt       = "updated_at"
)
