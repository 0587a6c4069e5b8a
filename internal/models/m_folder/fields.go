package m_folder

// Field name constants for the folders table.
const (
	TableName = "folders"

	FolderID  = "folder_id"
	Name      = "name"
	Position  = "position"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)
