package m_script

// Field name constants for the scripts table.
const (
	TableName = "scripts"

	ScriptID     = "script_id"
	FolderID     = "folder_id"
	Name         = "name"
	Body         = "body"
	Annotation   = "annotation"
	Position     = "position"
	LastRunAt    = "last_run_at"
	LastExitCode = "last_exit_code"
	CreatedAt    = "created_at"
	UpdatedAt    = "updated_at"
)
