package m_script

import (
	"time"

	"cloud.google.com/go/spanner"
)

// Data represents the database model for the scripts table.
type Data struct {
	ScriptID     string             `spanner:"script_id"`
	FolderID     string             `spanner:"folder_id"`
	Name         string             `spanner:"name"`
	Body         string             `spanner:"body"`
	Annotation   spanner.NullString `spanner:"annotation"`
	Position     int64              `spanner:"position"`
	LastRunAt    spanner.NullTime   `spanner:"last_run_at"`
	LastExitCode spanner.NullInt64  `spanner:"last_exit_code"`
	CreatedAt    time.Time          `spanner:"created_at"`
	UpdatedAt    time.Time          `spanner:"updated_at"`
}
