package m_folder

import "time"

// Data represents the database model for the folders table.
type Data struct {
	FolderID  string    `spanner:"folder_id"`
	Name      string    `spanner:"name"`
	Position  int64     `spanner:"position"`
	CreatedAt time.Time `spanner:"created_at"`
	UpdatedAt time.Time `spanner:"updated_at"`
}
