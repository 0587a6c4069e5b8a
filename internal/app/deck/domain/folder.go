package domain

import "time"

// Field names for folder change tracking.
const (
	FieldFolderName     = "name"
	FieldFolderPosition = "position"
)

// Folder is the aggregate root for a group of scripts.
type Folder struct {
	id        string
	name      string
	position  int64
	createdAt time.Time
	updatedAt time.Time

	changes *ChangeTracker
	events  []Event
}

// NewFolder creates a new Folder aggregate.
func NewFolder(id, name string, position int64, now time.Time) (*Folder, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	f := &Folder{
		id:        id,
		name:      name,
		position:  position,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	f.changes.MarkDirty(FieldFolderName)
	f.changes.MarkDirty(FieldFolderPosition)

	f.recordEvent(&FolderCreatedEvent{
		FolderID:  f.id,
		Name:      f.name,
		Position:  f.position,
		CreatedAt: f.createdAt,
	})
	return f, nil
}

// ReconstructFolder reconstitutes a Folder from the database.
func ReconstructFolder(id, name string, position int64, createdAt, updatedAt time.Time) *Folder {
	return &Folder{
		id:        id,
		name:      name,
		position:  position,
		createdAt: createdAt,
		updatedAt: updatedAt,
		changes:   NewChangeTracker(),
	}
}

// Rename changes the folder name.
func (f *Folder) Rename(newName string, now time.Time) error {
	if newName == "" {
		return ErrEmptyName
	}
	oldName := f.name
	f.name = newName
	f.updatedAt = now
	f.changes.MarkDirty(FieldFolderName)

	f.recordEvent(&FolderRenamedEvent{
		FolderID:  f.id,
		OldName:   oldName,
		NewName:   newName,
		RenamedAt: now,
	})
	return nil
}

func (f *Folder) ID() string            { return f.id }
func (f *Folder) Name() string          { return f.name }
func (f *Folder) Position() int64       { return f.position }
func (f *Folder) CreatedAt() time.Time  { return f.createdAt }
func (f *Folder) UpdatedAt() time.Time  { return f.updatedAt }
func (f *Folder) Changes() *ChangeTracker { return f.changes }

// Events returns the recorded domain events.
func (f *Folder) Events() []Event { return f.events }

func (f *Folder) recordEvent(e Event) {
	f.events = append(f.events, e)
}
