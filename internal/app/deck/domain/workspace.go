package domain

import "time"

// Field names for workspace change tracking.
const (
	FieldWorkspaceName = "name"
	FieldWorkspacePins = "pinned_script_ids"
)

// Workspace is the aggregate root for a working set of scripts. A workspace
// owns a default folder and an ordered list of pinned scripts.
type Workspace struct {
	id              string
	name            string
	defaultFolderID string
	pinnedScriptIDs []string
	createdAt       time.Time
	updatedAt       time.Time

	changes *ChangeTracker
	events  []Event
}

// NewWorkspace creates a new Workspace aggregate.
func NewWorkspace(id, name, defaultFolderID string, now time.Time) (*Workspace, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	w := &Workspace{
		id:              id,
		name:            name,
		defaultFolderID: defaultFolderID,
		createdAt:       now,
		updatedAt:       now,
		changes:         NewChangeTracker(),
	}
	w.changes.MarkDirty(FieldWorkspaceName)

	w.recordEvent(&WorkspaceCreatedEvent{
		WorkspaceID:     w.id,
		Name:            w.name,
		DefaultFolderID: w.defaultFolderID,
		CreatedAt:       w.createdAt,
	})
	return w, nil
}

// ReconstructWorkspace reconstitutes a Workspace from the database.
func ReconstructWorkspace(id, name, defaultFolderID string, pinnedScriptIDs []string, createdAt, updatedAt time.Time) *Workspace {
	return &Workspace{
		id:              id,
		name:            name,
		defaultFolderID: defaultFolderID,
		pinnedScriptIDs: pinnedScriptIDs,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		changes:         NewChangeTracker(),
	}
}

// PinScript appends a script to the workspace's pinned list.
func (w *Workspace) PinScript(scriptID string, now time.Time) error {
	for _, pinned := range w.pinnedScriptIDs {
		if pinned == scriptID {
			return ErrAlreadyPinned
		}
	}
	w.pinnedScriptIDs = append(w.pinnedScriptIDs, scriptID)
	w.updatedAt = now
	w.changes.MarkDirty(FieldWorkspacePins)

	w.recordEvent(&ScriptPinnedEvent{
		WorkspaceID: w.id,
		ScriptID:    scriptID,
		PinnedAt:    now,
	})
	return nil
}

func (w *Workspace) ID() string               { return w.id }
func (w *Workspace) Name() string             { return w.name }
func (w *Workspace) DefaultFolderID() string  { return w.defaultFolderID }
func (w *Workspace) PinnedScriptIDs() []string { return w.pinnedScriptIDs }
func (w *Workspace) CreatedAt() time.Time     { return w.createdAt }
func (w *Workspace) UpdatedAt() time.Time     { return w.updatedAt }
func (w *Workspace) Changes() *ChangeTracker  { return w.changes }

// Events returns the recorded domain events.
func (w *Workspace) Events() []Event { return w.events }

func (w *Workspace) recordEvent(e Event) {
	w.events = append(w.events, e)
}
