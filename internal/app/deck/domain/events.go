package domain

import "time"

// Event is the base interface for all deck domain events. EventName doubles
// as the runtime event name used for bus subscriptions, flow declarations,
// and audit type labels.
type Event interface {
	EventName() string
	AggregateID() string
}

// FolderCreatedEvent is emitted when a folder is created.
type FolderCreatedEvent struct {
	FolderID  string    `json:"folder_id"`
	Name      string    `json:"name"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *FolderCreatedEvent) EventName() string   { return "FolderCreated" }
func (e *FolderCreatedEvent) AggregateID() string { return e.FolderID }

// FolderRenamedEvent is emitted when a folder is renamed.
type FolderRenamedEvent struct {
	FolderID  string    `json:"folder_id"`
	OldName   string    `json:"old_name"`
	NewName   string    `json:"new_name"`
	RenamedAt time.Time `json:"renamed_at"`
}

func (e *FolderRenamedEvent) EventName() string   { return "FolderRenamed" }
func (e *FolderRenamedEvent) AggregateID() string { return e.FolderID }

// ScriptCreatedEvent is emitted when a script is created.
type ScriptCreatedEvent struct {
	ScriptID  string    `json:"script_id"`
	FolderID  string    `json:"folder_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *ScriptCreatedEvent) EventName() string   { return "ScriptCreated" }
func (e *ScriptCreatedEvent) AggregateID() string { return e.ScriptID }

// ScriptUpdatedEvent is emitted when a script's name or body changes.
type ScriptUpdatedEvent struct {
	ScriptID  string    `json:"script_id"`
	Name      string    `json:"name"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *ScriptUpdatedEvent) EventName() string   { return "ScriptUpdated" }
func (e *ScriptUpdatedEvent) AggregateID() string { return e.ScriptID }

// ScriptAnnotatedEvent is emitted when a script's annotation changes.
type ScriptAnnotatedEvent struct {
	ScriptID    string    `json:"script_id"`
	Annotation  string    `json:"annotation"`
	AnnotatedAt time.Time `json:"annotated_at"`
}

func (e *ScriptAnnotatedEvent) EventName() string   { return "ScriptAnnotated" }
func (e *ScriptAnnotatedEvent) AggregateID() string { return e.ScriptID }

// ScriptMovedEvent is emitted when a script moves to another folder.
type ScriptMovedEvent struct {
	ScriptID     string    `json:"script_id"`
	FromFolderID string    `json:"from_folder_id"`
	ToFolderID   string    `json:"to_folder_id"`
	MovedAt      time.Time `json:"moved_at"`
}

func (e *ScriptMovedEvent) EventName() string   { return "ScriptMoved" }
func (e *ScriptMovedEvent) AggregateID() string { return e.ScriptID }

// ScriptRanEvent is emitted when a script run is recorded. Runs are only
// interesting to watchers once durable, so handlers enqueue this event
// post-commit.
type ScriptRanEvent struct {
	ScriptID string    `json:"script_id"`
	ExitCode int64     `json:"exit_code"`
	RanAt    time.Time `json:"ran_at"`
}

func (e *ScriptRanEvent) EventName() string   { return "ScriptRan" }
func (e *ScriptRanEvent) AggregateID() string { return e.ScriptID }

// WorkspaceCreatedEvent is emitted when a workspace is created.
type WorkspaceCreatedEvent struct {
	WorkspaceID     string    `json:"workspace_id"`
	Name            string    `json:"name"`
	DefaultFolderID string    `json:"default_folder_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (e *WorkspaceCreatedEvent) EventName() string   { return "WorkspaceCreated" }
func (e *WorkspaceCreatedEvent) AggregateID() string { return e.WorkspaceID }

// ScriptPinnedEvent is emitted when a script is pinned to a workspace.
type ScriptPinnedEvent struct {
	WorkspaceID string    `json:"workspace_id"`
	ScriptID    string    `json:"script_id"`
	PinnedAt    time.Time `json:"pinned_at"`
}

func (e *ScriptPinnedEvent) EventName() string   { return "ScriptPinned" }
func (e *ScriptPinnedEvent) AggregateID() string { return e.WorkspaceID }

// NotificationAddedEvent is emitted when a notification is appended.
type NotificationAddedEvent struct {
	NotificationID string    `json:"notification_id"`
	Message        string    `json:"message"`
	AddedAt        time.Time `json:"added_at"`
}

func (e *NotificationAddedEvent) EventName() string   { return "NotificationAdded" }
func (e *NotificationAddedEvent) AggregateID() string { return e.NotificationID }

// AIProfileUpdatedEvent is emitted when the AI profile changes.
type AIProfileUpdatedEvent struct {
	ProfileID string    `json:"profile_id"`
	Model     string    `json:"model"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *AIProfileUpdatedEvent) EventName() string   { return "AIProfileUpdated" }
func (e *AIProfileUpdatedEvent) AggregateID() string { return e.ProfileID }
