package domain

import "time"

// Field names for script change tracking.
const (
	FieldScriptFolderID   = "folder_id"
	FieldScriptName       = "name"
	FieldScriptBody       = "body"
	FieldScriptAnnotation = "annotation"
	FieldScriptPosition   = "position"
	FieldScriptLastRunAt  = "last_run_at"
	FieldScriptLastExit   = "last_exit_code"
)

// Script is the aggregate root for a shell script: its body, its folder
// placement, its annotation, and the record of its last run.
type Script struct {
	id           string
	folderID     string
	name         string
	body         string
	annotation   string
	position     int64
	lastRunAt    *time.Time
	lastExitCode *int64
	createdAt    time.Time
	updatedAt    time.Time

	changes *ChangeTracker
	events  []Event
}

// NewScript creates a new Script aggregate.
func NewScript(id, folderID, name, body string, position int64, now time.Time) (*Script, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if body == "" {
		return nil, ErrEmptyBody
	}

	s := &Script{
		id:        id,
		folderID:  folderID,
		name:      name,
		body:      body,
		position:  position,
		createdAt: now,
		updatedAt: now,
		changes:   NewChangeTracker(),
	}
	s.changes.MarkDirty(FieldScriptFolderID)
	s.changes.MarkDirty(FieldScriptName)
	s.changes.MarkDirty(FieldScriptBody)
	s.changes.MarkDirty(FieldScriptPosition)

	s.recordEvent(&ScriptCreatedEvent{
		ScriptID:  s.id,
		FolderID:  s.folderID,
		Name:      s.name,
		CreatedAt: s.createdAt,
	})
	return s, nil
}

// ReconstructScript reconstitutes a Script from the database.
func ReconstructScript(
	id, folderID, name, body, annotation string,
	position int64,
	lastRunAt *time.Time,
	lastExitCode *int64,
	createdAt, updatedAt time.Time,
) *Script {
	return &Script{
		id:           id,
		folderID:     folderID,
		name:         name,
		body:         body,
		annotation:   annotation,
		position:     position,
		lastRunAt:    lastRunAt,
		lastExitCode: lastExitCode,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
		changes:      NewChangeTracker(),
	}
}

// Update changes the script's name and body.
func (s *Script) Update(name, body string, now time.Time) error {
	if name == "" {
		return ErrEmptyName
	}
	if body == "" {
		return ErrEmptyBody
	}
	s.name = name
	s.body = body
	s.updatedAt = now
	s.changes.MarkDirty(FieldScriptName)
	s.changes.MarkDirty(FieldScriptBody)

	s.recordEvent(&ScriptUpdatedEvent{
		ScriptID:  s.id,
		Name:      s.name,
		UpdatedAt: now,
	})
	return nil
}

// Annotate replaces the script's annotation. An empty annotation clears it.
func (s *Script) Annotate(annotation string, now time.Time) {
	s.annotation = annotation
	s.updatedAt = now
	s.changes.MarkDirty(FieldScriptAnnotation)

	s.recordEvent(&ScriptAnnotatedEvent{
		ScriptID:    s.id,
		Annotation:  annotation,
		AnnotatedAt: now,
	})
}

// MoveTo places the script into another folder.
func (s *Script) MoveTo(folderID string, position int64, now time.Time) error {
	if folderID == s.folderID {
		return ErrSameFolder
	}
	fromFolderID := s.folderID
	s.folderID = folderID
	s.position = position
	s.updatedAt = now
	s.changes.MarkDirty(FieldScriptFolderID)
	s.changes.MarkDirty(FieldScriptPosition)

	s.recordEvent(&ScriptMovedEvent{
		ScriptID:     s.id,
		FromFolderID: fromFolderID,
		ToFolderID:   folderID,
		MovedAt:      now,
	})
	return nil
}

// RecordRun stores the outcome of a script execution.
func (s *Script) RecordRun(exitCode int64, ranAt time.Time) {
	s.lastRunAt = &ranAt
	s.lastExitCode = &exitCode
	s.updatedAt = ranAt
	s.changes.MarkDirty(FieldScriptLastRunAt)
	s.changes.MarkDirty(FieldScriptLastExit)

	s.recordEvent(&ScriptRanEvent{
		ScriptID: s.id,
		ExitCode: exitCode,
		RanAt:    ranAt,
	})
}

func (s *Script) ID() string              { return s.id }
func (s *Script) FolderID() string        { return s.folderID }
func (s *Script) Name() string            { return s.name }
func (s *Script) Body() string            { return s.body }
func (s *Script) Annotation() string      { return s.annotation }
func (s *Script) Position() int64         { return s.position }
func (s *Script) LastRunAt() *time.Time   { return s.lastRunAt }
func (s *Script) LastExitCode() *int64    { return s.lastExitCode }
func (s *Script) CreatedAt() time.Time    { return s.createdAt }
func (s *Script) UpdatedAt() time.Time    { return s.updatedAt }
func (s *Script) Changes() *ChangeTracker { return s.changes }

// Events returns the recorded domain events.
func (s *Script) Events() []Event { return s.events }

func (s *Script) recordEvent(e Event) {
	s.events = append(s.events, e)
}
