package domain

import "errors"

// Domain errors for the deck bounded context.
var (
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyBody         = errors.New("script body cannot be empty")
	ErrFolderNotFound    = errors.New("folder not found")
	ErrScriptNotFound    = errors.New("script not found")
	ErrWorkspaceNotFound = errors.New("workspace not found")
	ErrProfileNotFound   = errors.New("ai profile not found")
	ErrAlreadyPinned     = errors.New("script already pinned to workspace")
	ErrSameFolder        = errors.New("script is already in that folder")
	ErrEmptyModel        = errors.New("ai profile model cannot be empty")
)
