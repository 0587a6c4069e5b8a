package cqrs

import "errors"

// ErrNoHandler indicates a command type with no registered handler.
var ErrNoHandler = errors.New("no handler registered for command")

// ErrDuplicateHandler indicates two handlers registered for the same
// command type. This is a startup-time configuration error.
var ErrDuplicateHandler = errors.New("duplicate handler for command type")

// ErrNoActiveTransaction indicates a command audit write was attempted
// outside a transaction. Audit-before is part of the transactional unit of
// work, so this is a hard precondition.
var ErrNoActiveTransaction = errors.New("no active transaction")
