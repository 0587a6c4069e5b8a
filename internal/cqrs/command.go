// Package cqrs implements the command invocation and event dispatch runtime.
//
// A command is executed by exactly one handler inside a Spanner read-write
// transaction. The handler records the facts it produced on a per-invocation
// event queue; immediate events are published synchronously inside the
// transaction, post-commit events only after the transaction has durably
// committed. Every command attempt and every published event is written to
// the command_audit table, and a flow registry derives the static
// command -> event and event -> policy -> command graph from declarative
// metadata without executing any handler logic.
package cqrs

import "context"

// Command describes an intended state mutation. Commands are value objects:
// immutable once constructed, consumed by exactly one handler invocation,
// and never persisted themselves (only their serialized payload is, via the
// audit log).
type Command interface {
	// CommandName identifies the command type, e.g. "CreateScript".
	CommandName() string
}

// Event is an immutable fact describing a completed state change. Events are
// produced only by handlers and never mutated after creation.
type Event interface {
	// EventName identifies the event type, e.g. "ScriptCreated".
	EventName() string
}

// Handler executes commands of a single type.
type Handler interface {
	// CommandType returns the CommandName this handler accepts. Two handlers
	// registered for the same command type is a fatal configuration error.
	CommandType() string

	// DeclareEvents lists the event names this handler can emit. It must be
	// pure and side-effect free: the flow registry calls it at startup
	// without running any handler logic.
	DeclareEvents() []string

	// Handle executes the command, recording emitted events on queue.
	// The returned error propagates to the caller unchanged and rolls back
	// the enclosing transaction.
	Handle(ctx context.Context, queue *EventQueue, cmd Command) (any, error)
}

// CommandInvoker abstracts the invoker for consumers that issue commands
// themselves: policies reacting to events, and handlers that invoke other
// commands nested within their own transaction. Keeping this an interface
// breaks the construction cycle between the registry (which holds such
// handlers) and the Invoker (which holds the registry).
type CommandInvoker interface {
	Invoke(ctx context.Context, cmd Command) (any, error)
}

// Policy is a reactive capability that listens for events and may issue
// further commands. The runtime only consumes its declared metadata; its
// behavior reaches the runtime indirectly through bus subscriptions.
type Policy interface {
	PolicyName() string

	// DeclareFlows lists the event -> command reactions this policy
	// performs. It must be pure and side-effect free.
	DeclareFlows() []PolicyFlow
}

// PolicyFlow is one declared event -> command reaction of a policy.
type PolicyFlow struct {
	FromEvent string
	ToCommand string
}
