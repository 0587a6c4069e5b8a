package cqrs

import "context"

// DispatchTiming classifies when an event becomes visible to listeners.
type DispatchTiming int

const (
	// Immediate events are published synchronously inside the transaction
	// that produced them.
	Immediate DispatchTiming = iota
	// PostCommit events are published only after that transaction has
	// durably committed, and never on rollback.
	PostCommit
)

// String returns the timing's name.
func (t DispatchTiming) String() string {
	switch t {
	case Immediate:
		return "immediate"
	case PostCommit:
		return "post_commit"
	default:
		return "unknown"
	}
}

// EventWrapper ties one event to its dispatch timing and the execution
// context captured when it was enqueued. Wrappers are never mutated after
// creation, except that Context is replaced by a freshly captured snapshot
// just before post-commit dispatch.
type EventWrapper struct {
	Event   Event
	Timing  DispatchTiming
	Context *ExecutionContext
}

// EventQueue accumulates the events emitted by a single command invocation,
// in insertion order. Each invocation owns exactly one queue; queues are
// never shared across invocations and are discarded when the invocation
// returns. The queue is a pure accumulator for single-writer use and is not
// safe for concurrent access.
type EventQueue struct {
	wrappers []EventWrapper
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Add appends an immediate event, capturing the execution context now.
func (q *EventQueue) Add(ctx context.Context, event Event) {
	q.append(ctx, Immediate, event)
}

// AddAll appends immediate events in the given order.
func (q *EventQueue) AddAll(ctx context.Context, events ...Event) {
	for _, event := range events {
		q.append(ctx, Immediate, event)
	}
}

// AddTransactional appends a post-commit event, capturing the execution
// context now.
func (q *EventQueue) AddTransactional(ctx context.Context, event Event) {
	q.append(ctx, PostCommit, event)
}

// AddAllTransactional appends post-commit events in the given order.
func (q *EventQueue) AddAllTransactional(ctx context.Context, events ...Event) {
	for _, event := range events {
		q.append(ctx, PostCommit, event)
	}
}

func (q *EventQueue) append(ctx context.Context, timing DispatchTiming, event Event) {
	q.wrappers = append(q.wrappers, EventWrapper{
		Event:   event,
		Timing:  timing,
		Context: CaptureExecution(ctx),
	})
}

// ImmediateEvents returns the immediate wrappers in insertion order.
func (q *EventQueue) ImmediateEvents() []EventWrapper {
	return q.filter(Immediate)
}

// PostCommitEvents returns the post-commit wrappers in insertion order.
func (q *EventQueue) PostCommitEvents() []EventWrapper {
	return q.filter(PostCommit)
}

// AllEvents returns every wrapper, immediate first, then post-commit.
// The grouping keeps consumers that ignore timing seeing the legacy order.
func (q *EventQueue) AllEvents() []EventWrapper {
	all := make([]EventWrapper, 0, len(q.wrappers))
	all = append(all, q.filter(Immediate)...)
	all = append(all, q.filter(PostCommit)...)
	return all
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.wrappers)
}

func (q *EventQueue) filter(timing DispatchTiming) []EventWrapper {
	matched := make([]EventWrapper, 0, len(q.wrappers))
	for _, w := range q.wrappers {
		if w.Timing == timing {
			matched = append(matched, w)
		}
	}
	return matched
}
