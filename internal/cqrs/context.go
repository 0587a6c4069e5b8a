package cqrs

import "context"

// Request identity, actor identity, and diagnostic fields travel as explicit
// context values (typed keys, WithX/XFromContext accessors). The outermost
// invocation derives a child context carrying them; because contexts are
// immutable values scoped to the call, nothing needs to be "cleared" on exit
// and nested invocations cannot leak state into unrelated work.

type requestIDContextKey struct{}
type actorIDContextKey struct{}
type commandNameContextKey struct{}
type diagnosticFieldsContextKey struct{}
type provenanceContextKey struct{}

// WithRequestID stores a request identifier in context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDContextKey{}, requestID)
}

// RequestIDFromContext returns the request identifier stored in context.
func RequestIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(requestIDContextKey{}).(string)
	return value
}

// WithActorID stores the acting user's identity in context.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorIDContextKey{}, actorID)
}

// ActorIDFromContext returns the acting user's identity stored in context.
func ActorIDFromContext(ctx context.Context) string {
	value, _ := ctx.Value(actorIDContextKey{}).(string)
	return value
}

// WithCommandName stores the currently executing command's name in context.
func WithCommandName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, commandNameContextKey{}, name)
}

// CommandNameFromContext returns the executing command's name, if any.
func CommandNameFromContext(ctx context.Context) string {
	value, _ := ctx.Value(commandNameContextKey{}).(string)
	return value
}

// WithDiagnosticField adds one diagnostic key-value pair to context. The
// stored map is copied on every write so earlier contexts stay unchanged.
func WithDiagnosticField(ctx context.Context, key, value string) context.Context {
	fields := make(map[string]string, len(DiagnosticFieldsFromContext(ctx))+1)
	for k, v := range DiagnosticFieldsFromContext(ctx) {
		fields[k] = v
	}
	fields[key] = value
	return context.WithValue(ctx, diagnosticFieldsContextKey{}, fields)
}

// DiagnosticFieldsFromContext returns the diagnostic fields stored in
// context. The returned map must not be mutated.
func DiagnosticFieldsFromContext(ctx context.Context) map[string]string {
	value, _ := ctx.Value(diagnosticFieldsContextKey{}).(map[string]string)
	return value
}

// Provenance records how a command came to be invoked: set by the policy
// dispatch path before it issues a reaction command, and consumed by the
// auditor to build the audit type label. Direct invocations carry none.
type Provenance struct {
	Policy string
	Event  string
}

// WithProvenance stores command provenance in context.
func WithProvenance(ctx context.Context, p Provenance) context.Context {
	return context.WithValue(ctx, provenanceContextKey{}, p)
}

// ProvenanceFromContext returns the command provenance stored in context.
func ProvenanceFromContext(ctx context.Context) (Provenance, bool) {
	value, ok := ctx.Value(provenanceContextKey{}).(Provenance)
	return value, ok
}

// ExecutionContext is a read-only snapshot of the ambient execution state:
// taken when an event is enqueued, and again when a post-commit batch is
// about to be dispatched.
type ExecutionContext struct {
	ActorID     string
	RequestID   string
	CommandName string
	Fields      map[string]string
}

// CaptureExecution snapshots the execution state carried by ctx.
func CaptureExecution(ctx context.Context) *ExecutionContext {
	ambient := DiagnosticFieldsFromContext(ctx)
	fields := make(map[string]string, len(ambient))
	for k, v := range ambient {
		fields[k] = v
	}
	return &ExecutionContext{
		ActorID:     ActorIDFromContext(ctx),
		RequestID:   RequestIDFromContext(ctx),
		CommandName: CommandNameFromContext(ctx),
		Fields:      fields,
	}
}

// Apply restores the snapshot onto ctx, returning a child context that
// carries the captured identity and diagnostic fields.
func (e *ExecutionContext) Apply(ctx context.Context) context.Context {
	if e == nil {
		return ctx
	}
	if e.ActorID != "" {
		ctx = WithActorID(ctx, e.ActorID)
	}
	if e.RequestID != "" {
		ctx = WithRequestID(ctx, e.RequestID)
	}
	if e.CommandName != "" {
		ctx = WithCommandName(ctx, e.CommandName)
	}
	for k, v := range e.Fields {
		ctx = WithDiagnosticField(ctx, k, v)
	}
	return ctx
}
