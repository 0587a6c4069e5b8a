package cqrs

import (
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"
)

// CommandEventFlow is one command -> events edge of the flow graph.
type CommandEventFlow struct {
	FromCommand string   `json:"from_command"`
	ToEvents    []string `json:"to_events"`
}

// PolicyCommandFlow is one event -> policy -> command edge of the flow
// graph.
type PolicyCommandFlow struct {
	Policy    string `json:"policy"`
	FromEvent string `json:"from_event"`
	ToCommand string `json:"to_command"`
}

// Flow is the static, metadata-derived map of command -> event and
// event -> policy -> command relationships, for introspection and
// diagramming.
type Flow struct {
	CommandEvents  []CommandEventFlow  `json:"command_events"`
	PolicyCommands []PolicyCommandFlow `json:"policy_commands"`
}

// Registry resolves handlers by command type and derives the flow graph
// from declarative metadata, without executing any handler logic.
type Registry struct {
	handlers map[string]Handler
	policies []Policy
	logger   zerolog.Logger

	flowOnce sync.Once
	flow     Flow
}

// NewRegistry builds the handler table. Registering two handlers for the
// same command type is a fatal configuration error.
func NewRegistry(handlers []Handler, policies []Policy, logger zerolog.Logger) (*Registry, error) {
	table := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		commandType := h.CommandType()
		if _, exists := table[commandType]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHandler, commandType)
		}
		table[commandType] = h
	}
	return &Registry{
		handlers: table,
		policies: policies,
		logger:   logger,
	}, nil
}

// HandlerFor returns the handler registered for the command type.
func (r *Registry) HandlerFor(commandType string) (Handler, bool) {
	h, ok := r.handlers[commandType]
	return h, ok
}

// Flow returns the flow graph snapshot. The graph is built once, on first
// call, and never recomputed; callers get copies of the edge lists.
func (r *Registry) Flow() Flow {
	r.flowOnce.Do(r.buildFlow)

	snapshot := Flow{
		CommandEvents:  make([]CommandEventFlow, len(r.flow.CommandEvents)),
		PolicyCommands: make([]PolicyCommandFlow, len(r.flow.PolicyCommands)),
	}
	for i, edge := range r.flow.CommandEvents {
		snapshot.CommandEvents[i] = CommandEventFlow{
			FromCommand: edge.FromCommand,
			ToEvents:    append([]string(nil), edge.ToEvents...),
		}
	}
	copy(snapshot.PolicyCommands, r.flow.PolicyCommands)
	return snapshot
}

// buildFlow collects declared metadata defensively: a handler or policy
// whose declaration panics is downgraded to a warning and treated as
// declaring nothing. Startup never fails on bad metadata.
func (r *Registry) buildFlow() {
	commandTypes := make([]string, 0, len(r.handlers))
	for commandType := range r.handlers {
		commandTypes = append(commandTypes, commandType)
	}
	sort.Strings(commandTypes)

	for _, commandType := range commandTypes {
		h := r.handlers[commandType]
		r.flow.CommandEvents = append(r.flow.CommandEvents, CommandEventFlow{
			FromCommand: commandType,
			ToEvents:    r.declaredEvents(h),
		})
	}
	for _, p := range r.policies {
		for _, pf := range r.declaredFlows(p) {
			r.flow.PolicyCommands = append(r.flow.PolicyCommands, PolicyCommandFlow{
				Policy:    p.PolicyName(),
				FromEvent: pf.FromEvent,
				ToCommand: pf.ToCommand,
			})
		}
	}
}

func (r *Registry) declaredEvents(h Handler) (events []string) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn().
				Str("command", h.CommandType()).
				Interface("panic", rec).
				Msg("DeclareEvents panicked, treating as empty")
			events = nil
		}
	}()
	return h.DeclareEvents()
}

func (r *Registry) declaredFlows(p Policy) (flows []PolicyFlow) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Warn().
				Str("policy", p.PolicyName()).
				Interface("panic", rec).
				Msg("DeclareFlows panicked, treating as empty")
			flows = nil
		}
	}()
	return p.DeclareFlows()
}
