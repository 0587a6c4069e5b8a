// Package policies contains the reactive side of the deck runtime: listeners
// that subscribe to domain events and respond by issuing further commands
// through the invoker.
package policies

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/machingclee/scriptdeck/internal/app/deck/commands/add_notification"
	"github.com/machingclee/scriptdeck/internal/app/deck/domain"
	"github.com/machingclee/scriptdeck/internal/cqrs"
)

// NotifyPolicy turns script lifecycle events into notification feed entries.
// Each reaction is a fresh AddNotification invocation: reacting to an
// immediate event joins the producing transaction, reacting to a post-commit
// event opens a new one.
type NotifyPolicy struct {
	invoker cqrs.CommandInvoker
	logger  zerolog.Logger
}

// NewNotifyPolicy creates the policy. The invoker is attached after wiring
// via SetInvoker, since the invoker itself is built from the registry that
// carries this policy's declarations.
func NewNotifyPolicy(logger zerolog.Logger) *NotifyPolicy {
	return &NotifyPolicy{logger: logger}
}

// SetInvoker attaches the command invoker. Must be called before Register.
func (p *NotifyPolicy) SetInvoker(invoker cqrs.CommandInvoker) {
	p.invoker = invoker
}

// PolicyName implements cqrs.Policy.
func (p *NotifyPolicy) PolicyName() string { return "NotifyPolicy" }

// DeclareFlows implements cqrs.Policy. It must stay in sync with the
// subscriptions made in Register.
func (p *NotifyPolicy) DeclareFlows() []cqrs.PolicyFlow {
	return []cqrs.PolicyFlow{
		{FromEvent: "ScriptCreated", ToCommand: "AddNotification"},
		{FromEvent: "ScriptMoved", ToCommand: "AddNotification"},
		{FromEvent: "ScriptRan", ToCommand: "AddNotification"},
	}
}

// Register subscribes the policy's reactions on the bus.
func (p *NotifyPolicy) Register(bus *cqrs.Bus) {
	bus.Subscribe("ScriptCreated", p.onScriptCreated)
	bus.Subscribe("ScriptMoved", p.onScriptMoved)
	bus.Subscribe("ScriptRan", p.onScriptRan)
}

func (p *NotifyPolicy) onScriptCreated(ctx context.Context, event cqrs.Event) error {
	e, ok := event.(*domain.ScriptCreatedEvent)
	if !ok {
		return fmt.Errorf("notify policy: unexpected event %T", event)
	}
	return p.notify(ctx, e.EventName(), fmt.Sprintf("Script %q created", e.Name))
}

func (p *NotifyPolicy) onScriptMoved(ctx context.Context, event cqrs.Event) error {
	e, ok := event.(*domain.ScriptMovedEvent)
	if !ok {
		return fmt.Errorf("notify policy: unexpected event %T", event)
	}
	return p.notify(ctx, e.EventName(),
		fmt.Sprintf("Script %s moved to folder %s", e.ScriptID, e.ToFolderID))
}

func (p *NotifyPolicy) onScriptRan(ctx context.Context, event cqrs.Event) error {
	e, ok := event.(*domain.ScriptRanEvent)
	if !ok {
		return fmt.Errorf("notify policy: unexpected event %T", event)
	}
	return p.notify(ctx, e.EventName(),
		fmt.Sprintf("Script %s finished with exit code %d", e.ScriptID, e.ExitCode))
}

func (p *NotifyPolicy) notify(ctx context.Context, eventName, message string) error {
	ctx = cqrs.WithProvenance(ctx, cqrs.Provenance{
		Policy: p.PolicyName(),
		Event:  eventName,
	})
	if _, err := p.invoker.Invoke(ctx, add_notification.Command{Message: message}); err != nil {
		p.logger.Warn().
			Str("policy", p.PolicyName()).
			Str("event", eventName).
			Err(err).
			Msg("notification reaction failed")
		return err
	}
	return nil
}
