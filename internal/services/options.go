// Package services wires the application graph: Spanner client, transaction
// runner, the cqrs runtime, repositories, command handlers, policies, and
// the HTTP handlers on top.
package services

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"github.com/rs/zerolog"

	"github.com/machingclee/scriptdeck/internal/app/deck/commands/add_notification"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/annotate_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_folder"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/create_workspace"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/move_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/pin_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/record_run"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/rename_folder"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/update_ai_profile"
	"github.com/machingclee/scriptdeck/internal/app/deck/commands/update_script"
	"github.com/machingclee/scriptdeck/internal/app/deck/policies"
	"github.com/machingclee/scriptdeck/internal/app/deck/queries/list_audit"
	"github.com/machingclee/scriptdeck/internal/app/deck/queries/list_notifications"
	"github.com/machingclee/scriptdeck/internal/app/deck/repo"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
	transporthttp "github.com/machingclee/scriptdeck/internal/transport/http"
)

// ServiceOptions holds the wired application dependencies.
type ServiceOptions struct {
	SpannerClient   *spanner.Client
	Invoker         *cqrs.Invoker
	Registry        *cqrs.Registry
	Bus             *cqrs.Bus
	CommandsHandler *transporthttp.CommandsHandler
	AuditHandler    *transporthttp.AuditHandler
	Notifications   *transporthttp.NotificationsHandler
	FlowHandler     *transporthttp.FlowHandler
}

// NewServiceOptions creates and wires all application dependencies.
func NewServiceOptions(ctx context.Context, spannerDB string, logger zerolog.Logger) (*ServiceOptions, error) {
	spannerClient, err := spanner.NewClient(ctx, spannerDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create Spanner client: %w", err)
	}

	clk := clock.NewRealClock()
	runner := committer.NewRunner(spannerClient)

	folderRepo := repo.NewFolderRepo(spannerClient)
	scriptRepo := repo.NewScriptRepo(spannerClient)
	workspaceRepo := repo.NewWorkspaceRepo(spannerClient)
	notificationRepo := repo.NewNotificationRepo(spannerClient)
	aiProfileRepo := repo.NewAIProfileRepo(spannerClient)
	auditStore := repo.NewAuditStore(spannerClient, runner)
	auditReadModel := repo.NewAuditReadModel(spannerClient)
	notificationReadModel := repo.NewNotificationReadModel(spannerClient)

	bus := cqrs.NewBus(logger)
	auditor := cqrs.NewAuditor(auditStore, runner, clk, logger)
	dispatcher := cqrs.NewDispatcher(bus, runner, logger)

	createWorkspaceHandler := create_workspace.NewHandler(workspaceRepo, clk)

	handlers := []cqrs.Handler{
		create_folder.NewHandler(folderRepo, clk),
		rename_folder.NewHandler(folderRepo, clk),
		create_script.NewHandler(scriptRepo, folderRepo, clk),
		update_script.NewHandler(scriptRepo, clk),
		annotate_script.NewHandler(scriptRepo, clk),
		move_script.NewHandler(scriptRepo, folderRepo, clk),
		record_run.NewHandler(scriptRepo, clk),
		createWorkspaceHandler,
		pin_script.NewHandler(workspaceRepo, scriptRepo, clk),
		add_notification.NewHandler(notificationRepo, clk),
		update_ai_profile.NewHandler(aiProfileRepo, clk),
	}

	invokerLogger := logger.With().Str("component", "invoker").Logger()

	// The policy list is assembled before the registry so DeclareFlows feeds
	// the flow graph; the invoker reaches policies and nested handlers only
	// after wiring, through SetInvoker / Register.
	notifyPolicy := policies.NewNotifyPolicy(logger)
	registry, err := cqrs.NewRegistry(handlers, []cqrs.Policy{notifyPolicy}, logger)
	if err != nil {
		spannerClient.Close()
		return nil, fmt.Errorf("failed to build command registry: %w", err)
	}

	invoker := cqrs.NewInvoker(registry, dispatcher, auditor, runner, invokerLogger)
	createWorkspaceHandler.SetInvoker(invoker)
	notifyPolicy.SetInvoker(invoker)

	bus.SubscribeWrapper(auditor.EventListener())
	notifyPolicy.Register(bus)

	listAuditQuery := list_audit.NewQuery(auditReadModel)
	listNotificationsQuery := list_notifications.NewQuery(notificationReadModel)

	return &ServiceOptions{
		SpannerClient:   spannerClient,
		Invoker:         invoker,
		Registry:        registry,
		Bus:             bus,
		CommandsHandler: transporthttp.NewCommandsHandler(invoker),
		AuditHandler:    transporthttp.NewAuditHandler(listAuditQuery),
		Notifications:   transporthttp.NewNotificationsHandler(listNotificationsQuery),
		FlowHandler:     transporthttp.NewFlowHandler(registry),
	}, nil
}

// Close releases all held resources.
func (s *ServiceOptions) Close() {
	if s.SpannerClient != nil {
		s.SpannerClient.Close()
	}
}
