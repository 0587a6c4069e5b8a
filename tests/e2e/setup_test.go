package e2e

import (
	"context"
	"testing"

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
	"github.com/machingclee/scriptdeck/internal/app/deck/repo"
	"github.com/machingclee/scriptdeck/internal/cqrs"
	"github.com/machingclee/scriptdeck/internal/pkg/clock"
	"github.com/machingclee/scriptdeck/internal/pkg/committer"
	"github.com/machingclee/scriptdeck/tests/testutil"
)

// Runtime holds the fully wired command runtime for end-to-end tests.
type Runtime struct {
	Invoker   *cqrs.Invoker
	Registry  *cqrs.Registry
	Bus       *cqrs.Bus
	ListAudit *list_audit.Query
	Client    *spanner.Client
}

// setupTest wires the runtime the same way the server does, against the
// emulator-backed test database.
func setupTest(t *testing.T) (*Runtime, func()) {
	t.Helper()
	testutil.RequireEmulator(t)

	client, cleanup := testutil.SetupSpannerTest(t)
	logger := zerolog.Nop()

	clk := clock.NewRealClock()
	runner := committer.NewRunner(client)

	folderRepo := repo.NewFolderRepo(client)
	scriptRepo := repo.NewScriptRepo(client)
	workspaceRepo := repo.NewWorkspaceRepo(client)
	notificationRepo := repo.NewNotificationRepo(client)
	aiProfileRepo := repo.NewAIProfileRepo(client)
	auditStore := repo.NewAuditStore(client, runner)
	auditReadModel := repo.NewAuditReadModel(client)

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

	notifyPolicy := policies.NewNotifyPolicy(logger)
	registry, err := cqrs.NewRegistry(handlers, []cqrs.Policy{notifyPolicy}, logger)
	if err != nil {
		t.Fatalf("failed to build registry: %v", err)
	}

	invoker := cqrs.NewInvoker(registry, dispatcher, auditor, runner, logger)
	createWorkspaceHandler.SetInvoker(invoker)
	notifyPolicy.SetInvoker(invoker)

	bus.SubscribeWrapper(auditor.EventListener())
	notifyPolicy.Register(bus)

	rt := &Runtime{
		Invoker:   invoker,
		Registry:  registry,
		Bus:       bus,
		ListAudit: list_audit.NewQuery(auditReadModel),
		Client:    client,
	}
	return rt, cleanup
}

// ctx returns a context for testing.
func ctx() context.Context {
	return context.Background()
}
