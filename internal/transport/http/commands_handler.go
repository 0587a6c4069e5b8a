package http

import (
	"net/http"

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
	"github.com/machingclee/scriptdeck/internal/cqrs"
)

// CommandsHandler exposes the write side of the deck over HTTP. Every
// endpoint decodes its body into a command and hands it to the invoker;
// the invoker owns transactions, auditing, and event dispatch.
type CommandsHandler struct {
	invoker cqrs.CommandInvoker
}

// NewCommandsHandler creates a new commands handler.
func NewCommandsHandler(invoker cqrs.CommandInvoker) *CommandsHandler {
	return &CommandsHandler{invoker: invoker}
}

type idResponse struct {
	ID string `json:"id"`
}

// invoke executes cmd and writes the resulting aggregate id.
func (h *CommandsHandler) invoke(w http.ResponseWriter, r *http.Request, cmd cqrs.Command) {
	res, err := h.invoker.Invoke(r.Context(), cmd)
	if err != nil {
		writeError(w, err)
		return
	}
	id, _ := res.(string)
	writeJSON(w, http.StatusOK, idResponse{ID: id})
}

// CreateFolder handles POST /api/v1/folders.
func (h *CommandsHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var cmd create_folder.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.invoke(w, r, cmd)
}

// RenameFolder handles POST /api/v1/folders/{id}/rename.
func (h *CommandsHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var cmd rename_folder.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.FolderID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// CreateScript handles POST /api/v1/scripts.
func (h *CommandsHandler) CreateScript(w http.ResponseWriter, r *http.Request) {
	var cmd create_script.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.invoke(w, r, cmd)
}

// UpdateScript handles PUT /api/v1/scripts/{id}.
func (h *CommandsHandler) UpdateScript(w http.ResponseWriter, r *http.Request) {
	var cmd update_script.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.ScriptID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// AnnotateScript handles POST /api/v1/scripts/{id}/annotate.
func (h *CommandsHandler) AnnotateScript(w http.ResponseWriter, r *http.Request) {
	var cmd annotate_script.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.ScriptID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// MoveScript handles POST /api/v1/scripts/{id}/move.
func (h *CommandsHandler) MoveScript(w http.ResponseWriter, r *http.Request) {
	var cmd move_script.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.ScriptID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// RecordRun handles POST /api/v1/scripts/{id}/runs.
func (h *CommandsHandler) RecordRun(w http.ResponseWriter, r *http.Request) {
	var cmd record_run.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.ScriptID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// CreateWorkspace handles POST /api/v1/workspaces.
func (h *CommandsHandler) CreateWorkspace(w http.ResponseWriter, r *http.Request) {
	var cmd create_workspace.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.invoke(w, r, cmd)
}

// PinScript handles POST /api/v1/workspaces/{id}/pins.
func (h *CommandsHandler) PinScript(w http.ResponseWriter, r *http.Request) {
	var cmd pin_script.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	cmd.WorkspaceID = r.PathValue("id")
	h.invoke(w, r, cmd)
}

// UpdateAIProfile handles PUT /api/v1/ai-profile.
func (h *CommandsHandler) UpdateAIProfile(w http.ResponseWriter, r *http.Request) {
	var cmd update_ai_profile.Command
	if err := decodeBody(r, &cmd); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	h.invoke(w, r, cmd)
}
