package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pandeptwidyaop/compose-remote/internal/taskref"
)

// Endpoints of the Compose framework API.
const (
	VersionsPath   = "/api/compose/versions"
	TasksPath      = taskref.APIPrefix + "/tasks"
	ReregisterPath = taskref.APIPrefix + "/framework/reregister"
	// SuppressPath keeps the framework's spelling.
	SuppressPath = taskref.APIPrefix + "/framework/supress"

	// MethodUpdate is the framework's own verb for updating a project.
	MethodUpdate = "UPDATE"

	NoTasksMessage = "There are no tasks running in the cluster."
	runningState   = "TASK_RUNNING"
)

// ComposeParams are the arguments of launch and update.
type ComposeParams struct {
	Framework   string
	Project     string
	ComposeFile string
}

// TaskParams are the arguments of kill and restart.
type TaskParams struct {
	Framework string
	Task      string
}

// ListParams are the arguments of list.
type ListParams struct {
	Framework string
	// All includes tasks that are not running.
	All  bool
	JSON bool
}

// Version prints the API versions the framework serves.
func (h *Handlers) Version(ctx context.Context, framework string) error {
	t, err := h.resolve(ctx, framework)
	if err != nil {
		return err
	}
	body, err := h.send(ctx, t, http.MethodGet, VersionsPath, "")
	if err != nil {
		return fmt.Errorf("unable to get version of %s: %w", framework, err)
	}
	return h.deps.Printer.Body(body)
}

// Info prints where the framework was found. It sends nothing to the
// framework itself.
func (h *Handlers) Info(ctx context.Context, framework string) error {
	t, err := h.resolve(ctx, framework)
	if err != nil {
		return err
	}
	h.deps.Printer.Line("Framework Address:               %s", t.Address)
	h.deps.Printer.Line("Framework ID:                    %s", t.FrameworkID)
	h.deps.Printer.Line("")
	return nil
}

// Launch submits a compose file as a new project.
func (h *Handlers) Launch(ctx context.Context, params ComposeParams) error {
	return h.pushCompose(ctx, params, http.MethodPut, "Launch", "launch")
}

// Update resubmits a compose file for an existing project.
func (h *Handlers) Update(ctx context.Context, params ComposeParams) error {
	return h.pushCompose(ctx, params, MethodUpdate, "Update", "update")
}

func (h *Handlers) pushCompose(ctx context.Context, params ComposeParams, method, banner, action string) error {
	if params.Project == "" || params.ComposeFile == "" {
		return fmt.Errorf("project and compose file are required")
	}

	t, err := h.resolve(ctx, params.Framework)
	if err != nil {
		return err
	}

	h.deps.Printer.Line("%s workload %s", banner, params.Project)

	path := taskref.APIPrefix + "/" + url.PathEscape(params.Project)
	body, err := h.send(ctx, t, method, path, params.ComposeFile)
	if err != nil {
		return fmt.Errorf("unable to %s project %s: %w", action, params.Project, err)
	}
	return h.deps.Printer.Envelope(body)
}

// Kill stops one task or every task of a service.
func (h *Handlers) Kill(ctx context.Context, params TaskParams) error {
	if params.Task == "" {
		return fmt.Errorf("task is required")
	}
	t, err := h.resolve(ctx, params.Framework)
	if err != nil {
		return err
	}

	ref := taskref.Resolve(params.Task)
	body, err := h.send(ctx, t, http.MethodDelete, ref.KillPath(), "")
	if err != nil {
		return fmt.Errorf("unable to kill %s: %w", ref, err)
	}
	return h.deps.Printer.Body(body)
}

// Restart restarts one task or every task of a service.
func (h *Handlers) Restart(ctx context.Context, params TaskParams) error {
	if params.Task == "" {
		return fmt.Errorf("task is required")
	}
	t, err := h.resolve(ctx, params.Framework)
	if err != nil {
		return err
	}

	ref := taskref.Resolve(params.Task)
	body, err := h.send(ctx, t, http.MethodPut, ref.RestartPath(), "")
	if err != nil {
		return fmt.Errorf("unable to restart %s: %w", ref, err)
	}
	return h.deps.Printer.Body(body)
}

// FrameworkReregister makes the framework forget its Mesos registration.
func (h *Handlers) FrameworkReregister(ctx context.Context, framework string) error {
	return h.frameworkControl(ctx, framework, ReregisterPath, "reregister")
}

// FrameworkSuppress makes the framework stop accepting offers.
func (h *Handlers) FrameworkSuppress(ctx context.Context, framework string) error {
	return h.frameworkControl(ctx, framework, SuppressPath, "suppress")
}

func (h *Handlers) frameworkControl(ctx context.Context, framework, path, action string) error {
	t, err := h.resolve(ctx, framework)
	if err != nil {
		return err
	}
	body, err := h.send(ctx, t, http.MethodPut, path, "")
	if err != nil {
		return fmt.Errorf("unable to %s framework %s: %w", action, framework, err)
	}
	return h.deps.Printer.Body(body)
}

// task is the subset of the framework's task record the table shows.
type task struct {
	TaskID     string
	TaskName   string
	State      string
	MesosAgent struct {
		Slaves []struct {
			Hostname string `json:"hostname"`
		} `json:"slaves"`
	}
}

func (t task) agentHostname() string {
	if len(t.MesosAgent.Slaves) == 0 {
		return ""
	}
	return t.MesosAgent.Slaves[0].Hostname
}

// List shows the framework's tasks, running ones only unless All is set.
func (h *Handlers) List(ctx context.Context, params ListParams) error {
	t, err := h.resolve(ctx, params.Framework)
	if err != nil {
		return err
	}

	body, err := h.send(ctx, t, http.MethodGet, TasksPath, "")
	if err != nil {
		return fmt.Errorf("unable to list tasks of %s: %w", params.Framework, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		h.deps.Log.WithField("func", "handlers.List").WithError(err).Debug("Task list is not a JSON array")
		return h.deps.Printer.Body(body)
	}

	var (
		kept []json.RawMessage
		rows [][]string
	)
	for _, entry := range entries {
		var tk task
		if err := json.Unmarshal(entry, &tk); err != nil {
			h.deps.Log.WithField("func", "handlers.List").WithError(err).Debug("Skip undecodable task")
			continue
		}
		if !params.All && tk.State != runningState {
			continue
		}
		kept = append(kept, entry)
		rows = append(rows, []string{tk.TaskID, tk.TaskName, tk.State, tk.agentHostname()})
	}

	if params.JSON {
		if kept == nil {
			kept = []json.RawMessage{}
		}
		out, err := json.Marshal(kept)
		if err != nil {
			return err
		}
		return h.deps.Printer.JSON(out)
	}

	if len(rows) == 0 {
		h.deps.Printer.Line(NoTasksMessage)
		return nil
	}
	return h.deps.Printer.Table([]string{"ID", "Name", "State", "Agent"}, rows)
}
