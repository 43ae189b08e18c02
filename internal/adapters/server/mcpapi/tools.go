package mcpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

func (s *Server) registerTaskTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool(
			"get_all_tasks",
			mcp.WithDescription("Get all tasks in the tracker."),
		),
		s.handleGetAllTasks,
	)

	srv.AddTool(
		mcp.NewTool(
			"get_task",
			mcp.WithDescription("Get a specific task by ID."),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task identifier")),
		),
		s.handleGetTask,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_task",
			mcp.WithDescription("Add a new task to the tracker."),
			mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
			mcp.WithString("description", mcp.Description("Task description, markdown allowed")),
			mcp.WithNumber("priority", mcp.Description("Priority level (1=Low, 2=Medium, 3=High)")),
			mcp.WithString("status",
				mcp.Description("Task status"),
				mcp.Enum("not_started", "in_progress", "completed"),
			),
		),
		s.handleAddTask,
	)

	srv.AddTool(
		mcp.NewTool(
			"update_task",
			mcp.WithDescription("Update an existing task. Omitted fields keep their current values."),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task identifier")),
			mcp.WithString("title", mcp.Description("New title")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithNumber("priority", mcp.Description("New priority (1=Low, 2=Medium, 3=High)")),
			mcp.WithString("status",
				mcp.Description("New status"),
				mcp.Enum("not_started", "in_progress", "completed"),
			),
		),
		s.handleUpdateTask,
	)

	srv.AddTool(
		mcp.NewTool(
			"delete_task",
			mcp.WithDescription("Delete a task."),
			mcp.WithString("task_id", mcp.Required(), mcp.Description("Task identifier")),
		),
		s.handleDeleteTask,
	)
}

func (s *Server) registerPlanTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool(
			"get_all_plan_steps",
			mcp.WithDescription("Get all steps in the project plan, ordered."),
		),
		s.handleGetAllPlanSteps,
	)

	srv.AddTool(
		mcp.NewTool(
			"get_plan_step",
			mcp.WithDescription("Get a specific plan step by ID."),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("Plan step identifier")),
		),
		s.handleGetPlanStep,
	)

	srv.AddTool(
		mcp.NewTool(
			"add_plan_step",
			mcp.WithDescription("Add a new step to the project plan."),
			mcp.WithString("name", mcp.Required(), mcp.Description("Step name")),
			mcp.WithString("description", mcp.Description("Brief step description")),
			mcp.WithString("details", mcp.Description("Longer step details, markdown allowed")),
			mcp.WithNumber("order", mcp.Description("Zero-based position in the plan; appended last when omitted")),
			mcp.WithBoolean("completed", mcp.Description("Whether the step starts out completed")),
		),
		s.handleAddPlanStep,
	)

	srv.AddTool(
		mcp.NewTool(
			"update_plan_step",
			mcp.WithDescription("Update an existing plan step. Omitted fields keep their current values."),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("Plan step identifier")),
			mcp.WithString("name", mcp.Description("New name")),
			mcp.WithString("description", mcp.Description("New description")),
			mcp.WithString("details", mcp.Description("New details")),
			mcp.WithNumber("order", mcp.Description("New zero-based position; the plan renumbers around it")),
			mcp.WithBoolean("completed", mcp.Description("New completion state")),
		),
		s.handleUpdatePlanStep,
	)

	srv.AddTool(
		mcp.NewTool(
			"toggle_plan_step",
			mcp.WithDescription("Toggle the completion status of a plan step."),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("Plan step identifier")),
		),
		s.handleTogglePlanStep,
	)

	srv.AddTool(
		mcp.NewTool(
			"delete_plan_step",
			mcp.WithDescription("Delete a plan step. Remaining steps are renumbered."),
			mcp.WithString("step_id", mcp.Required(), mcp.Description("Plan step identifier")),
		),
		s.handleDeletePlanStep,
	)
}

func (s *Server) registerNotesTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool(
			"get_notes",
			mcp.WithDescription("Get the free-form notes text."),
		),
		s.handleGetNotes,
	)

	srv.AddTool(
		mcp.NewTool(
			"save_notes",
			mcp.WithDescription("Replace the notes text."),
			mcp.WithString("notes_text", mcp.Required(), mcp.Description("The notes text to save")),
		),
		s.handleSaveNotes,
	)
}

func (s *Server) registerSnapshotTools(srv *mcpserver.MCPServer) {
	srv.AddTool(
		mcp.NewTool(
			"export_data",
			mcp.WithDescription("Export all tracker data to a JSON file."),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to write the exported bundle")),
		),
		s.handleExportData,
	)

	srv.AddTool(
		mcp.NewTool(
			"import_data",
			mcp.WithDescription("Import tracker data from a JSON file. Present keys replace the matching store."),
			mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the bundle to import")),
		),
		s.handleImportData,
	)
}

func (s *Server) handleGetAllTasks(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.fresh(ctx)
	tasks := s.svc.GetAllTasks(ctx)
	result, err := mcp.NewToolResultJSON(map[string]any{"tasks": tasks})
	if err != nil {
		return nil, fmt.Errorf("encode get_all_tasks result: %w", err)
	}
	return result, nil
}

func (s *Server) handleGetTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("task_id")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	task, err := s.svc.GetTask(ctx, id)
	if err != nil {
		return toolResultFromError(err), nil
	}
	result, err := mcp.NewToolResultJSON(task)
	if err != nil {
		return nil, fmt.Errorf("encode get_task result: %w", err)
	}
	return result, nil
}

func (s *Server) handleAddTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	rawStatus := req.GetString("status", string(domain.StatusNotStarted))
	status, ok := domain.ParseStatus(rawStatus)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("invalid_request: unknown status %q", rawStatus)), nil
	}
	s.fresh(ctx)
	task, err := s.svc.AddTask(ctx, domain.TaskInput{
		Title:       title,
		Description: req.GetString("description", ""),
		Priority:    domain.Priority(req.GetInt("priority", 1)),
		Status:      status,
	})
	if err != nil {
		return toolResultFromError(err), nil
	}
	s.log.Info("task added", "id", task.ID, "title", task.Title)
	result, err := mcp.NewToolResultJSON(task)
	if err != nil {
		return nil, fmt.Errorf("encode add_task result: %w", err)
	}
	return result, nil
}

func (s *Server) handleUpdateTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		TaskID      string  `json:"task_id"`
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Priority    *int    `json:"priority"`
		Status      *string `json:"status"`
	}
	if err := req.BindArguments(&args); err != nil {
		return invalidRequestToolResult(err), nil
	}
	if strings.TrimSpace(args.TaskID) == "" {
		return mcp.NewToolResultError(`invalid_request: required argument "task_id" not found`), nil
	}
	in := app.UpdateTaskInput{Title: args.Title, Description: args.Description}
	if args.Priority != nil {
		p := domain.Priority(*args.Priority)
		in.Priority = &p
	}
	if args.Status != nil {
		status, ok := domain.ParseStatus(*args.Status)
		if !ok {
			return mcp.NewToolResultError(fmt.Sprintf("invalid_request: unknown status %q", *args.Status)), nil
		}
		in.Status = &status
	}
	s.fresh(ctx)
	task, err := s.svc.UpdateTask(ctx, args.TaskID, in)
	if err != nil {
		s.log.Warn("task update failed", "id", args.TaskID, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("task updated", "id", task.ID)
	result, err := mcp.NewToolResultJSON(task)
	if err != nil {
		return nil, fmt.Errorf("encode update_task result: %w", err)
	}
	return result, nil
}

func (s *Server) handleDeleteTask(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("task_id")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.log.Warn("task delete failed", "id", id, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("task deleted", "id", id)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"success": true,
		"message": "Task deleted successfully",
	})
	if err != nil {
		return nil, fmt.Errorf("encode delete_task result: %w", err)
	}
	return result, nil
}

func (s *Server) handleGetAllPlanSteps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.fresh(ctx)
	steps := s.svc.GetAllPlanSteps(ctx)
	result, err := mcp.NewToolResultJSON(map[string]any{"steps": steps})
	if err != nil {
		return nil, fmt.Errorf("encode get_all_plan_steps result: %w", err)
	}
	return result, nil
}

func (s *Server) handleGetPlanStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("step_id")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	step, err := s.svc.GetPlanStep(ctx, id)
	if err != nil {
		return toolResultFromError(err), nil
	}
	result, err := mcp.NewToolResultJSON(step)
	if err != nil {
		return nil, fmt.Errorf("encode get_plan_step result: %w", err)
	}
	return result, nil
}

func (s *Server) handleAddPlanStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Details     string `json:"details"`
		Order       *int   `json:"order"`
		Completed   bool   `json:"completed"`
	}
	if err := req.BindArguments(&args); err != nil {
		return invalidRequestToolResult(err), nil
	}
	if strings.TrimSpace(args.Name) == "" {
		return mcp.NewToolResultError(`invalid_request: required argument "name" not found`), nil
	}
	s.fresh(ctx)
	step, err := s.svc.AddPlanStep(ctx, domain.PlanStepInput{
		Name:        args.Name,
		Description: args.Description,
		Details:     args.Details,
		Order:       args.Order,
		Completed:   args.Completed,
	})
	if err != nil {
		return toolResultFromError(err), nil
	}
	s.log.Info("plan step added", "id", step.ID, "name", step.Name)
	result, err := mcp.NewToolResultJSON(step)
	if err != nil {
		return nil, fmt.Errorf("encode add_plan_step result: %w", err)
	}
	return result, nil
}

func (s *Server) handleUpdatePlanStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args struct {
		StepID      string  `json:"step_id"`
		Name        *string `json:"name"`
		Description *string `json:"description"`
		Details     *string `json:"details"`
		Order       *int    `json:"order"`
		Completed   *bool   `json:"completed"`
	}
	if err := req.BindArguments(&args); err != nil {
		return invalidRequestToolResult(err), nil
	}
	if strings.TrimSpace(args.StepID) == "" {
		return mcp.NewToolResultError(`invalid_request: required argument "step_id" not found`), nil
	}
	s.fresh(ctx)
	step, err := s.svc.UpdatePlanStep(ctx, args.StepID, app.UpdatePlanStepInput{
		Name:        args.Name,
		Description: args.Description,
		Details:     args.Details,
		Order:       args.Order,
		Completed:   args.Completed,
	})
	if err != nil {
		s.log.Warn("plan step update failed", "id", args.StepID, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("plan step updated", "id", step.ID)
	result, err := mcp.NewToolResultJSON(step)
	if err != nil {
		return nil, fmt.Errorf("encode update_plan_step result: %w", err)
	}
	return result, nil
}

func (s *Server) handleTogglePlanStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("step_id")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	step, err := s.svc.TogglePlanStep(ctx, id)
	if err != nil {
		s.log.Warn("plan step toggle failed", "id", id, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("plan step toggled", "id", step.ID, "completed", step.Completed)
	result, err := mcp.NewToolResultJSON(step)
	if err != nil {
		return nil, fmt.Errorf("encode toggle_plan_step result: %w", err)
	}
	return result, nil
}

func (s *Server) handleDeletePlanStep(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("step_id")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	if err := s.svc.DeletePlanStep(ctx, id); err != nil {
		s.log.Warn("plan step delete failed", "id", id, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("plan step deleted", "id", id)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"success": true,
		"message": "Plan step deleted successfully",
	})
	if err != nil {
		return nil, fmt.Errorf("encode delete_plan_step result: %w", err)
	}
	return result, nil
}

func (s *Server) handleGetNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.fresh(ctx)
	return mcp.NewToolResultText(s.svc.GetNotes(ctx)), nil
}

func (s *Server) handleSaveNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, err := req.RequireString("notes_text")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	if err := s.svc.SaveNotes(ctx, text); err != nil {
		return toolResultFromError(err), nil
	}
	s.log.Info("notes saved", "bytes", len(text))
	result, err := mcp.NewToolResultJSON(map[string]any{
		"success": true,
		"message": "Notes saved successfully",
	})
	if err != nil {
		return nil, fmt.Errorf("encode save_notes result: %w", err)
	}
	return result, nil
}

func (s *Server) handleExportData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	if err := s.svc.ExportData(ctx, path); err != nil {
		s.log.Error("export failed", "path", path, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("data exported", "path", path)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"success": true,
		"message": "Data exported to " + path,
	})
	if err != nil {
		return nil, fmt.Errorf("encode export_data result: %w", err)
	}
	return result, nil
}

func (s *Server) handleImportData(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("file_path")
	if err != nil {
		return invalidRequestToolResult(err), nil
	}
	s.fresh(ctx)
	if err := s.svc.ImportData(ctx, path); err != nil {
		s.log.Error("import failed", "path", path, "err", err)
		return toolResultFromError(err), nil
	}
	s.log.Info("data imported", "path", path)
	result, err := mcp.NewToolResultJSON(map[string]any{
		"success": true,
		"message": "Data imported successfully",
	})
	if err != nil {
		return nil, fmt.Errorf("encode import_data result: %w", err)
	}
	return result, nil
}
