package mcpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"tasktracker/internal/domain"
)

func (s *Server) registerResources(srv *mcpserver.MCPServer) {
	srv.AddResource(
		mcp.NewResource(
			"tasks://all",
			"All tasks",
			mcp.WithResourceDescription("Every task as a JSON document."),
			mcp.WithMIMEType("application/json"),
		),
		s.handleAllTasksResource,
	)

	srv.AddResource(
		mcp.NewResource(
			"plan://all",
			"All plan steps",
			mcp.WithResourceDescription("Every plan step as a JSON document, ordered."),
			mcp.WithMIMEType("application/json"),
		),
		s.handleAllPlanStepsResource,
	)

	srv.AddResource(
		mcp.NewResource(
			"notes://all",
			"Notes",
			mcp.WithResourceDescription("The free-form notes text."),
			mcp.WithMIMEType("text/plain"),
		),
		s.handleNotesResource,
	)

	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"tasks://{task_id}",
			"Task by ID",
			mcp.WithTemplateDescription("One task as a JSON document."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleTaskResource,
	)

	srv.AddResourceTemplate(
		mcp.NewResourceTemplate(
			"plan://{step_id}",
			"Plan step by ID",
			mcp.WithTemplateDescription("One plan step as a JSON document."),
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handlePlanStepResource,
	)
}

func (s *Server) handleAllTasksResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.fresh(ctx)
	tasks := s.svc.GetAllTasks(ctx)
	if tasks == nil {
		tasks = []domain.Task{}
	}
	return jsonResourceContents(req.Params.URI, tasks)
}

func (s *Server) handleAllPlanStepsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.fresh(ctx)
	steps := s.svc.GetAllPlanSteps(ctx)
	if steps == nil {
		steps = []domain.PlanStep{}
	}
	return jsonResourceContents(req.Params.URI, steps)
}

func (s *Server) handleNotesResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.fresh(ctx)
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      req.Params.URI,
		MIMEType: "text/plain",
		Text:     s.svc.GetNotes(ctx),
	}}, nil
}

func (s *Server) handleTaskResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "tasks://")
	s.fresh(ctx)
	task, err := s.svc.GetTask(ctx, id)
	if errors.Is(err, domain.ErrTaskNotFound) {
		return missResourceContents(req.Params.URI, "Task not found"), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResourceContents(req.Params.URI, task)
}

func (s *Server) handlePlanStepResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	id := strings.TrimPrefix(req.Params.URI, "plan://")
	s.fresh(ctx)
	step, err := s.svc.GetPlanStep(ctx, id)
	if errors.Is(err, domain.ErrStepNotFound) {
		return missResourceContents(req.Params.URI, "Plan step not found"), nil
	}
	if err != nil {
		return nil, err
	}
	return jsonResourceContents(req.Params.URI, step)
}

func jsonResourceContents(uri string, v any) ([]mcp.ResourceContents, error) {
	doc, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode resource %s: %w", uri, err)
	}
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      uri,
		MIMEType: "application/json",
		Text:     string(doc),
	}}, nil
}

// missResourceContents renders a lookup miss as plain text contents; reads
// of dangling IDs never surface as protocol errors.
func missResourceContents(uri, text string) []mcp.ResourceContents {
	return []mcp.ResourceContents{mcp.TextResourceContents{
		URI:      uri,
		MIMEType: "text/plain",
		Text:     text,
	}}
}
