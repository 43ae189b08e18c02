package mcpapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func (s *Server) registerPrompts(srv *mcpserver.MCPServer) {
	srv.AddPrompt(
		mcp.NewPrompt(
			"add_task_prompt",
			mcp.WithPromptDescription("Build an instruction to add a new task."),
			mcp.WithArgument("title",
				mcp.ArgumentDescription("Task title"),
				mcp.RequiredArgument(),
			),
			mcp.WithArgument("description",
				mcp.ArgumentDescription("Task description"),
			),
			mcp.WithArgument("priority",
				mcp.ArgumentDescription("Priority level (1=Low, 2=Medium, 3=High)"),
			),
		),
		s.handleAddTaskPrompt,
	)

	srv.AddPrompt(
		mcp.NewPrompt(
			"create_plan_prompt",
			mcp.WithPromptDescription("Build an instruction to draft a project plan."),
			mcp.WithArgument("task_description",
				mcp.ArgumentDescription("What the project is about"),
			),
		),
		s.handleCreatePlanPrompt,
	)
}

func (s *Server) handleAddTaskPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := req.Params.Arguments["title"]
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf(`required argument "title" not found`)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Please add a new task with the following details:\n")
	fmt.Fprintf(&b, "Title: %s\n", title)
	fmt.Fprintf(&b, "Description: %s\n", req.Params.Arguments["description"])
	if priority := req.Params.Arguments["priority"]; priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", priority)
	}
	b.WriteString("\nPlease provide any missing information and set the priority and status.\n")
	return mcp.NewGetPromptResult(
		"Add a new task",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}

func (s *Server) handleCreatePlanPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	var b strings.Builder
	b.WriteString("I need to create a new project plan. Please help me break down this project into clear steps.\n\n")
	b.WriteString("For each step, I need:\n")
	b.WriteString("1. A clear name\n")
	b.WriteString("2. A brief description\n")
	b.WriteString("3. Any detailed information needed to complete the step\n")
	b.WriteString("4. The logical order of the steps\n\n")
	if desc := strings.TrimSpace(req.Params.Arguments["task_description"]); desc != "" {
		fmt.Fprintf(&b, "Project description:\n%s\n", desc)
	} else {
		b.WriteString("Please ask me about my project goals so you can help create an appropriate plan.\n")
	}
	return mcp.NewGetPromptResult(
		"Draft a project plan",
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(b.String())),
		},
	), nil
}
