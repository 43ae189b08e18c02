// Package mcpapi exposes the tracker over the Model Context Protocol on
// stdio: tools for every data operation, resources for reads, and prompts
// for common workflows. Every request sees a fresh view of the data files,
// so external edits from the board or CLI are always visible.
package mcpapi

import (
	"context"
	"errors"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"tasktracker/internal/app"
	"tasktracker/internal/domain"
)

const serverName = "TaskTracker"

// Service is the data API surface the MCP adapter drives; *app.Service
// satisfies it.
type Service interface {
	ReloadAll(ctx context.Context) error

	GetAllTasks(ctx context.Context) []domain.Task
	GetTask(ctx context.Context, id string) (domain.Task, error)
	AddTask(ctx context.Context, in domain.TaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, in app.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	GetAllPlanSteps(ctx context.Context) []domain.PlanStep
	GetPlanStep(ctx context.Context, id string) (domain.PlanStep, error)
	AddPlanStep(ctx context.Context, in domain.PlanStepInput) (domain.PlanStep, error)
	UpdatePlanStep(ctx context.Context, id string, in app.UpdatePlanStepInput) (domain.PlanStep, error)
	TogglePlanStep(ctx context.Context, id string) (domain.PlanStep, error)
	DeletePlanStep(ctx context.Context, id string) error

	GetNotes(ctx context.Context) string
	SaveNotes(ctx context.Context, text string) error

	ExportData(ctx context.Context, path string) error
	ImportData(ctx context.Context, path string) error
}

// Logger receives adapter events; the CLI runtime logger satisfies it.
type Logger interface {
	Debug(msg string, keyvals ...any)
	Info(msg string, keyvals ...any)
	Warn(msg string, keyvals ...any)
	Error(msg string, keyvals ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

// Server wires the tracker service into one MCP stdio server.
type Server struct {
	svc Service
	log Logger
	mcp *mcpserver.MCPServer
}

// New registers the full tool, resource, and prompt surface over svc.
func New(svc Service, version string, log Logger) *Server {
	s := &Server{svc: svc, log: log}
	if s.log == nil {
		s.log = nopLogger{}
	}
	srv := mcpserver.NewMCPServer(
		serverName,
		version,
		mcpserver.WithToolCapabilities(false),
		mcpserver.WithResourceCapabilities(false, false),
		mcpserver.WithPromptCapabilities(false),
	)
	s.registerTaskTools(srv)
	s.registerPlanTools(srv)
	s.registerNotesTools(srv)
	s.registerSnapshotTools(srv)
	s.registerResources(srv)
	s.registerPrompts(srv)
	s.mcp = srv
	return s
}

// ServeStdio answers line-delimited JSON-RPC on in/out until EOF or ctx
// cancellation.
func (s *Server) ServeStdio(ctx context.Context, in io.Reader, out io.Writer) error {
	return mcpserver.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

// fresh re-reads every store so the request acts on the current file
// contents. A transiently unreadable file keeps its prior state.
func (s *Server) fresh(ctx context.Context) {
	if err := s.svc.ReloadAll(ctx); err != nil {
		s.log.Warn("reload before request failed", "err", err)
	}
}

// toolResultFromError maps service errors onto MCP tool error results.
func toolResultFromError(err error) *mcp.CallToolResult {
	switch {
	case err == nil:
		return mcp.NewToolResultError("unknown error")
	case errors.Is(err, domain.ErrTaskNotFound), errors.Is(err, domain.ErrStepNotFound):
		return mcp.NewToolResultError("not_found: " + err.Error())
	default:
		return mcp.NewToolResultError("internal_error: " + err.Error())
	}
}

func invalidRequestToolResult(err error) *mcp.CallToolResult {
	if err == nil {
		return mcp.NewToolResultError("invalid_request: malformed arguments")
	}
	return mcp.NewToolResultError("invalid_request: " + err.Error())
}
