package task

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "todo"
	serverVersion = "1.0.0"
)

// Server is the MCP server for task management.
type Server struct {
	mcpServer *server.MCPServer
	store     *Store
}

// NewServer creates a new task MCP server backed by the given store.
func NewServer(store *Store) *Server {
	s := &Server{
		store: store,
	}

	s.mcpServer = server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(false),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying MCP server for serving.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// taskView is the JSON shape returned by the tools.
type taskView struct {
	Task
	PriorityLabel string `json:"priority_label"`
	When          string `json:"when,omitempty"`
}

func viewOf(t Task) taskView {
	return taskView{Task: t, PriorityLabel: t.Priority.String(), When: FormatWhen(t)}
}

func (s *Server) registerTools() {
	recordFields := []mcp.ToolOption{
		mcp.WithString("description", mcp.Description("Optional description")),
		mcp.WithString("date", mcp.Description("Optional date in YYYY-MM-DD format")),
		mcp.WithString("time", mcp.Description("Optional time of day in 24-hour HH:MM format")),
		mcp.WithString("priority", mcp.Description("Priority: low, medium, high (default: low)")),
		mcp.WithBoolean("has_alarm", mcp.Description("Whether a reminder is requested (default: false)")),
	}

	// add_task
	addOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Add a new task with a title and optional description, date, time, priority and alarm flag"),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
	}, recordFields...)
	s.mcpServer.AddTool(mcp.NewTool("add_task", addOpts...), s.handleAddTask)

	// list_tasks
	s.mcpServer.AddTool(
		mcp.NewTool("list_tasks",
			mcp.WithDescription("List all tasks ordered by date, then time, then priority (highest first)"),
		),
		s.handleListTasks,
	)

	// get_task
	s.mcpServer.AddTool(
		mcp.NewTool("get_task",
			mcp.WithDescription("Get a single task by ID"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleGetTask,
	)

	// update_task
	updateOpts := append([]mcp.ToolOption{
		mcp.WithDescription("Replace every field of a task. Optional fields that are omitted are cleared."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Task ID")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Task title")),
	}, recordFields...)
	s.mcpServer.AddTool(mcp.NewTool("update_task", updateOpts...), s.handleUpdateTask)

	// delete_task
	s.mcpServer.AddTool(
		mcp.NewTool("delete_task",
			mcp.WithDescription("Delete a task permanently"),
			mcp.WithNumber("id", mcp.Required(), mcp.Description("Task ID")),
		),
		s.handleDeleteTask,
	)
}

// recordFromRequest reads the full task record from tool arguments.
func recordFromRequest(req mcp.CallToolRequest) (Task, error) {
	priority, err := ParsePriority(req.GetString("priority", ""))
	if err != nil {
		return Task{}, err
	}
	return Task{
		Title:       req.GetString("title", ""),
		Description: req.GetString("description", ""),
		Date:        req.GetString("date", ""),
		Time:        req.GetString("time", ""),
		Priority:    priority,
		HasAlarm:    req.GetBool("has_alarm", false),
	}, nil
}

func idFromRequest(req mcp.CallToolRequest) (int64, bool) {
	idFloat := req.GetFloat("id", -1)
	if idFloat < 1 || idFloat != math.Trunc(idFloat) {
		return 0, false
	}
	return int64(idFloat), true
}

func (s *Server) handleAddTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t, err := recordFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	id, err := s.store.Create(t)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to add task: %v", err)), nil
	}

	added, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read back task: %v", err)), nil
	}

	output, _ := json.MarshalIndent(viewOf(added), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleListTasks(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tasks, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list tasks: %v", err)), nil
	}

	if len(tasks) == 0 {
		return mcp.NewToolResultText("No tasks found."), nil
	}

	ordered := Sort(tasks)
	views := make([]taskView, len(ordered))
	for i, t := range ordered {
		views[i] = viewOf(t)
	}

	output, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleGetTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := idFromRequest(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive integer"), nil
	}

	t, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to get task: %v", err)), nil
	}

	output, _ := json.MarshalIndent(viewOf(t), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleUpdateTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := idFromRequest(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive integer"), nil
	}

	t, err := recordFromRequest(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.store.Update(id, t); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to update task: %v", err)), nil
	}

	updated, err := s.store.Get(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read back task: %v", err)), nil
	}

	output, _ := json.MarshalIndent(viewOf(updated), "", "  ")
	return mcp.NewToolResultText(string(output)), nil
}

func (s *Server) handleDeleteTask(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := idFromRequest(req)
	if !ok {
		return mcp.NewToolResultError("id is required and must be a positive integer"), nil
	}

	if err := s.store.Delete(id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete task: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Task %d deleted.", id)), nil
}
