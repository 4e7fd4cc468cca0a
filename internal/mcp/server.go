// Package mcp exposes the chore service as MCP tools over stdio, so agent
// clients get the same submission semantics as the HTTP API: server-stamped
// timestamps, whole-batch rejection, idempotent re-completion.
package mcp

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"chorewheel/internal/chores"
)

// Handlers provides MCP tool handlers.
type Handlers struct {
	svc             *chores.Service
	defaultTimeline time.Duration
}

func NewHandlers(svc *chores.Service, defaultTimeline time.Duration) *Handlers {
	return &Handlers{svc: svc, defaultTimeline: defaultTimeline}
}

// RegisterTools registers all chore tools with the MCP server.
func (h *Handlers) RegisterTools(s *server.MCPServer) {
	s.AddTool(
		mcp.NewTool("chore_status",
			mcp.WithDescription("List every chore with its derived status (due, upcoming, done)"),
		),
		h.HandleStatus,
	)

	s.AddTool(
		mcp.NewTool("chore_complete",
			mcp.WithDescription("Mark chores complete. The whole batch is rejected if any name is unknown; already-done chores are no-ops."),
			mcp.WithString("tasks", mcp.Description("Comma-separated chore names"), mcp.Required()),
		),
		h.HandleComplete,
	)

	s.AddTool(
		mcp.NewTool("chore_timeline",
			mcp.WithDescription("Project upcoming due dates for every chore"),
			mcp.WithNumber("days", mcp.Description("Projection window in days (default 365)")),
		),
		h.HandleTimeline,
	)
}

// HandleStatus returns the derived status for all chores.
func (h *Handlers) HandleStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, err := h.svc.Statuses(time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(views, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// HandleComplete submits a batch of completions.
func (h *Handlers) HandleComplete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw := mcp.ParseString(req, "tasks", "")

	var names []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	if len(names) == 0 {
		return mcp.NewToolResultError("tasks is required"), nil
	}

	resp, err := h.svc.Submit(ctx, names, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(resp, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// HandleTimeline projects due dates over the requested window.
func (h *Handlers) HandleTimeline(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	horizon := h.defaultTimeline
	if days := mcp.ParseInt(req, "days", 0); days > 0 {
		if days > 3650 {
			return mcp.NewToolResultError("days must be at most 3650"), nil
		}
		horizon = time.Duration(days) * 24 * time.Hour
	}

	occurrences, err := h.svc.Timeline(time.Now().UTC(), horizon)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	data, _ := json.MarshalIndent(occurrences, "", "  ")
	return mcp.NewToolResultText(string(data)), nil
}

// NewServer creates a new MCP server with chore tools.
func NewServer(svc *chores.Service, defaultTimeline time.Duration) *server.MCPServer {
	s := server.NewMCPServer("chorewheel", "1.0.0")
	h := NewHandlers(svc, defaultTimeline)
	h.RegisterTools(s)
	return s
}
