// Package mcpserver exposes the chat service as Model Context Protocol tools
// over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"weatherbot/internal/chat"
	"weatherbot/internal/gazetteer"
)

// Version is set via ldflags at build time.
var Version = "dev"

var chatTool = mcp.NewTool("chat",
	mcp.WithDescription("Send one message to WeatherBot and get its reply. It answers weather questions about a named city, e.g. \"will it rain in Lyon tomorrow?\"."),
	mcp.WithString("message",
		mcp.Required(),
		mcp.Description("The user's message"),
	),
)

var findCityTool = mcp.NewTool("find_city",
	mcp.WithDescription("Fuzzy-search the cities WeatherBot recognises in messages."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Part of a city name"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of names to return (default 10)"),
	),
)

type Server struct {
	responder chat.Responder
	cities    []string
	mcp       *server.MCPServer
}

func NewServer(r chat.Responder, cities []string) *Server {
	s := &Server{responder: r, cities: cities}
	s.mcp = server.NewMCPServer(
		"weatherbot",
		Version,
		server.WithToolCapabilities(false),
	)
	s.mcp.AddTool(chatTool, s.handleChat)
	s.mcp.AddTool(findCityTool, s.handleFindCity)
	return s
}

// Serve runs the server on stdio. Stdout carries protocol messages, so
// logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}

func (s *Server) handleChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	message, err := request.RequireString("message")
	if err != nil || strings.TrimSpace(message) == "" {
		return mcp.NewToolResultError("missing required parameter: message"), nil
	}
	reply, intent := s.responder.Chat(ctx, message)
	return mcp.NewToolResultText(fmt.Sprintf("[%s] %s", intent, reply)), nil
}

func (s *Server) handleFindCity(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}
	limit := request.GetInt("limit", 10)
	if limit <= 0 {
		limit = 10
	}

	names := gazetteer.Suggest(s.cities, query, limit)
	if len(names) == 0 {
		return mcp.NewToolResultText("No matching city."), nil
	}
	return mcp.NewToolResultText(strings.Join(names, "\n")), nil
}
