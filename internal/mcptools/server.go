// Package mcptools exposes the pattern store, rename executor, and file
// scanner as MCP (Model Context Protocol) tools over stdio, so an LLM agent
// can drive document renaming sessions.
package mcptools

import (
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Veraticus/the-papers-must-flow/internal/rename"
	"github.com/Veraticus/the-papers-must-flow/internal/scan"
	"github.com/Veraticus/the-papers-must-flow/internal/store"
)

// Deps holds the services the tools operate on. Index may be nil, in which
// case file listings skip the persistent scan cache.
type Deps struct {
	Store    *store.Store
	Executor *rename.Executor
	Index    *scan.Index
}

// NewServer builds the MCP server with all tools registered.
func NewServer(version string, deps Deps) *server.MCPServer {
	s := server.NewMCPServer(
		"papers",
		version,
		server.WithToolCapabilities(true),
	)

	registerFileTools(s, deps)
	registerPatternTools(s, deps)
	registerRenameTools(s, deps)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// unmarshalArgs converts the raw tool arguments into a typed struct via a
// JSON round trip.
func unmarshalArgs(arguments any, v any) error {
	data, err := json.Marshal(arguments)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

// jsonResult marshals v as an indented JSON tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("Failed to marshal response: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
