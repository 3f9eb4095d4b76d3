package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/scan"
)

func registerFileTools(s *server.MCPServer, deps Deps) {
	registerListFilesTool(s, deps)
	registerInspectFileTool(s)
	registerListDocumentTypesTool(s)
}

func registerListFilesTool(s *server.MCPServer, deps Deps) {
	tool := mcp.NewTool("list_files",
		mcp.WithDescription("List files in a directory with size, MIME type, and PDF page counts. Use this to discover documents that need renaming."),
		mcp.WithString("directory",
			mcp.Required(),
			mcp.Description("Directory to scan"),
		),
		mcp.WithString("glob",
			mcp.Description("Doublestar glob filter relative to the directory, e.g. **/*.pdf"),
		),
		mcp.WithString("extensions",
			mcp.Description("Comma-separated extension filter, e.g. pdf,jpg"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Descend into subdirectories (default: false)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Directory  string `json:"directory"`
			Glob       string `json:"glob,omitempty"`
			Extensions string `json:"extensions,omitempty"`
			Recursive  bool   `json:"recursive,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		opts := scan.Options{
			Glob:       args.Glob,
			Extensions: splitList(args.Extensions),
			Recursive:  args.Recursive,
		}

		slog.Info("listing files via MCP", "directory", args.Directory, "glob", args.Glob)

		files, err := scan.List(ctx, args.Directory, opts, deps.Index)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list files: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"directory": args.Directory,
			"count":     len(files),
			"files":     files,
		})
	})
}

func registerInspectFileTool(s *server.MCPServer) {
	tool := mcp.NewTool("inspect_file",
		mcp.WithDescription("Inspect a single file: size, modification time, content-detected MIME type, and page count for PDFs."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file to inspect"),
		),
	)

	s.AddTool(tool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			FilePath string `json:"file_path"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		info, err := scan.Inspect(args.FilePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to inspect file: %v", err)), nil
		}

		return jsonResult(info)
	})
}

func registerListDocumentTypesTool(s *server.MCPServer) {
	tool := mcp.NewTool("list_document_types",
		mcp.WithDescription("List all supported document types with their descriptions, identifying keywords, and the fields worth extracting for each."),
	)

	s.AddTool(tool, func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(map[string]any{
			"document_types": model.DocumentTypeCatalog(),
		})
	})
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(raw string) []string {
	var items []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
