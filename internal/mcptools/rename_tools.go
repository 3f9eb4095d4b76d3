package mcptools

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/rename"
)

func registerRenameTools(s *server.MCPServer, deps Deps) {
	registerPreviewRenameTool(s, deps.Executor)
	registerApplyRenameTool(s, deps.Executor)
	registerBatchRenameTool(s, deps.Executor)
}

func registerPreviewRenameTool(s *server.MCPServer, ex *rename.Executor) {
	tool := mcp.NewTool("preview_rename",
		mcp.WithDescription("Preview what a rename would do without touching the filesystem: the sanitized final name, target path, and any conflict resolution."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file to rename"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("Desired new name, without extension"),
		),
		mcp.WithString("destination_dir",
			mcp.Description("Move the file here instead of renaming in place"),
		),
	)

	s.AddTool(tool, func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			FilePath       string `json:"file_path"`
			NewName        string `json:"new_name"`
			DestinationDir string `json:"destination_dir,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		preview, err := ex.Preview(rename.Request{
			FilePath:       args.FilePath,
			NewName:        args.NewName,
			DestinationDir: args.DestinationDir,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to preview rename: %v", err)), nil
		}

		return jsonResult(preview)
	})
}

func registerApplyRenameTool(s *server.MCPServer, ex *rename.Executor) {
	tool := mcp.NewTool("apply_rename",
		mcp.WithDescription("Rename (and optionally move) a single file. Conflicting names get a numbered suffix. Pass pattern_id so the rule's usage statistics and the rename history are updated."),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("Path of the file to rename"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("Desired new name, without extension"),
		),
		mcp.WithString("destination_dir",
			mcp.Description("Move the file here instead of renaming in place"),
		),
		mcp.WithString("pattern_id",
			mcp.Description("Rule that produced the name; records usage and history"),
		),
		mcp.WithString("document_type",
			mcp.Description("Document type for the history entry"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			FilePath       string `json:"file_path"`
			NewName        string `json:"new_name"`
			DestinationDir string `json:"destination_dir,omitempty"`
			PatternID      string `json:"pattern_id,omitempty"`
			DocumentType   string `json:"document_type,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		slog.Info("applying rename via MCP", "file", args.FilePath, "new_name", args.NewName)

		result, err := ex.Apply(ctx, rename.Request{
			FilePath:       args.FilePath,
			NewName:        args.NewName,
			DestinationDir: args.DestinationDir,
		}, args.PatternID, model.ParseDocumentType(args.DocumentType))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to rename: %v", err)), nil
		}

		return jsonResult(result)
	})
}

func registerBatchRenameTool(s *server.MCPServer, ex *rename.Executor) {
	tool := mcp.NewTool("batch_rename",
		mcp.WithDescription("Rename many files in one call. Entries are independent; one failure does not stop the rest. Set dry_run to preview the whole batch without touching the filesystem."),
		mcp.WithArray("renames",
			mcp.Required(),
			mcp.Description("Entries with file_path, new_name, and optional destination_dir"),
		),
		mcp.WithString("destination_dir",
			mcp.Description("Shared destination for entries that do not set their own"),
		),
		mcp.WithString("pattern_id",
			mcp.Description("Rule that produced the names; records usage and history"),
		),
		mcp.WithString("document_type",
			mcp.Description("Document type for the history entries"),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Preview only; do not modify the filesystem (default: false)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			DestinationDir string `json:"destination_dir,omitempty"`
			PatternID      string `json:"pattern_id,omitempty"`
			DocumentType   string `json:"document_type,omitempty"`
			Renames        []struct {
				FilePath       string `json:"file_path"`
				NewName        string `json:"new_name"`
				DestinationDir string `json:"destination_dir,omitempty"`
			} `json:"renames"`
			DryRun bool `json:"dry_run,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if len(args.Renames) == 0 {
			return mcp.NewToolResultError("renames must contain at least one entry"), nil
		}

		requests := make([]rename.Request, 0, len(args.Renames))
		for _, entry := range args.Renames {
			requests = append(requests, rename.Request{
				FilePath:       entry.FilePath,
				NewName:        entry.NewName,
				DestinationDir: entry.DestinationDir,
			})
		}

		slog.Info("applying batch rename via MCP", "count", len(requests), "dry_run", args.DryRun)

		summary := ex.ApplyBatch(ctx, requests, rename.BatchOptions{
			DestinationDir: args.DestinationDir,
			PatternID:      args.PatternID,
			DocumentType:   model.ParseDocumentType(args.DocumentType),
			DryRun:         args.DryRun,
		})

		return jsonResult(summary)
	})
}
