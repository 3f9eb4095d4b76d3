package mcptools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/pattern"
	"github.com/Veraticus/the-papers-must-flow/internal/store"
)

func registerPatternTools(s *server.MCPServer, deps Deps) {
	registerGetPatternsTool(s, deps.Store)
	registerAddPatternTool(s, deps.Store)
	registerUpdatePatternTool(s, deps.Store)
	registerDeletePatternTool(s, deps.Store)
	registerLearnPatternTool(s, deps.Store)
	registerRenderPatternTool(s, deps.Store)
	registerGetHistoryTool(s, deps.Store)
	registerGetStatsTool(s, deps.Store)
}

func registerGetPatternsTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("get_patterns",
		mcp.WithDescription("Get naming pattern rules, optionally filtered by document type. Rules are ordered by priority; higher priority rules are preferred."),
		mcp.WithString("document_type",
			mcp.Description("Filter to one document type, e.g. receipt, tax_document, bank_statement"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			DocumentType string `json:"document_type,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		var rules []model.PatternRule
		if args.DocumentType != "" {
			rules = st.PatternsForType(ctx, model.ParseDocumentType(args.DocumentType))
		} else {
			rules = st.AllPatterns(ctx)
		}

		return jsonResult(map[string]any{
			"count":    len(rules),
			"patterns": rules,
		})
	})
}

func registerAddPatternTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("add_pattern",
		mcp.WithDescription("Add a custom naming pattern rule. Templates use {Token} placeholders, e.g. \"{Date} - {Merchant} - {Amount}\"."),
		mcp.WithString("document_type",
			mcp.Required(),
			mcp.Description("Document type the rule applies to"),
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Naming template with {Token} placeholders"),
		),
		mcp.WithString("name",
			mcp.Description("Human-readable rule name"),
		),
		mcp.WithString("description",
			mcp.Description("What the rule is for"),
		),
		mcp.WithString("match_keywords",
			mcp.Description("Comma-separated keywords that select this rule"),
		),
		mcp.WithString("match_institutions",
			mcp.Description("Comma-separated institutions that select this rule"),
		),
		mcp.WithNumber("priority",
			mcp.Description("Selection priority (default: 5)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Priority          *int   `json:"priority,omitempty"`
			DocumentType      string `json:"document_type"`
			Pattern           string `json:"pattern"`
			Name              string `json:"name,omitempty"`
			Description       string `json:"description,omitempty"`
			MatchKeywords     string `json:"match_keywords,omitempty"`
			MatchInstitutions string `json:"match_institutions,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		rule, err := st.AddPattern(ctx, store.NewPattern{
			DocumentType:      model.ParseDocumentType(args.DocumentType),
			Pattern:           args.Pattern,
			Name:              args.Name,
			Description:       args.Description,
			MatchKeywords:     splitList(args.MatchKeywords),
			MatchInstitutions: splitList(args.MatchInstitutions),
			Priority:          args.Priority,
		})
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to add pattern: %v", err)), nil
		}

		slog.Info("added pattern via MCP", "id", rule.ID, "document_type", rule.DocumentType)
		return jsonResult(rule)
	})
}

func registerUpdatePatternTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("update_pattern",
		mcp.WithDescription("Update fields of an existing pattern rule. Omitted fields are left unchanged."),
		mcp.WithString("pattern_id",
			mcp.Required(),
			mcp.Description("ID of the rule to update"),
		),
		mcp.WithString("pattern",
			mcp.Description("New naming template"),
		),
		mcp.WithString("name",
			mcp.Description("New rule name"),
		),
		mcp.WithString("description",
			mcp.Description("New description"),
		),
		mcp.WithString("match_keywords",
			mcp.Description("Comma-separated replacement keyword list"),
		),
		mcp.WithString("match_institutions",
			mcp.Description("Comma-separated replacement institution list"),
		),
		mcp.WithNumber("priority",
			mcp.Description("New selection priority"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Pattern           *string `json:"pattern,omitempty"`
			Name              *string `json:"name,omitempty"`
			Description       *string `json:"description,omitempty"`
			Priority          *int    `json:"priority,omitempty"`
			MatchKeywords     *string `json:"match_keywords,omitempty"`
			MatchInstitutions *string `json:"match_institutions,omitempty"`
			PatternID         string  `json:"pattern_id"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		update := store.PatternUpdate{
			Pattern:     args.Pattern,
			Name:        args.Name,
			Description: args.Description,
			Priority:    args.Priority,
		}
		if args.MatchKeywords != nil {
			update.MatchKeywords = splitList(*args.MatchKeywords)
		}
		if args.MatchInstitutions != nil {
			update.MatchInstitutions = splitList(*args.MatchInstitutions)
		}

		rule, err := st.UpdatePattern(ctx, args.PatternID, update)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to update pattern: %v", err)), nil
		}

		return jsonResult(rule)
	})
}

func registerDeletePatternTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("delete_pattern",
		mcp.WithDescription("Delete a custom pattern rule. Built-in default rules cannot be deleted."),
		mcp.WithString("pattern_id",
			mcp.Required(),
			mcp.Description("ID of the custom rule to delete"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			PatternID string `json:"pattern_id"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		if err := st.DeletePattern(ctx, args.PatternID); err != nil {
			if errors.Is(err, store.ErrDefaultPattern) {
				return mcp.NewToolResultError("Default patterns cannot be deleted"), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete pattern: %v", err)), nil
		}

		return jsonResult(map[string]any{
			"deleted":    true,
			"pattern_id": args.PatternID,
		})
	})
}

func registerLearnPatternTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("learn_pattern",
		mcp.WithDescription("Learn a naming preference from a confirmed batch: remember that documents of this type from this institution should use this template."),
		mcp.WithString("document_type",
			mcp.Required(),
			mcp.Description("Document type the preference applies to"),
		),
		mcp.WithString("pattern",
			mcp.Required(),
			mcp.Description("Naming template the user confirmed"),
		),
		mcp.WithString("institution",
			mcp.Required(),
			mcp.Description("Institution the documents came from"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			DocumentType string `json:"document_type"`
			Pattern      string `json:"pattern"`
			Institution  string `json:"institution"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		rule, err := st.LearnFromBatch(ctx, model.ParseDocumentType(args.DocumentType), args.Pattern, args.Institution)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to learn pattern: %v", err)), nil
		}

		slog.Info("learned pattern via MCP", "id", rule.ID, "institution", args.Institution)
		return jsonResult(rule)
	})
}

func registerRenderPatternTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("render_pattern",
		mcp.WithDescription("Render a suggested filename for a document. By default the best matching rule for the document's type, institution, and keywords is selected and its template filled in. Pass extracted fields like date, merchant, amount, institution, form_type."),
		mcp.WithString("document_type",
			mcp.Required(),
			mcp.Description("Document type, e.g. receipt, tax_document"),
		),
		mcp.WithObject("fields",
			mcp.Description("Extracted document fields: date (YYYY-MM-DD), year, month, merchant, amount, account_number, form_type, institution, description"),
		),
		mcp.WithString("pattern_id",
			mcp.Description("Render this specific rule instead of auto-selecting one"),
		),
		mcp.WithString("pattern",
			mcp.Description("Render this raw template instead of any stored rule, e.g. to try a candidate before learning it. Mutually exclusive with pattern_id."),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Fields       map[string]any `json:"fields,omitempty"`
			DocumentType string         `json:"document_type"`
			PatternID    string         `json:"pattern_id,omitempty"`
			Pattern      string         `json:"pattern,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		rendered, err := renderSuggestedName(ctx, st, args.DocumentType, args.Fields, args.PatternID, args.Pattern)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to render pattern: %v", err)), nil
		}

		return jsonResult(rendered)
	})
}

// renderSuggestedName fills a naming template with the document's fields.
// rawPattern renders as-is without consulting stored rules; patternID renders
// one specific rule; with neither, the best rule for the document is
// selected. rawPattern and patternID are mutually exclusive.
func renderSuggestedName(ctx context.Context, st *store.Store, docType string, fields map[string]any, patternID, rawPattern string) (map[string]any, error) {
	if rawPattern != "" && patternID != "" {
		return nil, errors.New("pattern and pattern_id are mutually exclusive")
	}

	doc := model.DocumentInfoFromFields(fields)
	doc.DocumentType = model.ParseDocumentType(docType)

	if rawPattern != "" {
		return map[string]any{
			"pattern":        rawPattern,
			"suggested_name": pattern.Render(rawPattern, doc),
		}, nil
	}

	var rule *model.PatternRule
	var err error
	if patternID != "" {
		rule, err = st.GetPattern(ctx, patternID)
	} else {
		rule, err = st.GetBestPattern(ctx, doc)
	}
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"pattern_id":     rule.ID,
		"pattern":        rule.Pattern,
		"suggested_name": pattern.Render(rule.Pattern, doc),
	}, nil
}

func registerGetHistoryTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("get_history",
		mcp.WithDescription("Get recent rename history, most recent first. Useful for inferring the user's established naming habits."),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return (default: 20)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Limit int `json:"limit,omitempty"`
		}
		if err := unmarshalArgs(request.Params.Arguments, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if args.Limit <= 0 {
			args.Limit = 20
		}

		entries := st.History(ctx, args.Limit)
		return jsonResult(map[string]any{
			"count":   len(entries),
			"history": entries,
		})
	})
}

func registerGetStatsTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("get_stats",
		mcp.WithDescription("Get aggregate statistics: rule counts per document type, custom rule count, and total renames recorded."),
	)

	s.AddTool(tool, func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(st.Stats(ctx))
	})
}
