package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Veraticus/the-papers-must-flow/internal/cli"
	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/pattern"
	"github.com/Veraticus/the-papers-must-flow/internal/rename"
)

func renderCmd() *cobra.Command {
	var (
		docType    string
		fields     []string
		patternID  string
		rawPattern string
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a suggested filename",
		Long: `Select the best matching rule for a document and fill in its template.
Pass --pattern to try a raw template instead of a stored rule.

Example:
  papers render --type receipt --field date=2024-03-15 --field merchant="Whole Foods" --field amount='$42.10'`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, err := openStore()
			if err != nil {
				return err
			}

			doc, err := docFromFlags(docType, fields)
			if err != nil {
				return err
			}

			if rawPattern != "" {
				fmt.Printf("%s %s\n", cli.BoldStyle.Render("Suggested:"), pattern.Render(rawPattern, doc))
				fmt.Println(cli.SubtleStyle.Render("  template: " + rawPattern))
				return nil
			}

			var rule *model.PatternRule
			if patternID != "" {
				rule, err = st.GetPattern(ctx, patternID)
			} else {
				rule, err = st.GetBestPattern(ctx, doc)
			}
			if err != nil {
				return fmt.Errorf("failed to select pattern: %w", err)
			}

			fmt.Printf("%s %s\n", cli.BoldStyle.Render("Suggested:"), pattern.Render(rule.Pattern, doc))
			fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("  rule %s: %s", rule.ID, rule.Pattern)))
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "Document type, e.g. receipt, tax_document")
	cmd.Flags().StringArrayVar(&fields, "field", nil, "Extracted field as key=value (repeatable)")
	cmd.Flags().StringVar(&patternID, "pattern-id", "", "Render this specific rule instead of auto-selecting")
	cmd.Flags().StringVar(&rawPattern, "pattern", "", "Render this raw template instead of a stored rule")
	cmd.MarkFlagsMutuallyExclusive("pattern", "pattern-id")
	_ = cmd.MarkFlagRequired("type")

	return cmd
}

func previewCmd() *cobra.Command {
	var dest string

	cmd := &cobra.Command{
		Use:   "preview <file> <new-name>",
		Short: "Preview a rename without touching the filesystem",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, _, err := openExecutor()
			if err != nil {
				return err
			}

			preview, err := ex.Preview(rename.Request{
				FilePath:       args[0],
				NewName:        args[1],
				DestinationDir: dest,
			})
			if err != nil {
				return fmt.Errorf("failed to preview rename: %w", err)
			}

			fmt.Printf("%s %s\n", cli.BoldStyle.Render("From:"), preview.OriginalPath)
			fmt.Printf("%s %s\n", cli.BoldStyle.Render("To:  "), preview.NewPath)
			if preview.HasConflict {
				fmt.Println(cli.WarningStyle.Render("  name was taken; a numbered suffix will be used"))
			}
			if preview.WillMove {
				fmt.Println(cli.SubtleStyle.Render("  file will be moved to a different directory"))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Move the file here instead of renaming in place")

	return cmd
}

func renameCmd() *cobra.Command {
	var (
		dest      string
		patternID string
		docType   string
	)

	cmd := &cobra.Command{
		Use:   "rename <file> <new-name>",
		Short: "Rename (and optionally move) a single file",
		Long:  `Rename a file to a sanitized version of the given name, keeping its extension. Conflicting names get a numbered suffix. Pass --pattern-id so the rule's usage statistics and the rename history are updated.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, _, err := openExecutor()
			if err != nil {
				return err
			}

			result, err := ex.Apply(cmd.Context(), rename.Request{
				FilePath:       args[0],
				NewName:        args[1],
				DestinationDir: dest,
			}, patternID, model.ParseDocumentType(docType))
			if err != nil {
				return fmt.Errorf("failed to rename: %w", err)
			}
			if !result.Success {
				return fmt.Errorf("failed to rename: %s", result.Error)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s → %s", result.OriginalName, result.NewName)))
			if result.WasMoved {
				fmt.Println(cli.SubtleStyle.Render("  moved to " + result.NewPath))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Move the file here instead of renaming in place")
	cmd.Flags().StringVar(&patternID, "pattern-id", "", "Rule that produced the name; records usage and history")
	cmd.Flags().StringVar(&docType, "type", "", "Document type for the history entry")

	return cmd
}

// batchManifestEntry is one line item of a batch manifest file.
type batchManifestEntry struct {
	FilePath       string `json:"file_path"`
	NewName        string `json:"new_name"`
	DestinationDir string `json:"destination_dir,omitempty"`
}

func batchCmd() *cobra.Command {
	var (
		dest      string
		patternID string
		docType   string
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "batch <manifest.json>",
		Short: "Rename many files from a JSON manifest",
		Long: `Rename every file listed in a JSON manifest. Entries are independent;
one failure does not stop the rest.

The manifest is a JSON array of objects:
  [{"file_path": "/in/Scan0001.pdf", "new_name": "2024-03-15 - Whole Foods - $42.10"}]`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ex, _, err := openExecutor()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read manifest: %w", err)
			}
			var entries []batchManifestEntry
			if err := json.Unmarshal(data, &entries); err != nil {
				return fmt.Errorf("failed to parse manifest: %w", err)
			}
			if len(entries) == 0 {
				return fmt.Errorf("manifest %s contains no entries", args[0])
			}

			requests := make([]rename.Request, 0, len(entries))
			for _, entry := range entries {
				requests = append(requests, rename.Request{
					FilePath:       entry.FilePath,
					NewName:        entry.NewName,
					DestinationDir: entry.DestinationDir,
				})
			}

			description := "[cyan][bold]Renaming documents...[reset]"
			if dryRun {
				description = "[cyan][bold]Previewing renames...[reset]"
			}
			bar := progressbar.NewOptions(len(requests),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription(description),
			)

			summary := &rename.BatchSummary{DryRun: dryRun}
			for _, req := range requests {
				batch := ex.ApplyBatch(cmd.Context(), []rename.Request{req}, rename.BatchOptions{
					DestinationDir: dest,
					PatternID:      patternID,
					DocumentType:   model.ParseDocumentType(docType),
					DryRun:         dryRun,
				})
				summary.Results = append(summary.Results, batch.Results...)
				summary.Total += batch.Total
				summary.SuccessCount += batch.SuccessCount
				summary.FailureCount += batch.FailureCount
				if err := bar.Add(1); err != nil {
					slog.Warn("failed to advance progress bar", "error", err)
				}
			}
			fmt.Fprintln(os.Stderr)

			for _, result := range summary.Results {
				if result.Success {
					fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s → %s", result.OriginalName, result.NewName)))
				} else {
					fmt.Println(cli.FormatError(fmt.Sprintf("%s: %s", result.OriginalPath, result.Error)))
				}
			}

			verb := "renamed"
			if dryRun {
				verb = "would rename"
			}
			fmt.Printf("\n%s\n", cli.BoldStyle.Render(
				fmt.Sprintf("%s %d of %d files (%d failed)", verb, summary.SuccessCount, summary.Total, summary.FailureCount)))

			if summary.FailureCount > 0 {
				return fmt.Errorf("%d of %d renames failed", summary.FailureCount, summary.Total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dest, "dest", "", "Shared destination for entries that do not set their own")
	cmd.Flags().StringVar(&patternID, "pattern-id", "", "Rule that produced the names; records usage and history")
	cmd.Flags().StringVar(&docType, "type", "", "Document type for the history entries")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview only; do not modify the filesystem")

	return cmd
}
