package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/the-papers-must-flow/internal/cli"
	"github.com/Veraticus/the-papers-must-flow/internal/scan"
)

func scanCmd() *cobra.Command {
	var (
		glob       string
		extensions string
		recursive  bool
		noIndex    bool
	)

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "List candidate documents in a directory",
		Long:  `Scan a directory for documents, showing size, MIME type, and page counts for PDFs. Results are cached in a persistent index so unchanged files are not re-inspected.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var ix *scan.Index
			if !noIndex {
				var err error
				ix, err = openScanIndex(ctx)
				if err != nil {
					return fmt.Errorf("failed to open scan index: %w", err)
				}
				defer ix.Close()
			}

			files, err := scan.List(ctx, args[0], scan.Options{
				Glob:       glob,
				Extensions: splitCSV(extensions),
				Recursive:  recursive,
			}, ix)
			if err != nil {
				return err
			}

			if len(files) == 0 {
				fmt.Println(cli.InfoStyle.Render("No matching files found."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("Name"),
				headerStyle.Render("Size"),
				headerStyle.Render("Type"),
				headerStyle.Render("Pages"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 40),
				strings.Repeat("-", 10),
				strings.Repeat("-", 24),
				strings.Repeat("-", 5))

			for _, f := range files {
				pages := ""
				if f.Pages > 0 {
					pages = fmt.Sprintf("%d", f.Pages)
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Name, formatSize(f.Size), f.MimeType, pages)
			}

			fmt.Fprintf(os.Stderr, "\n%d files\n", len(files))
			return nil
		},
	}

	cmd.Flags().StringVar(&glob, "glob", "", "Doublestar glob filter relative to the directory, e.g. **/*.pdf")
	cmd.Flags().StringVar(&extensions, "ext", "", "Comma-separated extension filter, e.g. pdf,jpg")
	cmd.Flags().BoolVar(&recursive, "recursive", false, "Descend into subdirectories")
	cmd.Flags().BoolVar(&noIndex, "no-index", false, "Skip the persistent scan index")

	return cmd
}

func formatSize(size int64) string {
	const unit = 1024
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}
