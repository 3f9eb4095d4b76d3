package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/the-papers-must-flow/internal/cli"
	"github.com/Veraticus/the-papers-must-flow/internal/model"
)

func historyCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent renames",
		Long:  `Display recent rename history, most recent first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			entries := st.History(cmd.Context(), limit)
			if len(entries) == 0 {
				fmt.Println(cli.InfoStyle.Render("No renames recorded yet."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				headerStyle.Render("When"),
				headerStyle.Render("Original"),
				headerStyle.Render("New"),
				headerStyle.Render("Rule"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 30),
				strings.Repeat("-", 40),
				strings.Repeat("-", 20))

			for _, entry := range entries {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					entry.Timestamp.Format("2006-01-02 15:04"),
					entry.OriginalName,
					entry.NewName,
					entry.PatternID)
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")

	return cmd
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show pattern and rename statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			stats := st.Stats(cmd.Context())

			fmt.Println(cli.FormatTitle("Pattern statistics"))
			fmt.Printf("  Patterns: %d (%d custom)\n", stats.TotalPatterns, stats.CustomPatterns)
			fmt.Printf("  Renames:  %d\n\n", stats.TotalRenames)

			types := make([]string, 0, len(stats.ByType))
			for docType := range stats.ByType {
				types = append(types, docType)
			}
			sort.Strings(types)

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Type"),
				headerStyle.Render("Patterns"),
				headerStyle.Render("Uses"))
			for _, docType := range types {
				ts := stats.ByType[docType]
				fmt.Fprintf(w, "%s\t%d\t%d\n", docType, ts.Patterns, ts.Uses)
			}

			return nil
		},
	}
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List supported document types",
		Long:  `Display every supported document type with its description and identifying keywords.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Type"),
				headerStyle.Render("Name"),
				headerStyle.Render("Keywords"))
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				strings.Repeat("-", 16),
				strings.Repeat("-", 20),
				strings.Repeat("-", 50))

			for _, spec := range model.DocumentTypeCatalog() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", spec.Type, spec.Name, strings.Join(spec.Keywords, ", "))
			}

			return nil
		},
	}
}
