package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Veraticus/the-papers-must-flow/internal/cli"
	"github.com/Veraticus/the-papers-must-flow/internal/model"
	"github.com/Veraticus/the-papers-must-flow/internal/store"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Manage naming pattern rules",
		Long:  `List, inspect, add, edit, delete, and learn naming pattern rules used to suggest filenames.`,
	}

	cmd.AddCommand(listPatternsCmd())
	cmd.AddCommand(showPatternCmd())
	cmd.AddCommand(addPatternCmd())
	cmd.AddCommand(editPatternCmd())
	cmd.AddCommand(deletePatternCmd())
	cmd.AddCommand(learnPatternCmd())

	return cmd
}

func listPatternsCmd() *cobra.Command {
	var docType string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pattern rules",
		Long:  `Display pattern rules, optionally filtered to one document type.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			st, err := openStore()
			if err != nil {
				return err
			}

			var rules []model.PatternRule
			if docType != "" {
				rules = st.PatternsForType(ctx, model.ParseDocumentType(docType))
			} else {
				rules = st.AllPatterns(ctx)
			}

			if len(rules) == 0 {
				fmt.Println(cli.InfoStyle.Render("No patterns found. Use 'papers patterns add' to create one."))
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			defer w.Flush()

			headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				headerStyle.Render("ID"),
				headerStyle.Render("Type"),
				headerStyle.Render("Pattern"),
				headerStyle.Render("Priority"),
				headerStyle.Render("Uses"),
				headerStyle.Render("Custom"))
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				strings.Repeat("-", 20),
				strings.Repeat("-", 14),
				strings.Repeat("-", 40),
				strings.Repeat("-", 8),
				strings.Repeat("-", 5),
				strings.Repeat("-", 6))

			for _, rule := range rules {
				custom := ""
				if rule.IsCustom {
					custom = cli.SuccessIcon
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
					rule.ID, rule.DocumentType, rule.Pattern, rule.Priority, rule.UseCount, custom)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "Filter to one document type")

	return cmd
}

func showPatternCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one pattern rule in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			rule, err := st.GetPattern(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get pattern: %w", err)
			}

			fmt.Println(cli.FormatTitle(rule.ID))
			fmt.Printf("  Name:         %s\n", rule.Name)
			fmt.Printf("  Type:         %s\n", rule.DocumentType)
			fmt.Printf("  Pattern:      %s\n", rule.Pattern)
			fmt.Printf("  Priority:     %d\n", rule.Priority)
			fmt.Printf("  Uses:         %d\n", rule.UseCount)
			fmt.Printf("  Custom:       %t\n", rule.IsCustom)
			if rule.Description != "" {
				fmt.Printf("  Description:  %s\n", rule.Description)
			}
			if len(rule.MatchKeywords) > 0 {
				fmt.Printf("  Keywords:     %s\n", strings.Join(rule.MatchKeywords, ", "))
			}
			if len(rule.MatchInstitutions) > 0 {
				fmt.Printf("  Institutions: %s\n", strings.Join(rule.MatchInstitutions, ", "))
			}
			if rule.LastUsed != nil {
				fmt.Printf("  Last used:    %s\n", rule.LastUsed.Format("2006-01-02 15:04"))
			}

			return nil
		},
	}
}

func addPatternCmd() *cobra.Command {
	var (
		docType      string
		template     string
		name         string
		description  string
		keywords     string
		institutions string
		priority     int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom pattern rule",
		Long:  `Create a custom naming rule. Templates use {Token} placeholders, e.g. "{Date} - {Merchant} - {Amount}".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			np := store.NewPattern{
				DocumentType:      model.ParseDocumentType(docType),
				Pattern:           template,
				Name:              name,
				Description:       description,
				MatchKeywords:     splitCSV(keywords),
				MatchInstitutions: splitCSV(institutions),
			}
			if cmd.Flags().Changed("priority") {
				np.Priority = &priority
			}

			rule, err := st.AddPattern(cmd.Context(), np)
			if err != nil {
				return fmt.Errorf("failed to add pattern: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Created pattern %q", rule.ID)))
			fmt.Printf("  Pattern: %s\n", rule.Pattern)
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "Document type the rule applies to")
	cmd.Flags().StringVar(&template, "pattern", "", "Naming template with {Token} placeholders")
	cmd.Flags().StringVar(&name, "name", "", "Human-readable rule name")
	cmd.Flags().StringVar(&description, "description", "", "What the rule is for")
	cmd.Flags().StringVar(&keywords, "keywords", "", "Comma-separated keywords that select this rule")
	cmd.Flags().StringVar(&institutions, "institutions", "", "Comma-separated institutions that select this rule")
	cmd.Flags().IntVar(&priority, "priority", 5, "Selection priority")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("pattern")

	return cmd
}

func editPatternCmd() *cobra.Command {
	var (
		template     string
		name         string
		description  string
		keywords     string
		institutions string
		priority     int
	)

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an existing pattern rule",
		Long:  `Update fields of an existing rule. Flags that are not set leave the field unchanged.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			var update store.PatternUpdate
			if cmd.Flags().Changed("pattern") {
				update.Pattern = &template
			}
			if cmd.Flags().Changed("name") {
				update.Name = &name
			}
			if cmd.Flags().Changed("description") {
				update.Description = &description
			}
			if cmd.Flags().Changed("priority") {
				update.Priority = &priority
			}
			if cmd.Flags().Changed("keywords") {
				update.MatchKeywords = splitCSV(keywords)
			}
			if cmd.Flags().Changed("institutions") {
				update.MatchInstitutions = splitCSV(institutions)
			}

			rule, err := st.UpdatePattern(cmd.Context(), args[0], update)
			if err != nil {
				return fmt.Errorf("failed to update pattern: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated pattern %q", rule.ID)))
			return nil
		},
	}

	cmd.Flags().StringVar(&template, "pattern", "", "New naming template")
	cmd.Flags().StringVar(&name, "name", "", "New rule name")
	cmd.Flags().StringVar(&description, "description", "", "New description")
	cmd.Flags().StringVar(&keywords, "keywords", "", "Comma-separated replacement keyword list")
	cmd.Flags().StringVar(&institutions, "institutions", "", "Comma-separated replacement institution list")
	cmd.Flags().IntVar(&priority, "priority", 0, "New selection priority")

	return cmd
}

func deletePatternCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a custom pattern rule",
		Long:  `Delete a custom rule. Built-in default rules cannot be deleted.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			st, err := openStore()
			if err != nil {
				return err
			}

			// Confirm deletion
			if !force {
				fmt.Printf("Are you sure you want to delete pattern %q? (y/N): ", id)
				var response string
				fmt.Scanln(&response)
				if strings.ToLower(response) != "y" {
					fmt.Println("Deletion cancelled.")
					return nil
				}
			}

			if err := st.DeletePattern(cmd.Context(), id); err != nil {
				if errors.Is(err, store.ErrDefaultPattern) {
					return fmt.Errorf("pattern %q is a built-in default and cannot be deleted", id)
				}
				return fmt.Errorf("failed to delete pattern: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Deleted pattern %q", id)))
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Skip confirmation prompt")

	return cmd
}

func learnPatternCmd() *cobra.Command {
	var (
		docType     string
		template    string
		institution string
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Learn a naming preference",
		Long:  `Remember that documents of a type from an institution should use a template. An existing rule for the institution is updated in place; otherwise a new high-priority rule is created.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			st, err := openStore()
			if err != nil {
				return err
			}

			rule, err := st.LearnFromBatch(cmd.Context(), model.ParseDocumentType(docType), template, institution)
			if err != nil {
				return fmt.Errorf("failed to learn pattern: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Learned pattern %q for %s", rule.ID, institution)))
			fmt.Printf("  Pattern: %s\n", rule.Pattern)
			return nil
		},
	}

	cmd.Flags().StringVar(&docType, "type", "", "Document type the preference applies to")
	cmd.Flags().StringVar(&template, "pattern", "", "Naming template the user confirmed")
	cmd.Flags().StringVar(&institution, "institution", "", "Institution the documents came from")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("institution")

	return cmd
}
