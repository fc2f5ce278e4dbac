package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/tmgen/internal/rules"
	"github.com/mark-chris/tmgen/internal/threat"
)

var (
	rulesCatalog string
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the threat rule catalogs",
}

var rulesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all rules",
	Long: `List the rules of the per-element and context catalogs.

Examples:
  # List all rules
  tmgen rules list

  # List only the context catalog
  tmgen rules list --catalog context --verbose`,
	RunE: runRulesList,
}

var rulesGetCmd = &cobra.Command{
	Use:   "get <rule-id>",
	Short: "Get a specific rule by ID",
	Long: `Retrieve a rule, its condition tree and its threat template.

Examples:
  # Get rule details (JSON)
  tmgen rules get eeb8d742-5213-44b2-bfc3-c454e4e03fbf

  # Get rule details (human-readable)
  tmgen rules get eeb8d742-5213-44b2-bfc3-c454e4e03fbf --verbose`,
	Args: cobra.ExactArgs(1),
	RunE: runRulesGet,
}

func init() {
	rulesListCmd.Flags().StringVar(&rulesCatalog, "catalog", "",
		"Catalog to list: per-element or context (default: both)")

	rulesCmd.AddCommand(rulesListCmd)
	rulesCmd.AddCommand(rulesGetCmd)
}

func runRulesList(cmd *cobra.Command, args []string) error {
	selected := []*rules.Catalog{catalogs.PerElement, catalogs.Context}
	if rulesCatalog != "" {
		c := catalogs.ByName(rulesCatalog)
		if c == nil {
			return fmt.Errorf("unknown catalog %q: must be %s or %s",
				rulesCatalog, rules.CatalogPerElement, rules.CatalogContext)
		}
		selected = []*rules.Catalog{c}
	}

	total := 0
	for _, c := range selected {
		total += c.Count()
	}
	if total == 0 {
		fmt.Println("No rules found")
		return nil
	}

	fmt.Printf("Found %d rule(s):\n\n", total)

	for _, c := range selected {
		for _, r := range c.Rules() {
			p := r.Event.Params
			if verbose {
				fmt.Printf("[%s] %s\n", c.Name(), p.RuleID)
				fmt.Printf("  Name:     %s\n", r.Name)
				fmt.Printf("  Title:    %s\n", p.Title)
				fmt.Printf("  Type:     %s | Model: %s\n", p.Type, p.ModelType)
				fmt.Printf("  Severity: %s | Status: %s\n", p.Severity, p.Status)
				fmt.Println()
			} else {
				fmt.Printf("%s  %-14s  %s\n", p.RuleID, fmt.Sprintf("[%s]", c.Name()), p.Title)
			}
		}
	}

	return nil
}

func runRulesGet(cmd *cobra.Command, args []string) error {
	ruleID := args[0]

	// Look up rule
	rule, catalog, err := catalogs.Get(ruleID)
	if err != nil {
		return fmt.Errorf("rule not found: %s", ruleID)
	}

	// Format output
	output, err := threat.FormatRule(rule, catalog, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
