package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mark-chris/tmgen/internal/rules"
)

var (
	validateAll bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [rule-id]",
	Short: "Validate threat rule catalogs",
	Long: `Validate threat rules against the catalog requirements.

Checks rule ids, required template fields, condition tree shape and
operators, and duplicate ids within and across catalogs.

Examples:
  # Validate all rules
  tmgen validate --all

  # Validate rules from a directory
  tmgen validate --all --rules ./my-rules

  # Validate a specific rule
  tmgen validate eeb8d742-5213-44b2-bfc3-c454e4e03fbf`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false,
		"Validate all rules in both catalogs")
}

func runValidate(cmd *cobra.Command, args []string) error {
	results, err := validationResults(args)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		fmt.Println("No rules found to validate")
		return nil
	}

	if printValidation(results) {
		os.Exit(1)
	}

	return nil
}

// validationResults validates the selected rule, or every rule
func validationResults(args []string) ([]rules.ValidationResult, error) {
	if len(args) > 0 && !validateAll {
		ruleID := args[0]
		rule, _, err := catalogs.Get(ruleID)
		if err != nil {
			return nil, fmt.Errorf("rule not found: %s", ruleID)
		}
		return []rules.ValidationResult{rules.Validate(rule)}, nil
	}

	return rules.ValidateCatalogs(catalogs), nil
}

// printValidation prints results and reports whether any rule is invalid
func printValidation(results []rules.ValidationResult) bool {
	hasErrors := false
	totalErrors := 0
	totalWarnings := 0

	for _, result := range results {
		totalErrors += len(result.Errors)
		totalWarnings += len(result.Warnings)

		if !result.IsValid {
			hasErrors = true
		}

		// Print results for each rule
		if len(result.Errors) > 0 || len(result.Warnings) > 0 || verbose {
			status := "✓"
			if !result.IsValid {
				status = "✗"
			}
			fmt.Printf("%s %s %s\n", status, result.RuleID, result.Name)

			for _, err := range result.Errors {
				fmt.Printf("  ERROR: %s - %s\n", err.Field, err.Message)
			}
			for _, warn := range result.Warnings {
				fmt.Printf("  WARN:  %s - %s\n", warn.Field, warn.Message)
			}
			if len(result.Errors) > 0 || len(result.Warnings) > 0 {
				fmt.Println()
			}
		}
	}

	// Summary
	fmt.Printf("\nValidated %d rule(s): %d error(s), %d warning(s)\n",
		len(results), totalErrors, totalWarnings)

	return hasErrors
}
