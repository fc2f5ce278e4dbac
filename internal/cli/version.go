package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/tmgen/internal/rules"
	"github.com/mark-chris/tmgen/internal/threat"
)

var (
	// Version is set at build time
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and built-in catalog information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tmgen version %s\n", Version)
		if !verbose {
			return
		}

		builtin := rules.DefaultCatalogs()
		fmt.Printf("  Git commit:    %s\n", GitCommit)
		fmt.Printf("  Build date:    %s\n", BuildDate)
		fmt.Printf("  Methodologies: %v\n", threat.Methodologies())
		fmt.Printf("  Built-in rules: %d per-element, %d context\n",
			builtin.PerElement.Count(), builtin.Context.Count())
	},
}
