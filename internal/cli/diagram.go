package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mark-chris/tmgen/internal/threat"
)

var (
	diagramFile string
	diagramMode string
)

var diagramCmd = &cobra.Command{
	Use:   "diagram",
	Short: "Generate threats for every element of a diagram",
	Long: `Generate candidate threats for all elements of a diagram file.

The diagram's diagramType is used as the methodology for every element.
Elements are processed concurrently; output keeps the diagram's order.

Examples:
  # Context threats for a whole diagram
  tmgen diagram --file model.yaml

  # Human-readable per-element threats
  tmgen diagram --file model.json --mode per-element --verbose`,
	RunE: runDiagram,
}

func init() {
	diagramCmd.Flags().StringVar(&diagramFile, "file", "",
		"Diagram file (JSON or YAML)")
	diagramCmd.Flags().StringVar(&diagramMode, "mode", "",
		"Generation mode: per-element or context (default from config)")
	_ = diagramCmd.MarkFlagRequired("file")
}

func runDiagram(cmd *cobra.Command, args []string) error {
	d, err := threat.LoadDiagram(diagramFile)
	if err != nil {
		return err
	}

	mode, err := modeOrDefault(diagramMode)
	if err != nil {
		return err
	}

	results, err := generator.GenerateDiagram(commandContext(cmd), d, mode)
	if err != nil {
		return err
	}

	output, err := threat.FormatDiagram(results, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}
