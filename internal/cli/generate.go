package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/tmgen/internal/threat"
)

var (
	generateElement     string
	generateMethodology string
	generateMode        string
	generateAgent       bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate threats for a single diagram element",
	Long: `Generate candidate threats for one diagram element.

The element is read from a JSON or YAML file ("-" reads stdin). In context
mode the element's properties (isPublicNetwork, isEncrypted, ...) select the
threats; in per-element mode only the element type and methodology matter.
Unknown methodologies fall back to MRTM.

Examples:
  # Context threats in STRIDE vocabulary
  tmgen generate --element flow.json --methodology STRIDE

  # Generic LINDDUN threats for a store
  tmgen generate --element store.yaml --methodology LINDDUN --mode per-element

  # Token-limited output for AI agents
  cat flow.json | tmgen generate --element - --agent`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVarP(&generateElement, "element", "e", "",
		"Element file (JSON or YAML), or - for stdin")
	generateCmd.Flags().StringVarP(&generateMethodology, "methodology", "m", "",
		"Methodology: STRIDE, LINDDUN, CIA or MRTM (default from config)")
	generateCmd.Flags().StringVar(&generateMode, "mode", "",
		"Generation mode: per-element or context (default from config)")
	generateCmd.Flags().BoolVar(&generateAgent, "agent", false,
		"Token-limited output for AI agents")
	_ = generateCmd.MarkFlagRequired("element")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	el, err := readElement(cmd.InOrStdin(), generateElement)
	if err != nil {
		return err
	}

	mode, err := modeOrDefault(generateMode)
	if err != nil {
		return err
	}
	methodology := methodologyOrDefault(generateMethodology)

	threats, err := generator.Generate(commandContext(cmd), el, methodology, mode)
	if err != nil {
		return err
	}

	var output string
	if generateAgent {
		resp := threat.BuildAgentResponse(threats, threat.ResolveMethodology(methodology), 0, agentTokenCounter(logger))
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		output = string(data)
	} else {
		output, err = threat.FormatThreats(threats, getFormat())
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
	}

	fmt.Println(output)
	return nil
}

// newTokenCounter is replaced in tests
var newTokenCounter = threat.NewTokenCounter

// agentTokenCounter loads the token encoder, warning when counts will be
// approximate
func agentTokenCounter(log *zap.Logger) *threat.TokenCounter {
	counter, err := newTokenCounter()
	if err != nil {
		log.Warn("token encoder unavailable, using approximation", zap.Error(err))
	}
	return counter
}

// readElement loads an element from path, or from stdin when path is "-"
func readElement(stdin io.Reader, path string) (*threat.Element, error) {
	if path != "-" {
		return threat.LoadElement(path)
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return threat.DecodeElement(data)
}

