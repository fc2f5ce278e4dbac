package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mark-chris/tmgen/internal/config"
	"github.com/mark-chris/tmgen/internal/logging"
	"github.com/mark-chris/tmgen/internal/metrics"
	"github.com/mark-chris/tmgen/internal/rules"
	"github.com/mark-chris/tmgen/internal/threat"
)

var (
	// Global flags
	rulesDir     string
	outputFormat string
	verbose      bool
	configFile   string

	// Shared resources
	cfg       *config.Config
	logger    *zap.Logger
	catalogs  *rules.Catalogs
	recorder  *metrics.Recorder
	generator *threat.Generator
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "tmgen",
	Short: "Threat model threat generator",
	Long: `tmgen - Candidate threat generation for threat model diagrams.

Evaluates declarative rule catalogs against a diagram element and returns
threat descriptors named in the vocabulary of the chosen methodology
(STRIDE, LINDDUN, CIA or MRTM).

Examples:
  # Context-driven threats for an element
  tmgen generate --element flow.json --methodology STRIDE

  # Generic per-element threats
  tmgen generate --element actor.yaml --mode per-element --methodology CIA

  # Threats for every element of a diagram
  tmgen diagram --file diagram.yaml

  # Inspect the rule catalogs
  tmgen rules list --catalog context

  # Start MCP server
  tmgen serve --metrics-addr :9090`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "version" {
			return nil
		}

		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return err
		}

		// Flags override config
		if !cmd.Flags().Changed("format") {
			outputFormat = cfg.Format
		}
		if rulesDir == "" {
			rulesDir = cfg.RulesDir
		}

		logger, err = logging.New(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}

		if rulesDir != "" {
			catalogs, err = rules.NewLoader(rulesDir).LoadAll()
			if err != nil {
				return fmt.Errorf("failed to load rules: %w", err)
			}
			logger.Debug("loaded rule catalogs", zap.String("dir", rulesDir))
		} else {
			catalogs = rules.DefaultCatalogs()
		}

		recorder = metrics.NewRecorder()
		generator = threat.NewGenerator(
			threat.WithCatalogs(catalogs),
			threat.WithLogger(logger),
			threat.WithObserver(recorder),
			threat.WithConcurrency(cfg.Concurrency),
		)

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&rulesDir, "rules", "r", "",
		"Directory containing per_element.yaml and by_context.yaml (default: built-in catalogs)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json",
		"Output format: json or text")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Human-readable verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "",
		"Config file (default: ./tmgen.yaml or ~/.tmgen/tmgen.yaml)")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(diagramCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// getFormat returns the output format based on flags
func getFormat() threat.OutputFormat {
	if outputFormat == "text" || verbose {
		return threat.FormatText
	}
	return threat.FormatJSON
}

// methodologyOrDefault returns the requested methodology, or the configured
// one when the flag was not given
func methodologyOrDefault(requested string) string {
	if requested != "" || cfg == nil {
		return requested
	}
	return cfg.Methodology
}

// modeOrDefault parses the requested mode, falling back to the configured one
func modeOrDefault(requested string) (threat.Mode, error) {
	if requested == "" && cfg != nil {
		requested = cfg.Mode
	}
	mode, ok := threat.ParseMode(requested)
	if !ok {
		return "", fmt.Errorf("invalid mode %q: must be per-element or context", requested)
	}
	return mode, nil
}

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
