package mcp

import (
	"fmt"
	"strings"

	"github.com/mark-chris/tmgen/internal/threat"
)

// Parameters accepted by each tool
var (
	generateParams = []string{"element", "methodology", "mode", "verbosity"}
	getRuleParams  = []string{"rule_id"}
)

// validateMode validates the mode parameter
func validateMode(mode string) error {
	if mode == "" {
		return nil // Optional field
	}

	if _, ok := threat.ParseMode(mode); !ok {
		return fmt.Errorf("Invalid mode '%s'. Supported modes: per-element, context", mode)
	}
	return nil
}

// validateVerbosity validates the verbosity parameter
func validateVerbosity(verbosity string) error {
	if verbosity == "" {
		return nil // Optional field
	}

	validVerbosity := []string{"agent", "human"}
	for _, valid := range validVerbosity {
		if verbosity == valid {
			return nil
		}
	}

	return fmt.Errorf("Invalid verbosity '%s'. Supported values: agent, human", verbosity)
}

// validateRuleID validates the rule_id parameter
func validateRuleID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("rule_id must be non-empty")
	}
	return nil
}

// validateNoUnknownParams checks for unknown parameters
func validateNoUnknownParams(args map[string]any, allowed []string) error {
	allowedMap := make(map[string]bool)
	for _, key := range allowed {
		allowedMap[key] = true
	}

	for key := range args {
		if !allowedMap[key] {
			return fmt.Errorf("Unknown parameter '%s'. Supported parameters: %s", key, strings.Join(allowed, ", "))
		}
	}

	return nil
}
