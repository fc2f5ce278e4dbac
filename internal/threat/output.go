package threat

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/mark-chris/tmgen/internal/rules"
)

// OutputFormat specifies the output format
type OutputFormat string

// Output format constants.
const (
	FormatJSON OutputFormat = "json"
	FormatText OutputFormat = "text"
)

var (
	headerColor = color.New(color.FgBlue, color.Bold)
	typeColor   = color.New(color.FgYellow)
	idColor     = color.New(color.FgCyan)
)

// FormatThreats formats a threat list for display
func FormatThreats(threats []Threat, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return formatThreatsText(threats), nil
	default:
		if threats == nil {
			threats = []Threat{}
		}
		return formatJSON(threats)
	}
}

// FormatDiagram formats batch results for display
func FormatDiagram(results []ElementThreats, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		var sb strings.Builder
		for _, r := range results {
			label := r.ElementName
			if label == "" {
				label = r.ElementID
			}
			sb.WriteString(headerColor.Sprintf("%s %s\n", r.ElementType, label))
			sb.WriteString(strings.Repeat("=", 50) + "\n")
			sb.WriteString(formatThreatsText(r.Threats))
			sb.WriteString("\n")
		}
		return sb.String(), nil
	default:
		if results == nil {
			results = []ElementThreats{}
		}
		return formatJSON(results)
	}
}

// FormatRule formats a single catalog rule for detailed display
func FormatRule(r rules.Rule, catalog string, format OutputFormat) (string, error) {
	if format != FormatText {
		return formatJSON(struct {
			Catalog string `json:"catalog"`
			rules.Rule
		}{catalog, r})
	}

	p := r.Event.Params
	var sb strings.Builder
	sb.WriteString(headerColor.Sprintf("%s: %s\n", p.RuleID, p.Title))
	sb.WriteString(fmt.Sprintf("Catalog: %s | Type: %s | Model: %s\n", catalog, p.Type, p.ModelType))
	sb.WriteString(strings.Repeat("=", 60) + "\n\n")

	sb.WriteString("CONDITIONS\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	writeCondition(&sb, r.Conditions, 0)
	sb.WriteString("\n")

	sb.WriteString("DESCRIPTION\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(strings.TrimSpace(p.Description) + "\n\n")

	sb.WriteString("MITIGATION\n")
	sb.WriteString(strings.Repeat("-", 40) + "\n")
	sb.WriteString(strings.TrimSpace(p.Mitigation) + "\n")

	return sb.String(), nil
}

func formatJSON(v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatThreatsText(threats []Threat) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Generated %d threat(s)\n", len(threats)))
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	for i, t := range threats {
		sb.WriteString(fmt.Sprintf("[%d] %s (%s, %s)\n", i+1, t.Title,
			typeColor.Sprint(t.Type), t.ModelType))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		sb.WriteString(fmt.Sprintf("RULE:       %s\n", idColor.Sprint(t.RuleID)))
		sb.WriteString(fmt.Sprintf("STATUS:     %s | SEVERITY: %s\n", t.Status, t.Severity))
		sb.WriteString(fmt.Sprintf("THREAT:     %s\n", indentContinuation(t.Description)))
		sb.WriteString(fmt.Sprintf("MITIGATION: %s\n\n", indentContinuation(t.Mitigation)))
	}

	return sb.String()
}

func writeCondition(sb *strings.Builder, c *rules.Condition, depth int) {
	if c == nil {
		return
	}
	pad := strings.Repeat("  ", depth)
	if c.IsLeaf() {
		value := "undefined"
		if c.Value != nil {
			value = fmt.Sprintf("%v", c.Value)
			if s, ok := c.Value.(string); ok {
				value = fmt.Sprintf("%q", s)
			}
		}
		sb.WriteString(fmt.Sprintf("%s%s %s %s\n", pad, c.Fact, c.Operator, value))
		return
	}
	if c.All != nil {
		sb.WriteString(pad + "all of:\n")
		for _, child := range c.All {
			writeCondition(sb, child, depth+1)
		}
		return
	}
	sb.WriteString(pad + "any of:\n")
	for _, child := range c.Any {
		writeCondition(sb, child, depth+1)
	}
}

func indentContinuation(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n            ")
}
