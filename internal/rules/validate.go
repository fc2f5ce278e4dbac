package rules

import (
	"fmt"

	"github.com/google/uuid"
)

// ValidationError represents a single validation finding on a rule
type ValidationError struct {
	RuleID   string
	Field    string
	Message  string
	Severity string // "error" or "warning"
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s - %s", e.Severity, e.RuleID, e.Field, e.Message)
}

// ValidationResult holds all validation findings for a rule
type ValidationResult struct {
	RuleID   string
	Name     string
	IsValid  bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// Validate validates a single rule
func Validate(r Rule) ValidationResult {
	p := r.Event.Params
	result := ValidationResult{
		RuleID:   p.RuleID,
		Name:     r.Name,
		IsValid:  true,
		Errors:   make([]ValidationError, 0),
		Warnings: make([]ValidationError, 0),
	}

	// Identity
	result.checkRequired(p.RuleID, "event.params.ruleId", p.RuleID)
	if p.RuleID != "" {
		if _, err := uuid.Parse(p.RuleID); err != nil {
			result.addError(p.RuleID, "event.params.ruleId", "must be a UUID")
		}
	}
	if r.Event.Type != p.RuleID {
		result.addError(p.RuleID, "event.type", "must equal event.params.ruleId")
	}

	// Payload
	result.checkRequired(p.RuleID, "event.params.title", p.Title)
	result.checkRequired(p.RuleID, "event.params.type", p.Type)
	result.checkRequired(p.RuleID, "event.params.modelType", p.ModelType)
	result.checkRequired(p.RuleID, "event.params.status", p.Status)
	result.checkRequired(p.RuleID, "event.params.severity", p.Severity)

	if p.Status != "" && p.Status != "Open" {
		result.addWarning(p.RuleID, "event.params.status", "new threats are normally Open")
	}
	if p.Severity != "" && p.Severity != "Medium" {
		result.addWarning(p.RuleID, "event.params.severity", "new threats are normally Medium")
	}
	if p.Description == "" {
		result.addWarning(p.RuleID, "event.params.description", "recommended")
	}
	if p.Mitigation == "" {
		result.addWarning(p.RuleID, "event.params.mitigation", "recommended")
	}

	// Condition tree
	if r.Conditions == nil {
		result.addError(p.RuleID, "conditions", "required")
	} else {
		result.validateCondition(p.RuleID, "conditions", r.Conditions)
	}

	return result
}

func (r *ValidationResult) validateCondition(ruleID, path string, c *Condition) {
	if c == nil {
		r.addError(ruleID, path, "empty condition node")
		return
	}

	isGroup := c.All != nil || c.Any != nil
	switch {
	case c.IsLeaf() && isGroup:
		r.addError(ruleID, path, "node must be either a fact predicate or an all/any group")
		return
	case c.All != nil && c.Any != nil:
		r.addError(ruleID, path, "node must not have both all and any")
		return
	case !c.IsLeaf() && !isGroup:
		r.addError(ruleID, path, "node has neither fact nor all/any")
		return
	}

	if c.IsLeaf() {
		if c.Operator != OpEqual && c.Operator != OpNotEqual {
			r.addError(ruleID, path+".operator", fmt.Sprintf("unsupported operator %q", c.Operator))
		}
		switch c.Value.(type) {
		case nil, bool, string:
		default:
			r.addError(ruleID, path+".value", fmt.Sprintf("unsupported value type %T", c.Value))
		}
		return
	}

	if len(c.All) == 0 && len(c.Any) == 0 {
		r.addWarning(ruleID, path, "empty group")
	}
	for i, child := range c.All {
		r.validateCondition(ruleID, fmt.Sprintf("%s.all[%d]", path, i), child)
	}
	for i, child := range c.Any {
		r.validateCondition(ruleID, fmt.Sprintf("%s.any[%d]", path, i), child)
	}
}

func (r *ValidationResult) checkRequired(ruleID, field, value string) {
	if value == "" {
		r.addError(ruleID, field, "required field is empty")
	}
}

func (r *ValidationResult) addError(ruleID, field, message string) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationError{
		RuleID:   ruleID,
		Field:    field,
		Message:  message,
		Severity: "error",
	})
}

func (r *ValidationResult) addWarning(ruleID, field, message string) {
	r.Warnings = append(r.Warnings, ValidationError{
		RuleID:   ruleID,
		Field:    field,
		Message:  message,
		Severity: "warning",
	})
}

// ValidateAll validates every rule and flags rule ids used more than once
func ValidateAll(rules []Rule) []ValidationResult {
	results := make([]ValidationResult, 0, len(rules))
	seen := make(map[string]bool, len(rules))

	for _, r := range rules {
		result := Validate(r)
		if id := r.ID(); id != "" {
			if seen[id] {
				result.addError(id, "event.params.ruleId", "duplicate rule id")
			}
			seen[id] = true
		}
		results = append(results, result)
	}

	return results
}

// ValidateCatalogs validates both catalogs and flags ids shared between them
func ValidateCatalogs(cs *Catalogs) []ValidationResult {
	perElement := ValidateAll(cs.PerElement.Rules())
	byContext := ValidateAll(cs.Context.Rules())

	for i := range byContext {
		if id := byContext[i].RuleID; id != "" && cs.PerElement.Contains(id) {
			byContext[i].addError(id, "event.params.ruleId", "rule id also used in the per-element catalog")
		}
	}

	return append(perElement, byContext...)
}
