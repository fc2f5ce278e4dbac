package rules

import (
	"context"
	"errors"
	"fmt"
)

// ErrUnknownOperator is returned when a leaf uses an unsupported operator
var ErrUnknownOperator = errors.New("unknown operator")

// Evaluator returns the payloads of every rule whose condition tree holds
// for the given facts, in rule order.
type Evaluator interface {
	Evaluate(ctx context.Context, facts Facts, rules []Rule) ([]Template, error)
}

// NativeEvaluator evaluates all/any condition trees with strict equality.
// An undefined fact (nil) is an ordinary comparable value.
type NativeEvaluator struct{}

// NewNativeEvaluator creates the bundled evaluator
func NewNativeEvaluator() *NativeEvaluator {
	return &NativeEvaluator{}
}

// Evaluate runs every rule against the facts. There is no early exit and no
// priority: a fact set may satisfy several rules and all of them are
// returned in declaration order.
func (e *NativeEvaluator) Evaluate(ctx context.Context, facts Facts, rules []Rule) ([]Template, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	matched := make([]Template, 0, len(rules))
	for i := range rules {
		ok, err := e.Matches(facts, rules[i].Conditions)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rules[i].ID(), err)
		}
		if ok {
			matched = append(matched, rules[i].Event.Params)
		}
	}

	return matched, nil
}

// Matches evaluates a single condition tree
func (e *NativeEvaluator) Matches(facts Facts, c *Condition) (bool, error) {
	if c == nil {
		return false, errors.New("nil condition")
	}

	if c.IsLeaf() {
		return evaluateLeaf(facts, c)
	}

	if c.All != nil {
		for _, child := range c.All {
			ok, err := e.Matches(facts, child)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil
	}

	for _, child := range c.Any {
		ok, err := e.Matches(facts, child)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func evaluateLeaf(facts Facts, c *Condition) (bool, error) {
	actual := facts.Get(c.Fact)

	switch c.Operator {
	case OpEqual:
		return valuesEqual(actual, c.Value), nil
	case OpNotEqual:
		return !valuesEqual(actual, c.Value), nil
	default:
		return false, fmt.Errorf("%w %q on fact %s", ErrUnknownOperator, c.Operator, c.Fact)
	}
}

// valuesEqual is strict equality over bool, string and undefined values.
// Values of different kinds never compare equal.
func valuesEqual(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	default:
		return false
	}
}
