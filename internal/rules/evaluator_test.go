package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatches_Leaf(t *testing.T) {
	e := NewNativeEvaluator()

	tests := []struct {
		name  string
		facts Facts
		cond  *Condition
		want  bool
	}{
		{"string equal", Facts{"elementType": "tm.Flow"}, Equal("elementType", "tm.Flow"), true},
		{"string not equal", Facts{"elementType": "tm.Flow"}, NotEqual("elementType", "tm.Flow"), false},
		{"bool equal", Facts{"isEncrypted": true}, Equal("isEncrypted", true), true},
		{"false is not undefined", Facts{"isEncrypted": false}, Equal("isEncrypted", nil), false},
		{"undefined equals null", Facts{"isEncrypted": nil}, Equal("isEncrypted", nil), true},
		{"missing fact is undefined", Facts{}, Equal("isEncrypted", nil), true},
		{"undefined is not false", Facts{}, Equal("isEncrypted", false), false},
		{"empty string is not undefined", Facts{"privilegeLevel": ""}, NotEqual("privilegeLevel", nil), true},
		{"undefined notEqual empty string", Facts{}, NotEqual("privilegeLevel", ""), true},
		{"no coercion between kinds", Facts{"isEncrypted": "true"}, Equal("isEncrypted", true), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Matches(tt.facts, tt.cond)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_Groups(t *testing.T) {
	e := NewNativeEvaluator()
	facts := Facts{"elementType": "tm.Flow", "isPublicNetwork": true}

	tests := []struct {
		name string
		cond *Condition
		want bool
	}{
		{"all true", All(Equal("elementType", "tm.Flow"), Equal("isPublicNetwork", true)), true},
		{"all one false", All(Equal("elementType", "tm.Flow"), Equal("isPublicNetwork", false)), false},
		{"any one true", Any(Equal("elementType", "tm.Actor"), Equal("isPublicNetwork", true)), true},
		{"any none true", Any(Equal("elementType", "tm.Actor"), Equal("isPublicNetwork", false)), false},
		{"empty all is true", All(), true},
		{"empty any is false", Any(), false},
		{
			"nested",
			All(
				Equal("elementType", "tm.Flow"),
				Any(Equal("isEncrypted", false), Equal("isEncrypted", nil)),
			),
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Matches(facts, tt.cond)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMatches_Errors(t *testing.T) {
	e := NewNativeEvaluator()

	_, err := e.Matches(Facts{}, nil)
	assert.Error(t, err)

	_, err = e.Matches(Facts{}, &Condition{Fact: "x", Operator: "greaterThan", Value: "1"})
	assert.ErrorIs(t, err, ErrUnknownOperator)

	_, err = e.Matches(Facts{}, All(&Condition{Fact: "x", Operator: "in"}))
	assert.ErrorIs(t, err, ErrUnknownOperator)
}

func testRule(id string, c *Condition) Rule {
	return Rule{
		Name:       id,
		Conditions: c,
		Event:      Event{Type: id, Params: Template{RuleID: id, Title: "title " + id}},
	}
}

func TestEvaluate_ReturnsAllMatchesInOrder(t *testing.T) {
	rs := []Rule{
		testRule("a", Equal("elementType", "tm.Store")),
		testRule("b", Equal("elementType", "tm.Actor")),
		testRule("c", NotEqual("elementType", "tm.Flow")),
		testRule("d", All()),
	}

	matched, err := NewNativeEvaluator().Evaluate(context.Background(), Facts{"elementType": "tm.Store"}, rs)
	require.NoError(t, err)

	ids := make([]string, len(matched))
	for i, m := range matched {
		ids[i] = m.RuleID
	}
	assert.Equal(t, []string{"a", "c", "d"}, ids)
}

func TestEvaluate_ReturnsCopies(t *testing.T) {
	rs := []Rule{testRule("a", All())}

	matched, err := NewNativeEvaluator().Evaluate(context.Background(), Facts{}, rs)
	require.NoError(t, err)
	matched[0].Title = "changed"

	assert.Equal(t, "title a", rs[0].Event.Params.Title)
}

func TestEvaluate_Errors(t *testing.T) {
	e := NewNativeEvaluator()

	rs := []Rule{testRule("bad", &Condition{Fact: "x", Operator: "contains"})}
	_, err := e.Evaluate(context.Background(), Facts{}, rs)
	require.ErrorIs(t, err, ErrUnknownOperator)
	assert.Contains(t, err.Error(), "rule bad")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.Evaluate(ctx, Facts{}, nil)
	assert.ErrorIs(t, err, context.Canceled)

	matched, err := e.Evaluate(context.Background(), Facts{}, nil)
	require.NoError(t, err)
	assert.Empty(t, matched)
}
