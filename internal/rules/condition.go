package rules

import "encoding/json"

// Operator compares a fact against a rule value
type Operator string

// Supported operators.
const (
	OpEqual    Operator = "equal"
	OpNotEqual Operator = "notEqual"
)

// Facts maps a fact name to its value. Values are bool, string or nil,
// where nil stands for an undefined fact.
type Facts map[string]any

// Get returns the value of a fact. A fact missing from the map is undefined.
func (f Facts) Get(name string) any {
	return f[name]
}

// Condition is a node of a rule's condition tree. A node is either a leaf
// predicate (Fact/Operator/Value) or a combinator (All or Any).
type Condition struct {
	Fact     string       `yaml:"fact,omitempty" json:"fact,omitempty"`
	Operator Operator     `yaml:"operator,omitempty" json:"operator,omitempty"`
	Value    any          `yaml:"value,omitempty" json:"value"`
	All      []*Condition `yaml:"all,omitempty" json:"all,omitempty"`
	Any      []*Condition `yaml:"any,omitempty" json:"any,omitempty"`
}

// IsLeaf reports whether the node is a predicate rather than a combinator
func (c *Condition) IsLeaf() bool {
	return c.Fact != ""
}

// All builds a conjunction node. With no children it always holds.
func All(children ...*Condition) *Condition {
	if children == nil {
		children = []*Condition{}
	}
	return &Condition{All: children}
}

// Any builds a disjunction node. With no children it never holds.
func Any(children ...*Condition) *Condition {
	if children == nil {
		children = []*Condition{}
	}
	return &Condition{Any: children}
}

// Equal builds a leaf testing fact == value
func Equal(fact string, value any) *Condition {
	return &Condition{Fact: fact, Operator: OpEqual, Value: value}
}

// NotEqual builds a leaf testing fact != value
func NotEqual(fact string, value any) *Condition {
	return &Condition{Fact: fact, Operator: OpNotEqual, Value: value}
}

// Facts returns the distinct fact names referenced by the tree
func (c *Condition) Facts() []string {
	seen := make(map[string]bool)
	var names []string
	c.walk(func(n *Condition) {
		if n.IsLeaf() && !seen[n.Fact] {
			seen[n.Fact] = true
			names = append(names, n.Fact)
		}
	})
	return names
}

func (c *Condition) walk(fn func(*Condition)) {
	if c == nil {
		return
	}
	fn(c)
	for _, child := range c.All {
		child.walk(fn)
	}
	for _, child := range c.Any {
		child.walk(fn)
	}
}

// MarshalJSON emits only the fields that belong to the node's kind, so a
// combinator does not carry a null value. An empty group keeps its key.
func (c *Condition) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.fields())
}

// MarshalYAML mirrors MarshalJSON
func (c *Condition) MarshalYAML() (any, error) {
	return c.fields(), nil
}

func (c *Condition) fields() map[string]any {
	if c.IsLeaf() {
		return map[string]any{"fact": c.Fact, "operator": c.Operator, "value": c.Value}
	}
	out := make(map[string]any, 2)
	if c.All != nil {
		out["all"] = c.All
	}
	if c.Any != nil {
		out["any"] = c.Any
	}
	return out
}
