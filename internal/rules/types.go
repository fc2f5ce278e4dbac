package rules

// Template is the threat payload attached to a rule. It is copied into
// every match result; the catalog's stored template is never modified.
type Template struct {
	RuleID      string `yaml:"ruleId" json:"ruleId"`
	Title       string `yaml:"title" json:"title"`
	Type        string `yaml:"type" json:"type"`
	ModelType   string `yaml:"modelType" json:"modelType"`
	Status      string `yaml:"status" json:"status"`
	Severity    string `yaml:"severity" json:"severity"`
	Description string `yaml:"description" json:"description"`
	Mitigation  string `yaml:"mitigation" json:"mitigation"`
}

// Event pairs the engine event type with the threat payload
type Event struct {
	Type   string   `yaml:"type" json:"type"`
	Params Template `yaml:"params" json:"params"`
}

// Rule pairs a condition tree with a fixed threat payload
type Rule struct {
	Name       string     `yaml:"name,omitempty" json:"name,omitempty"`
	Conditions *Condition `yaml:"conditions" json:"conditions"`
	Event      Event      `yaml:"event" json:"event"`
}

// ID returns the stable rule identifier
func (r *Rule) ID() string {
	return r.Event.Params.RuleID
}

// catalogFile handles the top-level rules key in YAML files
type catalogFile struct {
	Catalog string `yaml:"catalog"`
	Rules   []Rule `yaml:"rules"`
}
