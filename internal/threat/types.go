package threat

// ElementType is the kind of diagram element
type ElementType string

// Element types understood by the rule catalogs.
const (
	Actor   ElementType = "tm.Actor"
	Process ElementType = "tm.Process"
	Store   ElementType = "tm.Store"
	Flow    ElementType = "tm.Flow"
)

// Attributes carries the element's diagram attributes
type Attributes struct {
	Type ElementType `yaml:"type" json:"type" validate:"required,oneof=tm.Actor tm.Process tm.Store tm.Flow"`
}

// Element is a diagram element as supplied by the editor. Every property
// is optional; a nil pointer means the property was never set, which some
// rules treat differently from an explicit false.
type Element struct {
	ID         string     `yaml:"id,omitempty" json:"id,omitempty"`
	Name       string     `yaml:"name,omitempty" json:"name,omitempty"`
	Attributes Attributes `yaml:"attributes" json:"attributes"`

	IsPublicNetwork        *bool   `yaml:"isPublicNetwork,omitempty" json:"isPublicNetwork,omitempty"`
	IsEncrypted            *bool   `yaml:"isEncrypted,omitempty" json:"isEncrypted,omitempty"`
	ProvidesAuthentication *bool   `yaml:"providesAuthentication,omitempty" json:"providesAuthentication,omitempty"`
	IsALog                 *bool   `yaml:"isALog,omitempty" json:"isALog,omitempty"`
	StoresCredentials      *bool   `yaml:"storesCredentials,omitempty" json:"storesCredentials,omitempty"`
	StoresInventory        *bool   `yaml:"storesInventory,omitempty" json:"storesInventory,omitempty"`
	IsSigned               *bool   `yaml:"isSigned,omitempty" json:"isSigned,omitempty"`
	HandlesCardPayment     *bool   `yaml:"handlesCardPayment,omitempty" json:"handlesCardPayment,omitempty"`
	IsWebApplication       *bool   `yaml:"isWebApplication,omitempty" json:"isWebApplication,omitempty"`
	HandlesGoodsOrServices *bool   `yaml:"handlesGoodsOrServices,omitempty" json:"handlesGoodsOrServices,omitempty"`
	PrivilegeLevel         *string `yaml:"privilegeLevel,omitempty" json:"privilegeLevel,omitempty"`
}

// Threat is a generated threat descriptor. It is a copy of a matched
// rule's payload and belongs to the caller.
type Threat struct {
	RuleID      string `yaml:"ruleId" json:"ruleId"`
	Title       string `yaml:"title" json:"title"`
	Type        string `yaml:"type" json:"type"`
	ModelType   string `yaml:"modelType" json:"modelType"`
	Status      string `yaml:"status" json:"status"`
	Severity    string `yaml:"severity" json:"severity"`
	Description string `yaml:"description" json:"description"`
	Mitigation  string `yaml:"mitigation" json:"mitigation"`
}

// Mode selects the generation pipeline
type Mode string

// Generation modes.
const (
	ModePerElement Mode = "per-element"
	ModeContext    Mode = "context"
)

// ParseMode maps a mode name to a Mode
func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModePerElement, ModeContext:
		return Mode(s), true
	default:
		return "", false
	}
}

// Bool returns a pointer to b, for building elements in code
func Bool(b bool) *bool {
	return &b
}

// String returns a pointer to s, for building elements in code
func String(s string) *string {
	return &s
}
