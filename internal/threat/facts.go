package threat

import "github.com/mark-chris/tmgen/internal/rules"

// Fact names read by the rule catalogs.
const (
	FactElementType            = "elementType"
	FactDiagramType            = "diagramType"
	FactIsPublicNetwork        = "isPublicNetwork"
	FactIsEncrypted            = "isEncrypted"
	FactProvidesAuthentication = "providesAuthentication"
	FactIsALog                 = "isALog"
	FactStoresCredentials      = "storesCredentials"
	FactStoresInventory        = "storesInventory"
	FactIsSigned               = "isSigned"
	FactHandlesCardPayment     = "handlesCardPayment"
	FactIsWebApplication       = "isWebApplication"
	FactHandlesGoodsOrServices = "handlesGoodsOrServices"
	FactPrivilegeLevel         = "privilegeLevel"
)

// PerElementFacts returns the facts used by the per-element catalog
func PerElementFacts(el *Element, m Methodology) rules.Facts {
	return rules.Facts{
		FactElementType: string(el.Attributes.Type),
		FactDiagramType: string(m),
	}
}

// ContextFacts returns the per-element facts plus the element properties.
// Unset properties are recorded as undefined (nil), never defaulted.
func ContextFacts(el *Element, m Methodology) rules.Facts {
	facts := PerElementFacts(el, m)
	facts[FactIsPublicNetwork] = boolFact(el.IsPublicNetwork)
	facts[FactIsEncrypted] = boolFact(el.IsEncrypted)
	facts[FactProvidesAuthentication] = boolFact(el.ProvidesAuthentication)
	facts[FactIsALog] = boolFact(el.IsALog)
	facts[FactStoresCredentials] = boolFact(el.StoresCredentials)
	facts[FactStoresInventory] = boolFact(el.StoresInventory)
	facts[FactIsSigned] = boolFact(el.IsSigned)
	facts[FactHandlesCardPayment] = boolFact(el.HandlesCardPayment)
	facts[FactIsWebApplication] = boolFact(el.IsWebApplication)
	facts[FactHandlesGoodsOrServices] = boolFact(el.HandlesGoodsOrServices)
	facts[FactPrivilegeLevel] = stringFact(el.PrivilegeLevel)
	return facts
}

// boolFact avoids storing a typed nil pointer in the fact map
func boolFact(p *bool) any {
	if p == nil {
		return nil
	}
	return *p
}

func stringFact(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}
