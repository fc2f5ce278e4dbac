package threat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPerElementFacts(t *testing.T) {
	facts := PerElementFacts(&Element{Attributes: Attributes{Type: Flow}, IsEncrypted: Bool(true)}, CIA)

	assert.Equal(t, "tm.Flow", facts[FactElementType])
	assert.Equal(t, "CIA", facts[FactDiagramType])
	assert.Len(t, facts, 2)
}

func TestContextFacts_UndefinedStaysNil(t *testing.T) {
	facts := ContextFacts(&Element{Attributes: Attributes{Type: Store}}, MRTM)

	for _, name := range []string{
		FactIsPublicNetwork, FactIsEncrypted, FactProvidesAuthentication, FactIsALog,
		FactStoresCredentials, FactStoresInventory, FactIsSigned, FactHandlesCardPayment,
		FactIsWebApplication, FactHandlesGoodsOrServices, FactPrivilegeLevel,
	} {
		v, ok := facts[name]
		require.True(t, ok, name)
		// A typed nil pointer would not compare equal to nil here
		assert.True(t, v == nil, "%s = %#v", name, v)
	}
}

func TestContextFacts_ValuesCopied(t *testing.T) {
	el := &Element{
		Attributes:             Attributes{Type: Process},
		IsPublicNetwork:        Bool(false),
		ProvidesAuthentication: Bool(true),
		PrivilegeLevel:         String(""),
	}
	facts := ContextFacts(el, STRIDE)

	assert.Equal(t, false, facts[FactIsPublicNetwork])
	assert.Equal(t, true, facts[FactProvidesAuthentication])
	assert.Equal(t, "", facts[FactPrivilegeLevel])
	assert.Equal(t, "STRIDE", facts.Get(FactDiagramType))
}
