package threat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeElement_JSON(t *testing.T) {
	el, err := DecodeElement([]byte(`{
		"id": "f1",
		"attributes": {"type": "tm.Flow"},
		"isPublicNetwork": true,
		"isEncrypted": false,
		"privilegeLevel": ""
	}`))
	require.NoError(t, err)

	assert.Equal(t, "f1", el.ID)
	assert.Equal(t, Flow, el.Attributes.Type)
	require.NotNil(t, el.IsPublicNetwork)
	assert.True(t, *el.IsPublicNetwork)
	require.NotNil(t, el.IsEncrypted)
	assert.False(t, *el.IsEncrypted)
	require.NotNil(t, el.PrivilegeLevel)
	assert.Equal(t, "", *el.PrivilegeLevel)
	assert.Nil(t, el.ProvidesAuthentication)
}

func TestDecodeElement_YAMLNullIsUndefined(t *testing.T) {
	el, err := DecodeElement([]byte("attributes:\n  type: tm.Actor\nprovidesAuthentication: null\n"))
	require.NoError(t, err)
	assert.Nil(t, el.ProvidesAuthentication)
}

func TestDecodeElement_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{"missing type", `{"id": "x"}`, "invalid element"},
		{"unknown type", `{"attributes": {"type": "tm.Boundary"}}`, "invalid element"},
		{"malformed", `{"attributes": [`, "failed to parse element"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeElement([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateElement_Nil(t *testing.T) {
	assert.ErrorIs(t, ValidateElement(nil), ErrNilElement)
}

func TestDecodeDiagram(t *testing.T) {
	d, err := DecodeDiagram([]byte(`
diagramType: CIA
elements:
  - attributes: {type: tm.Process}
  - attributes: {type: tm.Store}
    isALog: true
`))
	require.NoError(t, err)
	assert.Equal(t, "CIA", d.DiagramType)
	require.Len(t, d.Elements, 2)
	assert.True(t, *d.Elements[1].IsALog)

	_, err = DecodeDiagram([]byte("diagramType: CIA\nelements:\n  - attributes: {type: nope}\n"))
	assert.Error(t, err)

	_, err = DecodeDiagram([]byte("diagramType: CIA\n"))
	assert.Error(t, err)
}

func TestLoadElementAndDiagram(t *testing.T) {
	dir := t.TempDir()
	elPath := filepath.Join(dir, "el.yaml")
	require.NoError(t, os.WriteFile(elPath, []byte("attributes:\n  type: tm.Store\n"), 0o644))

	el, err := LoadElement(elPath)
	require.NoError(t, err)
	assert.Equal(t, Store, el.Attributes.Type)

	_, err = LoadElement(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadDiagram(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}
