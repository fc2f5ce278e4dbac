package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/mark-chris/tmgen/internal/rules"
)

// Fixed rule ids used by the fixture catalogs
const (
	SpoofingRuleID   = "11111111-1111-4111-8111-111111111111"
	TamperingRuleID  = "22222222-2222-4222-8222-222222222222"
	EncryptionRuleID = "33333333-3333-4333-8333-333333333333"
	FallbackRuleID   = "44444444-4444-4444-8444-444444444444"
)

// TestFixture holds test resources and provides cleanup
type TestFixture struct {
	Dir        string       // Temporary directory containing test catalogs
	PerElement []rules.Rule // Rules written to per_element.yaml
	Context    []rules.Rule // Rules written to by_context.yaml
	Cleanup    func()       // Cleanup function to remove temporary resources
}

// CatalogWrapper handles the top-level rules key in YAML files
// This mirrors the rules package's catalog file but is defined here to
// write fixtures
type CatalogWrapper struct {
	Catalog string       `yaml:"catalog"`
	Rules   []rules.Rule `yaml:"rules"`
}

// SetupTestCatalogs creates a temporary directory with a two-rule
// per-element catalog and a two-rule context catalog
func SetupTestCatalogs(t *testing.T) *TestFixture {
	t.Helper()

	tmpDir := t.TempDir()

	perElement := []rules.Rule{
		CreateTestRule(SpoofingRuleID, "Test spoofing", "Spoofing", "STRIDE",
			rules.All(
				rules.Equal("diagramType", "STRIDE"),
				rules.Equal("elementType", "tm.Actor"),
			)),
		CreateTestRule(TamperingRuleID, "Test tampering", "Tampering", "STRIDE",
			rules.All(
				rules.Equal("diagramType", "STRIDE"),
				rules.NotEqual("elementType", "tm.Actor"),
			)),
	}

	byContext := []rules.Rule{
		CreateTestRule(EncryptionRuleID, "Test encryption", "Disclosure", "TBD",
			rules.All(
				rules.Equal("elementType", "tm.Flow"),
				rules.Equal("isPublicNetwork", true),
				rules.Any(
					rules.Equal("isEncrypted", false),
					rules.Equal("isEncrypted", nil),
				),
			)),
		CreateTestRule(FallbackRuleID, "Test fallback", "TBD", "TBD",
			rules.All(
				rules.Equal("elementType", "tm.Actor"),
				rules.Equal("providesAuthentication", nil),
			)),
	}

	if err := WriteCatalogFile(tmpDir, rules.PerElementFile, rules.CatalogPerElement, perElement); err != nil {
		t.Fatalf("Failed to write catalog file: %v", err)
	}
	if err := WriteCatalogFile(tmpDir, rules.ContextFile, rules.CatalogContext, byContext); err != nil {
		t.Fatalf("Failed to write catalog file: %v", err)
	}

	return &TestFixture{
		Dir:        tmpDir,
		PerElement: perElement,
		Context:    byContext,
		Cleanup:    func() {}, // t.TempDir() handles cleanup automatically
	}
}

// CreateTestRule generates a minimal valid rule for testing
func CreateTestRule(id, title, threatType, modelType string, conditions *rules.Condition) rules.Rule {
	return rules.Rule{
		Name:       title,
		Conditions: conditions,
		Event: rules.Event{
			Type: id,
			Params: rules.Template{
				RuleID:      id,
				Title:       title,
				Type:        threatType,
				ModelType:   modelType,
				Status:      "Open",
				Severity:    "Medium",
				Description: "Test description for " + title,
				Mitigation:  "Test mitigation for " + title,
			},
		},
	}
}

// WriteCatalogFile writes rules as a YAML catalog in the specified directory
func WriteCatalogFile(dir, filename, catalog string, rs []rules.Rule) error {
	data, err := yaml.Marshal(&CatalogWrapper{Catalog: catalog, Rules: rs})
	if err != nil {
		return err
	}

	// #nosec G306 -- Test files don't need restrictive permissions
	return os.WriteFile(filepath.Join(dir, filename), data, 0644)
}

// WriteFile writes content to name in dir and returns the full path
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	// #nosec G306 -- Test files don't need restrictive permissions
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}
