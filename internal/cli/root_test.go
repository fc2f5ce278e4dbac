package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mark-chris/tmgen/internal/cli/testutil"
)

// runWithTestCommand executes a no-op subcommand so only PersistentPreRunE runs
func runWithTestCommand(t *testing.T, args ...string) error {
	t.Helper()

	testCmd := &cobra.Command{
		Use: "test",
		RunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
	}
	rootCmd.AddCommand(testCmd)
	defer rootCmd.RemoveCommand(testCmd)

	_, err := executeCommand(t, append([]string{"test"}, args...)...)
	return err
}

func TestRootCommand_UsesEmbeddedCatalogs(t *testing.T) {
	require.NoError(t, runWithTestCommand(t))

	require.NotNil(t, catalogs)
	require.NotNil(t, generator)
	require.NotNil(t, recorder)
	assert.Equal(t, 13, catalogs.PerElement.Count())
	assert.Equal(t, 28, catalogs.Context.Count())
}

func TestRootCommand_RulesDirOverride(t *testing.T) {
	fixture := testutil.SetupTestCatalogs(t)
	defer fixture.Cleanup()

	require.NoError(t, runWithTestCommand(t, "--rules", fixture.Dir))

	assert.Equal(t, 2, catalogs.PerElement.Count())
	assert.Equal(t, 2, catalogs.Context.Count())
}

func TestRootCommand_InvalidRulesDir(t *testing.T) {
	err := runWithTestCommand(t, "--rules", "/nonexistent/invalid/directory")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load rules")
}

func TestRootCommand_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tmgen.yaml", "methodology: CIA\nmode: per-element\nformat: text\n")

	require.NoError(t, runWithTestCommand(t, "--config", path))

	assert.Equal(t, "CIA", cfg.Methodology)
	assert.Equal(t, "text", outputFormat)
}

func TestRootCommand_FormatFlagOverridesConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tmgen.yaml", "format: text\n")

	require.NoError(t, runWithTestCommand(t, "--config", path, "--format", "json"))
	assert.Equal(t, "json", outputFormat)
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "tmgen.yaml", "mode: batch\n")

	err := runWithTestCommand(t, "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mode must be per-element or context")
}

func TestGetFormat(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		verbose bool
		want    string
	}{
		{"json", "json", false, "json"},
		{"text", "text", false, "text"},
		{"verbose forces text", "json", true, "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFormat = tt.format
			verbose = tt.verbose
			defer resetFlags()

			assert.Equal(t, tt.want, string(getFormat()))
		})
	}
}

func TestModeOrDefault(t *testing.T) {
	resetFlags()

	mode, err := modeOrDefault("per-element")
	require.NoError(t, err)
	assert.Equal(t, "per-element", string(mode))

	_, err = modeOrDefault("")
	assert.Error(t, err, "no config and no mode")

	_, err = modeOrDefault("batch")
	assert.Error(t, err)
}
