package cli

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// captureOutput captures stdout output from a function
func captureOutput(f func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	done := make(chan string)
	go func() {
		var buf bytes.Buffer
		_, _ = io.Copy(&buf, r)
		done <- buf.String()
	}()

	f()

	_ = w.Close()
	os.Stdout = old
	return <-done
}

// resetFlags resets command flags and shared state between tests
func resetFlags() {
	rulesDir = ""
	outputFormat = "json"
	verbose = false
	configFile = ""

	generateElement = ""
	generateMethodology = ""
	generateMode = ""
	generateAgent = false

	diagramFile = ""
	diagramMode = ""

	rulesCatalog = ""
	validateAll = false
	serveMetricsAddr = ""

	resetChanged(rootCmd)

	cfg = nil
	logger = nil
	catalogs = nil
	recorder = nil
	generator = nil
}

// resetChanged clears the Changed mark cobra leaves on parsed flags
func resetChanged(cmd *cobra.Command) {
	unmark := func(f *pflag.Flag) { f.Changed = false }
	cmd.Flags().VisitAll(unmark)
	cmd.PersistentFlags().VisitAll(unmark)
	for _, c := range cmd.Commands() {
		resetChanged(c)
	}
}

// executeCommand runs the root command with args and returns its stdout
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var err error
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(""))
	output := captureOutput(func() {
		err = rootCmd.Execute()
	})
	return output, err
}

// executeWithStdin runs the root command with the given stdin content
func executeWithStdin(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags()

	var err error
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(stdin))
	defer rootCmd.SetIn(nil)
	output := captureOutput(func() {
		err = rootCmd.Execute()
	})
	return output, err
}

const (
	publicFlowJSON = `{
  "id": "flow-1",
  "name": "Browser to API",
  "attributes": {"type": "tm.Flow"},
  "isPublicNetwork": true,
  "isEncrypted": false
}`

	actorYAML = `id: actor-1
name: Customer
attributes:
  type: tm.Actor
`

	diagramYAML = `title: Shop
diagramType: STRIDE
elements:
  - id: actor-1
    name: Customer
    attributes:
      type: tm.Actor
  - id: flow-1
    name: Browser to API
    attributes:
      type: tm.Flow
    isPublicNetwork: true
  - id: store-1
    name: Orders
    attributes:
      type: tm.Store
    storesCredentials: true
`
)
