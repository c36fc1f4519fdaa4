//go:build integration

package integration

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWorkflow_ReadOnlyTour walks the listing commands of a live server
func TestWorkflow_ReadOnlyTour(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)
	require.NoError(t, runner.SetupServer())

	stdout, stderr, err := runner.Run("ping")
	require.NoError(t, err, "Ping failed: %s", stderr)
	assert.Contains(t, stdout, "is reachable")

	for _, args := range [][]string{
		{"namespaces", "list"},
		{"processes", "list"},
		{"forms", "list"},
		{"prototypes", "list"},
		{"users", "list"},
		{"types", "list"},
		{"credentials", "list"},
		{"invocations", "list", "--period", "7"},
	} {
		stdout, stderr, err := runner.Run(append(args, "--output", "json")...)
		if err != nil && strings.Contains(stderr, "not found") {
			continue
		}

		require.NoError(t, err, "%s failed: %s", strings.Join(args, " "), stderr)
		AssertJSONOutput(t, stdout)
	}

	stdout, stderr, err = runner.Run("types", "list", "--output", "yaml")
	require.NoError(t, err, "Failed to list types as YAML: %s", stderr)
	AssertYAMLOutput(t, stdout)
}

// TestWorkflow_NamespaceLifecycle creates and replaces a namespace
func TestWorkflow_NamespaceLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipUnlessWritesAllowed(t)

	runner := NewCommandRunner(config, t)
	require.NoError(t, runner.SetupServer())

	name := GenerateTestName("integration")

	stdout, stderr, err := runner.Run("namespaces", "create", name, "--description", "created by integration tests", "--output", "json")
	require.NoError(t, err, "Failed to create namespace: %s", stderr)
	assert.Contains(t, stdout, name)

	_, stderr, err = runner.Run("namespaces", "create", name, "--description", "replaced", "--replace")
	require.NoError(t, err, "Failed to replace namespace: %s", stderr)

	WaitForCondition(t, func() bool {
		stdout, _, err := runner.Run("namespaces", "list", name, "--output", "json")
		if err != nil {
			return false
		}

		var namespaces []map[string]interface{}
		if json.Unmarshal([]byte(stdout), &namespaces) != nil || len(namespaces) == 0 {
			return false
		}

		return namespaces[0]["description"] == "replaced"
	}, 30*time.Second, "namespace description to be replaced")
}

// TestWorkflow_UnknownServer checks the failure path without a reachable server
func TestWorkflow_UnknownServer(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	runner := NewCommandRunner(config, t)

	_, stderr, err := runner.Run("ping", "--server", "https://mas.invalid")
	require.Error(t, err)
	assert.NotEmpty(t, stderr)

	_, stderr, err = runner.Run("users", "list")
	require.Error(t, err)
	assert.Contains(t, stderr, "no servers configured")
}
