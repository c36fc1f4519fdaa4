//go:build integration

package integration

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// TestConfig holds configuration for integration tests
type TestConfig struct {
	ServerURL   string
	AllowWrites bool
	MasPath     string
	Verbose     bool
}

// LoadTestConfig loads configuration from environment variables
func LoadTestConfig() *TestConfig {
	return &TestConfig{
		ServerURL:   os.Getenv("MAS_TEST_URL"),
		AllowWrites: os.Getenv("MAS_TEST_ALLOW_WRITES") == "true",
		MasPath:     getMasPath(),
		Verbose:     os.Getenv("MAS_VERBOSE") == "true",
	}
}

// getMasPath determines the path to the mas binary
func getMasPath() string {
	if path := os.Getenv("MAS_BINARY_PATH"); path != "" {
		return path
	}

	candidates := []string{
		"../../mas",
		"./mas",
		"../mas",
	}

	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "mas"
}

// SkipIfMissingConfig skips test if required config is missing
func (config *TestConfig) SkipIfMissingConfig(t *testing.T) {
	t.Helper()

	if config.ServerURL == "" {
		t.Skip("MAS_TEST_URL not set, skipping integration test")
	}

	if _, err := exec.LookPath(config.MasPath); err != nil {
		t.Skipf("mas binary not found at %s, skipping integration test", config.MasPath)
	}
}

// SkipUnlessWritesAllowed skips tests that change server state
func (config *TestConfig) SkipUnlessWritesAllowed(t *testing.T) {
	t.Helper()

	if !config.AllowWrites {
		t.Skip("MAS_TEST_ALLOW_WRITES not set, skipping test that modifies the server")
	}
}

// CommandRunner runs mas commands with a private config directory
type CommandRunner struct {
	config     *TestConfig
	configFile string
	t          *testing.T
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(config *TestConfig, t *testing.T) *CommandRunner {
	t.Helper()

	return &CommandRunner{
		config:     config,
		configFile: filepath.Join(t.TempDir(), "config.yml"),
		t:          t,
	}
}

// Run executes a mas command and returns output
func (runner *CommandRunner) Run(args ...string) (stdout, stderr string, err error) {
	args = append([]string{"--config", runner.configFile}, args...)

	cmd := exec.Command(runner.config.MasPath, args...)

	var stdoutBuf, stderrBuf bytes.Buffer

	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	if runner.config.Verbose {
		runner.t.Logf("Running: %s %s", runner.config.MasPath, strings.Join(args, " "))
	}

	err = cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if runner.config.Verbose && err != nil {
		runner.t.Logf("Command failed: %v\nStdout: %s\nStderr: %s", err, stdout, stderr)
	}

	return stdout, stderr, err
}

// SetupServer saves the test server as the current profile
func (runner *CommandRunner) SetupServer() error {
	_, stderr, err := runner.Run("servers", "add", "integration", runner.config.ServerURL, "--use", "--force")
	if err != nil {
		return fmt.Errorf("failed to add server profile: %s", stderr)
	}

	return nil
}

// GenerateTestName creates a unique test resource name
func GenerateTestName(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().Unix())
}

// WaitForCondition waits for a condition to be met with timeout
func WaitForCondition(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	t.Helper()

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	timeoutChan := time.After(timeout)

	for {
		select {
		case <-ticker.C:
			if condition() {
				return
			}
		case <-timeoutChan:
			t.Fatalf("Timeout waiting for condition: %s", message)
		}
	}
}

// AssertJSONOutput verifies command output is valid JSON
func AssertJSONOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if !strings.HasPrefix(output, "{") && !strings.HasPrefix(output, "[") {
		t.Errorf("Output does not appear to be JSON: %s", output)
	}
}

// AssertYAMLOutput verifies command output is valid YAML
func AssertYAMLOutput(t *testing.T, output string) {
	t.Helper()

	output = strings.TrimSpace(output)
	if strings.Contains(output, "---") || strings.Contains(output, ":") {
		return
	}

	t.Errorf("Output does not appear to be YAML: %s", output)
}
