package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/stringd/pkg/analysis"
	"github.com/getmockd/stringd/pkg/api"
	"github.com/getmockd/stringd/pkg/cliconfig"
	"github.com/getmockd/stringd/pkg/client"
)

// resetFlags restores every flag to its default so tests do not leak state
// through the package-level command tree.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// isolateConfig points config discovery at empty directories.
func isolateConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, name := range []string{
		cliconfig.EnvHost, cliconfig.EnvPort, cliconfig.EnvURL, cliconfig.EnvLogLevel,
		cliconfig.EnvLogFormat, cliconfig.EnvReadTimeout, cliconfig.EnvWriteTimeout, cliconfig.EnvMaxBodyBytes,
	} {
		t.Setenv(name, "")
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func startServer(t *testing.T) string {
	t.Helper()
	a, err := api.NewAPI()
	require.NoError(t, err)
	ts := httptest.NewServer(a.Handler())
	t.Cleanup(ts.Close)
	return ts.URL
}

func TestVersion_JSON(t *testing.T) {
	out, _, err := execute(t, "version", "--json")
	require.NoError(t, err)

	var v VersionOutput
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.NotEmpty(t, v.Version)
	assert.NotEmpty(t, v.Go)
}

func TestAnalyze_Local(t *testing.T) {
	out, _, err := execute(t, "analyze", "RaceCar", "--local", "--json")
	require.NoError(t, err)

	var rec analysis.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "racecar", rec.Value)
	assert.True(t, rec.Properties.IsPalindrome)
	assert.Equal(t, analysis.HashOf("racecar"), rec.ID)
}

func TestAnalyze_LocalText(t *testing.T) {
	out, _, err := execute(t, "analyze", "hello world", "--local")
	require.NoError(t, err)

	assert.Contains(t, out, `"hello world"`)
	assert.Contains(t, out, "Words")
	assert.NotContains(t, out, "Stored")
}

func TestAnalyze_Empty(t *testing.T) {
	_, _, err := execute(t, "analyze", "  ", "--local")
	assert.ErrorIs(t, err, ErrEmptyValue)
}

func TestStringCommands_RoundTrip(t *testing.T) {
	url := startServer(t)

	out, _, err := execute(t, "analyze", "Racecar", "--url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "Stored")

	_, _, err = execute(t, "analyze", "racecar", "--url", url)
	assert.ErrorIs(t, err, ErrStringExists)

	out, _, err = execute(t, "get", "RACECAR", "--url", url, "--json")
	require.NoError(t, err)
	var rec analysis.Record
	require.NoError(t, json.Unmarshal([]byte(out), &rec))
	assert.Equal(t, "racecar", rec.Value)

	out, _, err = execute(t, "query", "--url", url,
		"--is-palindrome", "--min-length", "1", "--max-length", "10",
		"--word-count", "1", "--contains-character", "r")
	require.NoError(t, err)
	assert.Contains(t, out, "PALINDROME")
	assert.Contains(t, out, `"racecar"`)

	out, _, err = execute(t, "query", "--url", url, "--json",
		"--is-palindrome", "--min-length", "1", "--max-length", "10",
		"--word-count", "1", "--contains-character", "R")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	out, _, err = execute(t, "query", "--url", url, "--json",
		"--is-palindrome=false", "--min-length", "1", "--max-length", "10",
		"--word-count", "1", "--contains-character", "r")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	out, _, err = execute(t, "health", "--url", url)
	require.NoError(t, err)
	assert.Contains(t, out, "healthy (1 strings")

	out, _, err = execute(t, "delete", "racecar", "--url", url)
	require.NoError(t, err)
	assert.Contains(t, out, `Deleted "racecar"`)

	_, _, err = execute(t, "get", "racecar", "--url", url)
	assert.ErrorIs(t, err, ErrStringNotFound)
}

func TestQuery_RequiresAllFlags(t *testing.T) {
	_, _, err := execute(t, "query", "--url", "http://127.0.0.1:1", "--min-length", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestQuery_RejectsMultiCharacter(t *testing.T) {
	_, _, err := execute(t, "query", "--url", "http://127.0.0.1:1",
		"--is-palindrome", "--min-length", "1", "--max-length", "2",
		"--word-count", "1", "--contains-character", "ab")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one character")
}

func TestQuery_ServerValidation(t *testing.T) {
	url := startServer(t)

	_, _, err := execute(t, "query", "--url", url,
		"--is-palindrome", "--min-length", "0", "--max-length", "2",
		"--word-count", "1", "--contains-character", "a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, client.ErrValidation))
}

func TestHealth_URLFromPort(t *testing.T) {
	isolateConfig(t)
	url := startServer(t)
	t.Setenv(cliconfig.EnvPort, url[strings.LastIndex(url, ":")+1:])

	out, _, err := execute(t, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "healthy (0 strings")
}

func TestHealth_Unreachable(t *testing.T) {
	ts := httptest.NewServer(nil)
	url := ts.URL
	ts.Close()

	out, _, err := execute(t, "health", "--url", url, "--json")
	require.Error(t, err)

	var result healthResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "unhealthy", result.Status)
	assert.Equal(t, url, result.URL)
}

func TestResolveServerURL_FromEnv(t *testing.T) {
	isolateConfig(t)
	t.Setenv(cliconfig.EnvURL, "http://example.test:9999")
	serverURL = ""

	assert.Equal(t, "http://example.test:9999", resolveServerURL(&bytes.Buffer{}))
}

func TestResolveServeConfig(t *testing.T) {
	isolateConfig(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "stringd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9000\nlogLevel: warn\nreadTimeout: 5\n"), 0o600))

	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	require.NoError(t, serveCmd.ParseFlags([]string{"--config", path, "--port", "9100"}))

	env := map[string]string{cliconfig.EnvLogLevel: "debug"}
	cfg, err := resolveServeConfig(serveCmd, &serveFlagVals, func(k string) string { return env[k] })
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, cliconfig.SourceFlag, cfg.Sources["port"])
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, cliconfig.SourceEnv, cfg.Sources["logLevel"])
	assert.Equal(t, 5, cfg.ReadTimeout)
	assert.Equal(t, cliconfig.SourceLocal, cfg.Sources["readTimeout"])
	assert.Equal(t, cliconfig.DefaultWriteTimeout, cfg.WriteTimeout)
}

func TestResolveServeConfig_Invalid(t *testing.T) {
	isolateConfig(t)
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	require.NoError(t, serveCmd.ParseFlags([]string{"--log-format", "xml"}))

	_, err := resolveServeConfig(serveCmd, &serveFlagVals, func(string) string { return "" })
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logFormat")
}

func TestRunServe(t *testing.T) {
	cfg := cliconfig.NewDefault()
	cfg.Host = "127.0.0.1"
	cfg.Port = 0

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ready := make(chan string, 1)
	done := make(chan error, 1)
	var logs bytes.Buffer
	go func() {
		done <- runServe(ctx, cfg, &logs, func(a *api.API) { ready <- a.Addr() })
	}()

	var addr string
	select {
	case addr = <-ready:
	case err := <-done:
		t.Fatalf("runServe returned early: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}

	c := client.New("http://"+addr, client.WithTimeout(2*time.Second))
	h, err := c.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ok", h.Status)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
	assert.True(t, strings.Contains(logs.String(), "stringd ready"))
}
