package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiiiru/betsmoke/internal/infra"
)

func startStub(t *testing.T) *httptest.Server {
	t.Helper()
	cfg, err := infra.LoadConfig()
	require.NoError(t, err)

	router, err := newStubRouter(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestRun_AgainstStub(t *testing.T) {
	srv := startStub(t)

	stdout, stderr, err := execute(t, "run", "--base-url", srv.URL, "--contract-checks")
	require.NoError(t, err, stdout)

	assert.Contains(t, stdout, "Testing against: "+srv.URL)
	assert.Contains(t, stdout, "PASS Admin Login")
	assert.Contains(t, stdout, "PASS Contract - Single Selection Combined Rejected")
	assert.Contains(t, stdout, "Tests failed: 0")
	assert.Contains(t, stdout, "Success rate: 100.0%")
	assert.Contains(t, stderr, "smoke run finished", "logs go to stderr")
	assert.NotContains(t, stdout, "level=")
}

func TestRootDefaultsToRun(t *testing.T) {
	srv := startStub(t)

	stdout, _, err := execute(t, "--base-url", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Test Summary:")
}

func TestRun_FailedChecksExitNonZero(t *testing.T) {
	srv := startStub(t)
	t.Setenv("SMOKE_ADMIN_PASSWORD", "not-the-password")

	stdout, _, err := execute(t, "run", "--base-url", srv.URL)
	assert.ErrorIs(t, err, errChecksFailed)
	assert.Contains(t, stdout, "FAIL Admin Login")
	assert.Contains(t, stdout, "Failed Tests:")
}

func TestRun_BadFixturesFile(t *testing.T) {
	_, _, err := execute(t, "run", "--fixtures", "/nonexistent/fixtures.yaml")
	assert.ErrorContains(t, err, "read fixtures")
	assert.NotErrorIs(t, err, errChecksFailed)
}

func TestRun_UnreachableSinksDoNotChangeExitCode(t *testing.T) {
	srv := startStub(t)
	t.Setenv("PUSHGATEWAY_URL", "http://127.0.0.1:1")

	_, stderr, err := execute(t, "run", "--base-url", srv.URL)
	assert.NoError(t, err)
	assert.Contains(t, stderr, "report sink failed")
}

func TestLoadRunConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("SMOKE_BASE_URL", "http://env.example")
	t.Setenv("SMOKE_CONTRACT_CHECKS", "true")

	opts := &runOptions{}
	cmd := &cobra.Command{Use: "run"}
	addRunFlags(cmd, opts)
	require.NoError(t, cmd.Flags().Parse([]string{"--contract-checks=false"}))

	cfg, err := loadRunConfig(cmd, opts)
	require.NoError(t, err)
	assert.Equal(t, "http://env.example", cfg.BaseURL, "unset flags keep env values")
	assert.False(t, cfg.ContractChecks)
}

func TestServeStub_RejectsInsecureSecret(t *testing.T) {
	cfg, err := infra.LoadConfig()
	require.NoError(t, err)

	err = serveStub(context.Background(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	assert.ErrorContains(t, err, "JWT_SECRET")
}
