package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/restadmin/internal/api"
	"github.com/mcoot/restadmin/internal/app"
	"github.com/mcoot/restadmin/internal/cli"
	"github.com/mcoot/restadmin/internal/config"
	"github.com/mcoot/restadmin/internal/factory"
)

const adminToken = "e2e-admin-token-value"

const userCache = `[
  {"name": "Steve", "uuid": "11111111-1111-1111-1111-111111111111", "expiresOn": "2026-12-01 10:00:00 +0000"},
  {"name": "Alex", "uuid": "22222222-2222-2222-2222-222222222222", "expiresOn": "2026-12-01 10:00:00 +0000"}
]`

// testServer manages a full admin server for e2e tests
type testServer struct {
	app           *app.App
	url           string
	whitelistPath string
}

func startTestServer(t *testing.T, dir string) *testServer {
	t.Helper()

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := listener.Addr().(*net.TCPAddr).Port
	require.NoError(t, listener.Close())

	configPath := filepath.Join(dir, "config", "restadmin.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	raw, err := json.Marshal(map[string]any{"port": port, "host": "127.0.0.1", "token": adminToken})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(configPath, raw, 0o600))

	userCachePath := filepath.Join(dir, "usercache.json")
	if _, err := os.Stat(userCachePath); os.IsNotExist(err) {
		require.NoError(t, os.WriteFile(userCachePath, []byte(userCache), 0o600))
	}

	cfg, err := config.Load(configPath)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	whitelistPath := filepath.Join(dir, "whitelist.json")
	services, err := factory.New(factory.Config{
		Token:         cfg.Token,
		Logger:        logger,
		DirectoryType: factory.DirectoryTypeMemory,
		WhitelistPath: whitelistPath,
		UserCachePath: userCachePath,
	})
	require.NoError(t, err)

	a := app.New(cfg, api.DefaultServerConfig(), services, logger)
	require.NoError(t, a.Start())

	return &testServer{
		app:           a,
		url:           "http://" + a.Addr(),
		whitelistPath: whitelistPath,
	}
}

func (s *testServer) stop(t *testing.T) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.app.Stop(ctx))
}

// runCLI executes restadminctl in-process against the server
func runCLI(t *testing.T, serverURL, token string, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{
		"--server", serverURL,
		"--token", token,
		"--token-file", filepath.Join(t.TempDir(), "token"),
		"--output", "json",
	}, args...))

	err := cmd.Execute()
	return out.String(), err
}

type profileResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestWhitelistLifecycle(t *testing.T) {
	dir := t.TempDir()
	srv := startTestServer(t, dir)

	out, err := runCLI(t, srv.url, adminToken, "whitelist", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)

	out, err = runCLI(t, srv.url, adminToken, "whitelist", "add", "Steve")
	require.NoError(t, err)
	var added profileResponse
	require.NoError(t, json.Unmarshal([]byte(out), &added))
	assert.Equal(t, profileResponse{ID: "11111111-1111-1111-1111-111111111111", Name: "Steve"}, added)

	out, err = runCLI(t, srv.url, adminToken, "whitelist", "add", "22222222-2222-2222-2222-222222222222")
	require.NoError(t, err)
	assert.Contains(t, out, `"Alex"`)

	out, err = runCLI(t, srv.url, adminToken, "whitelist", "check", "Steve")
	require.NoError(t, err)
	assert.JSONEq(t, `{"query":"Steve","whitelisted":true}`, out)

	_, err = runCLI(t, srv.url, adminToken, "whitelist", "remove", "Alex")
	require.NoError(t, err)

	srv.stop(t)

	// The whitelist survives a restart through the memory directory's file
	data, err := os.ReadFile(srv.whitelistPath)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"uuid":"11111111-1111-1111-1111-111111111111","name":"Steve"}]`, string(data))

	srv = startTestServer(t, dir)
	defer srv.stop(t)

	out, err = runCLI(t, srv.url, adminToken, "whitelist", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `["Steve"]`, out)
}

func TestWrongTokenRejected(t *testing.T) {
	srv := startTestServer(t, t.TempDir())
	defer srv.stop(t)

	_, err := runCLI(t, srv.url, "not-the-admin-token", "whitelist", "add", "Steve")
	var statusErr *cli.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, 401, statusErr.StatusCode)

	out, err := runCLI(t, srv.url, adminToken, "whitelist", "list")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, out)
}

func TestUnknownProfileStatuses(t *testing.T) {
	srv := startTestServer(t, t.TempDir())
	defer srv.stop(t)

	for _, tc := range []struct {
		args   []string
		status int
	}{
		{[]string{"whitelist", "check", "Herobrine"}, 400},
		{[]string{"whitelist", "add", "Herobrine"}, 400},
		{[]string{"whitelist", "remove", "Herobrine"}, 500},
	} {
		t.Run(fmt.Sprintf("%s_%d", tc.args[1], tc.status), func(t *testing.T) {
			_, err := runCLI(t, srv.url, adminToken, tc.args...)
			var statusErr *cli.StatusError
			require.ErrorAs(t, err, &statusErr)
			assert.Equal(t, tc.status, statusErr.StatusCode)
		})
	}
}
