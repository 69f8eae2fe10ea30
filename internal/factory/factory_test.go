package factory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisdirectory "github.com/mcoot/restadmin/internal/directory/redis"
)

func TestNewDefaultsToMemory(t *testing.T) {
	app, err := New(Config{Token: TestToken})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	names, err := app.WhitelistService.Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestNewMemoryLoadsFiles(t *testing.T) {
	dir := t.TempDir()
	whitelistPath := filepath.Join(dir, "whitelist.json")
	userCachePath := filepath.Join(dir, "usercache.json")
	require.NoError(t, os.WriteFile(whitelistPath,
		[]byte(`[{"uuid":"11111111-1111-1111-1111-111111111111","name":"Steve"}]`), 0o644))
	require.NoError(t, os.WriteFile(userCachePath,
		[]byte(`[{"uuid":"22222222-2222-2222-2222-222222222222","name":"Alex"}]`), 0o644))

	app, err := New(Config{
		Token:         TestToken,
		DirectoryType: DirectoryTypeMemory,
		WhitelistPath: whitelistPath,
		UserCachePath: userCachePath,
	})
	require.NoError(t, err)

	ctx := context.Background()
	names, err := app.WhitelistService.Names(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Steve"}, names)

	p, err := app.WhitelistService.Add(ctx, "Alex")
	require.NoError(t, err)
	assert.Equal(t, Alex, *p)
}

func TestNewRedis(t *testing.T) {
	mini := miniredis.RunT(t)

	redisCfg := redisdirectory.DefaultConfig()
	redisCfg.URL = "redis://" + mini.Addr()

	app, err := New(Config{
		Token:         TestToken,
		DirectoryType: DirectoryTypeRedis,
		RedisConfig:   &redisCfg,
	})
	require.NoError(t, err)
	defer func() { _ = app.Close() }()

	names, err := app.WhitelistService.Names(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)

	// the connection check goes through the metrics hook
	assert.InDelta(t, 1, testutil.ToFloat64(app.Metrics.RedisOpsTotal.WithLabelValues("ping", "success")), 0)
}

func TestNewRedisRequiresConfig(t *testing.T) {
	_, err := New(Config{Token: TestToken, DirectoryType: DirectoryTypeRedis})
	assert.Error(t, err)
}

func TestNewRejectsUnknownDirectoryType(t *testing.T) {
	_, err := New(Config{Token: TestToken, DirectoryType: "sqlite"})
	assert.Error(t, err)
}
