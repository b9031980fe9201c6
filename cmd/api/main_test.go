package main

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"feedlist-api/core/title"
	"feedlist-api/infrastructure/cache/memory"
	"feedlist-api/infrastructure/cache/sqlite"
	stdlogger "feedlist-api/infrastructure/logger/standard"
	"feedlist-api/pkg/client"
	"feedlist-api/pkg/config"
	"feedlist-api/pkg/featureflags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Cache.Type = "memory"
	cfg.Cache.TTL = 60
	cfg.Cache.SQLite.Path = filepath.Join(t.TempDir(), "titles.db")
	cfg.Cache.Redis.Address = "127.0.0.1:1"
	cfg.Detection.Timeout = 1
	return cfg
}

func flagsContext(titleCache bool) context.Context {
	return featureflags.WithManager(context.Background(), featureflags.NewStaticManager(map[featureflags.FeatureFlag]bool{
		featureflags.TitleCache:     titleCache,
		featureflags.JSONFeedTitles: true,
	}))
}

func quietLogger() *stdlogger.StandardLogger {
	return stdlogger.NewLogger(stdlogger.Options{Output: io.Discard})
}

func TestNewTitleCache(t *testing.T) {
	t.Run("disabled by flag", func(t *testing.T) {
		cache, closeCache := newTitleCache(flagsContext(false), testConfig(t), quietLogger())
		defer closeCache()
		assert.Nil(t, cache)
	})

	t.Run("memory", func(t *testing.T) {
		cache, closeCache := newTitleCache(flagsContext(true), testConfig(t), quietLogger())
		defer closeCache()
		assert.IsType(t, &memory.MemoryCache{}, cache)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Cache.Type = "sqlite"
		cache, closeCache := newTitleCache(flagsContext(true), cfg, quietLogger())
		defer closeCache()
		assert.IsType(t, &sqlite.Client{}, cache)
	})

	t.Run("unreachable redis falls back to memory", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Cache.Type = "redis"
		cache, closeCache := newTitleCache(flagsContext(true), cfg, quietLogger())
		defer closeCache()
		assert.IsType(t, &memory.MemoryCache{}, cache)
	})
}

func TestNewResolver(t *testing.T) {
	ctx := flagsContext(true)

	local, err := newResolver(ctx, testConfig(t), nil, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &title.Resolver{}, local)

	cfg := testConfig(t)
	cfg.Detection.RemoteResolverURL = "https://titles.example"
	remote, err := newResolver(ctx, cfg, nil, quietLogger())
	require.NoError(t, err)
	assert.IsType(t, &client.RemoteResolver{}, remote)

	cfg.Detection.RemoteResolverURL = "titles.example"
	_, err = newResolver(ctx, cfg, nil, quietLogger())
	assert.Error(t, err)
}
