package cache_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/leighmacdonald/dota-tui/internal/cache"
	"github.com/stretchr/testify/require"
)

func TestFilesystem(t *testing.T) {
	store, err := cache.New(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	_, errMiss := store.Get(cache.CacheAssetItem, "item_blink")
	require.ErrorIs(t, errMiss, cache.ErrCacheMiss)

	require.NoError(t, store.Set(cache.CacheAssetItem, "item_blink", []byte("hello")))
	body, errGet := store.Get(cache.CacheAssetItem, "item_blink")
	require.NoError(t, errGet)
	require.Equal(t, []byte("hello"), body)

	// Variants do not share keys.
	_, errOther := store.Get(cache.CacheAssetAbility, "item_blink")
	require.ErrorIs(t, errOther, cache.ErrCacheMiss)

	// Keys never escape the cache dir.
	require.NoError(t, store.Set(cache.CacheAssetHero, "../../etc", []byte("x")))
	entries, errRead := os.ReadDir(store.Dir())
	require.NoError(t, errRead)
	require.Len(t, entries, 2)
}

func TestFilesystemExpiry(t *testing.T) {
	store, err := cache.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set(cache.CacheAssetHero, "axe", []byte("old")))

	stale := time.Now().Add(-8 * 24 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(store.Dir(), "hero_axe"), stale, stale))

	_, errGet := store.Get(cache.CacheAssetHero, "axe")
	require.ErrorIs(t, errGet, cache.ErrCacheMiss)

	_, errStat := os.Stat(filepath.Join(store.Dir(), "hero_axe"))
	require.ErrorIs(t, errStat, os.ErrNotExist)
}
