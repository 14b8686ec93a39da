package adapter_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/adapter"
	"github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
	cacheport "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/cache/port"
)

// memCache is a map-backed Cache for decorator tests; TTLs are ignored.
type memCache struct {
	mu      sync.Mutex
	entries map[string]string
}

func newMemCache() *memCache { return &memCache{entries: make(map[string]string)} }

func (c *memCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return "", cacheport.ErrMiss
	}
	return v, nil
}

func (c *memCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	for _, k := range keys {
		if _, ok := c.entries[k]; ok {
			delete(c.entries, k)
			n++
		}
	}
	return n, nil
}

func (c *memCache) Ping(ctx context.Context) error { return nil }
func (c *memCache) Close() error                   { return nil }

type countingChecker struct {
	calls  int
	result bool
}

func (c *countingChecker) AreConnected(ctx context.Context, a, b string) (bool, error) {
	c.calls++
	return c.result, nil
}

func TestCachedConnectionCheckerMemoizesSortedPair(t *testing.T) {
	inner := &countingChecker{result: true}
	cached := adapter.NewCachedConnectionChecker(inner, newMemCache())

	ok, err := cached.AreConnected(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, inner.calls)

	// Reversed argument order hits the same cache entry.
	ok, err = cached.AreConnected(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, inner.calls)
}

func TestCachedConnectionCheckerCachesNegativeResult(t *testing.T) {
	inner := &countingChecker{result: false}
	cached := adapter.NewCachedConnectionChecker(inner, newMemCache())

	ok, err := cached.AreConnected(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = cached.AreConnected(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, inner.calls)
}

type countingDirectory struct {
	calls int
	info  port.DisplayInfo
}

func (d *countingDirectory) Lookup(ctx context.Context, userID string) (port.DisplayInfo, error) {
	d.calls++
	return d.info, nil
}

func TestCachedProfileDirectoryMemoizes(t *testing.T) {
	inner := &countingDirectory{info: port.DisplayInfo{Name: "Alice A", AvatarURL: "https://cdn/a.png"}}
	cached := adapter.NewCachedProfileDirectory(inner, newMemCache())

	info, err := cached.Lookup(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice A", info.Name)

	info, err = cached.Lookup(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice A", info.Name)
	assert.Equal(t, "https://cdn/a.png", info.AvatarURL)
	assert.Equal(t, 1, inner.calls)
}

func TestSocialGraphClientParsesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/connections/status", r.URL.Path)
		assert.Equal(t, "alice", r.URL.Query().Get("userA"))
		assert.Equal(t, "bob", r.URL.Query().Get("userB"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"connected": true}`))
	}))
	defer srv.Close()

	client := adapter.NewSocialGraphClient(srv.URL)
	ok, err := client.AreConnected(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSocialGraphClientSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := adapter.NewSocialGraphClient(srv.URL)
	_, err := client.AreConnected(context.Background(), "alice", "bob")
	assert.Error(t, err)
}

func TestProfileDirectoryClientFallsBackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := adapter.NewProfileDirectoryClient(srv.URL)
	info, err := client.Lookup(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Equal(t, "ghost", info.Name)
}

func TestProfileDirectoryClientParsesProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/profiles/alice", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name": "Alice A", "avatar_url": "https://cdn/a.png"}`))
	}))
	defer srv.Close()

	client := adapter.NewProfileDirectoryClient(srv.URL)
	info, err := client.Lookup(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice A", info.Name)
	assert.Equal(t, "https://cdn/a.png", info.AvatarURL)
}
