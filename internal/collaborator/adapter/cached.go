package adapter

import (
	"context"
	"encoding/json"
	"time"

	cacheport "github.com/vidhika-anjne/Alumini-Platform/internal/infrastructure/cache/port"
	"github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
)

const (
	connectionStatusTTL = 5 * time.Minute
	displayInfoTTL      = 15 * time.Minute
)

// CachedConnectionChecker memoizes pair connectivity in the cache, keyed on
// the sorted pair so both argument orders hit the same entry. Cache failures
// fall through to the inner checker.
type CachedConnectionChecker struct {
	inner port.ConnectionChecker
	cache cacheport.Cache
}

func NewCachedConnectionChecker(inner port.ConnectionChecker, cache cacheport.Cache) *CachedConnectionChecker {
	return &CachedConnectionChecker{inner: inner, cache: cache}
}

var _ port.ConnectionChecker = (*CachedConnectionChecker)(nil)

func (c *CachedConnectionChecker) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	key := connectionKey(userA, userB)
	if cached, err := c.cache.Get(ctx, key); err == nil {
		return cached == "1", nil
	}

	connected, err := c.inner.AreConnected(ctx, userA, userB)
	if err != nil {
		return false, err
	}

	value := "0"
	if connected {
		value = "1"
	}
	_ = c.cache.Set(ctx, key, value, connectionStatusTTL)
	return connected, nil
}

func connectionKey(userA, userB string) string {
	if userB < userA {
		userA, userB = userB, userA
	}
	return "connstatus:" + userA + ":" + userB
}

// CachedProfileDirectory memoizes display-info lookups.
type CachedProfileDirectory struct {
	inner port.ProfileDirectory
	cache cacheport.Cache
}

func NewCachedProfileDirectory(inner port.ProfileDirectory, cache cacheport.Cache) *CachedProfileDirectory {
	return &CachedProfileDirectory{inner: inner, cache: cache}
}

var _ port.ProfileDirectory = (*CachedProfileDirectory)(nil)

func (c *CachedProfileDirectory) Lookup(ctx context.Context, userID string) (port.DisplayInfo, error) {
	key := "displayinfo:" + userID
	if cached, err := c.cache.Get(ctx, key); err == nil {
		var info port.DisplayInfo
		if json.Unmarshal([]byte(cached), &info) == nil {
			return info, nil
		}
	}

	info, err := c.inner.Lookup(ctx, userID)
	if err != nil {
		return info, err
	}
	if encoded, err := json.Marshal(info); err == nil {
		_ = c.cache.Set(ctx, key, string(encoded), displayInfoTTL)
	}
	return info, nil
}
