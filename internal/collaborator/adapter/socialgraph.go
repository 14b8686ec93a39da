package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vidhika-anjne/Alumini-Platform/internal/collaborator/port"
)

// SocialGraphClient implements port.ConnectionChecker against the
// social-graph service's HTTP API.
type SocialGraphClient struct {
	base string
	http *http.Client
}

func NewSocialGraphClient(base string) *SocialGraphClient {
	if base == "" {
		base = "http://social-graph:8084"
	}
	return &SocialGraphClient{
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

var _ port.ConnectionChecker = (*SocialGraphClient)(nil)

func (c *SocialGraphClient) AreConnected(ctx context.Context, userA, userB string) (bool, error) {
	q := url.Values{}
	q.Set("userA", userA)
	q.Set("userB", userB)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/v1/connections/status?"+q.Encode(), nil)
	if err != nil {
		return false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("social graph: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("social graph: unexpected status %d", resp.StatusCode)
	}

	var out struct {
		Connected bool `json:"connected"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false, fmt.Errorf("social graph: decode: %w", err)
	}
	return out.Connected, nil
}
