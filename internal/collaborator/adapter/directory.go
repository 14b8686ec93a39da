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

// ProfileDirectoryClient resolves display names and avatars from the profile
// service. Any failure degrades to the raw participant id so conversation
// enrichment never breaks on a lookup miss.
type ProfileDirectoryClient struct {
	base string
	http *http.Client
}

func NewProfileDirectoryClient(base string) *ProfileDirectoryClient {
	if base == "" {
		base = "http://profile-service:8085"
	}
	return &ProfileDirectoryClient{
		base: base,
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

var _ port.ProfileDirectory = (*ProfileDirectoryClient)(nil)

func (c *ProfileDirectoryClient) Lookup(ctx context.Context, userID string) (port.DisplayInfo, error) {
	fallback := port.DisplayInfo{Name: userID}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/v1/profiles/"+url.PathEscape(userID), nil)
	if err != nil {
		return fallback, nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fallback, nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fallback, nil
	}

	var out struct {
		Name      string `json:"name"`
		AvatarURL string `json:"avatar_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return fallback, fmt.Errorf("profile directory: decode: %w", err)
	}
	if out.Name == "" {
		out.Name = userID
	}
	return port.DisplayInfo{Name: out.Name, AvatarURL: out.AvatarURL}, nil
}
