package port

import "context"

// The chat core treats the social graph and profile services as external
// collaborators with narrow contracts. It neither stores nor computes the
// connection graph itself.

// ConnectionChecker answers whether two users are mutually connected.
// Private conversations gate on this check.
type ConnectionChecker interface {
	AreConnected(ctx context.Context, userA, userB string) (bool, error)
}

// DisplayInfo is the UI-facing identity of a participant.
type DisplayInfo struct {
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ProfileDirectory resolves a participant id to display info. Lookups are
// best-effort: implementations fall back to the raw id as the name rather
// than failing enrichment.
type ProfileDirectory interface {
	Lookup(ctx context.Context, userID string) (DisplayInfo, error)
}
