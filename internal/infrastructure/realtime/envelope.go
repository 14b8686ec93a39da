package realtime

import "encoding/json"

// Channel names the per-user delivery lanes pushed over a session.
type Channel string

const (
	ChannelMessages Channel = "messages"
	ChannelTyping   Channel = "typing"
	ChannelStatus   Channel = "status"
	ChannelErrors   Channel = "errors"
)

// Envelope is the addressed frame written to a user's session: every push
// carries the logical channel it belongs to plus the event payload.
type Envelope struct {
	Channel Channel `json:"channel"`
	Payload any     `json:"payload"`
}

// Encode marshals the envelope for the wire.
func (e Envelope) Encode() ([]byte, error) {
	return json.Marshal(e)
}
