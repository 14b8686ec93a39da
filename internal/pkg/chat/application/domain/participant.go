package chat

// Participant is a user's membership record in a conversation.
// (ConversationID, ParticipantID) pairs are unique: a user appears at most
// once per conversation. Rows are created with the conversation or via an
// explicit add, never updated, and removed only by conversation cascade.
type Participant struct {
	ID             int64
	ConversationID int64
	ParticipantID  string
}
