package chat

// TypingSignal is an ephemeral event: it is dispatched once and never
// persisted.
type TypingSignal struct {
	SenderID       string
	ConversationID int64
	Typing         bool
}
