package chat

import (
	"errors"
	"fmt"
)

// Error taxonomy for chat behaviors. The five sentinels map one-to-one to
// transport statuses; the named errors below wrap them so callers can match
// either the broad class or the specific cause with errors.Is.
var (
	ErrInvalidArgument = errors.New("chat: invalid argument")
	ErrNotFound        = errors.New("chat: not found")
	ErrForbidden       = errors.New("chat: forbidden")
	ErrConflict        = errors.New("chat: conflict")
	ErrUnauthenticated = errors.New("chat: unauthenticated")
)

var (
	ErrNotParticipant       = fmt.Errorf("%w: sender is not a participant of the conversation", ErrForbidden)
	ErrNotConnected         = fmt.Errorf("%w: users must be connected to message privately", ErrForbidden)
	ErrEmptyMessage         = fmt.Errorf("%w: either content or media url must be provided", ErrInvalidArgument)
	ErrDuplicateParticipant = fmt.Errorf("%w: participant already in this conversation", ErrConflict)
	ErrConversationNotFound = fmt.Errorf("%w: conversation not found", ErrNotFound)
	ErrMessageNotFound      = fmt.Errorf("%w: message not found", ErrNotFound)
)
