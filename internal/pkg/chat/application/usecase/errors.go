package usecase

import (
	"errors"
	"fmt"

	chat "github.com/vidhika-anjne/Alumini-Platform/internal/pkg/chat/application/domain"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// ErrCollaborator indicates a social graph or profile collaborator failure
var ErrCollaborator = fmt.Errorf("chat use case collaborator error")

// errorsIsDomain tells whether err already carries one of the domain
// sentinels. Such errors pass through untouched; everything else from the
// repository is wrapped as ErrPersistence.
func errorsIsDomain(err error) bool {
	return errors.Is(err, chat.ErrInvalidArgument) ||
		errors.Is(err, chat.ErrNotFound) ||
		errors.Is(err, chat.ErrForbidden) ||
		errors.Is(err, chat.ErrConflict) ||
		errors.Is(err, chat.ErrUnauthenticated)
}

// wrapRepoErr keeps domain sentinels intact and tags everything else as a
// persistence failure.
func wrapRepoErr(err error) error {
	if errorsIsDomain(err) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
