package usecase

import (
	"errors"
	"fmt"

	chat "go-parley/internal/pkg/chat/application/domain"
)

// ErrPersistence indicates an infrastructure/repository failure inside a use case
var ErrPersistence = fmt.Errorf("chat use case persistence error")

// wrapRepoErr lets domain sentinels pass through untouched and tags anything
// else as a persistence failure.
func wrapRepoErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, chat.ErrRoomNotFound),
		errors.Is(err, chat.ErrMessageNotFound),
		errors.Is(err, chat.ErrAlreadyMember),
		errors.Is(err, chat.ErrNotMember):
		return err
	}
	return fmt.Errorf("%w: %v", ErrPersistence, err)
}
