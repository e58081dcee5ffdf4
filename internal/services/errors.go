package services

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Every failed operation surfaces exactly one of
// these; handlers match with errors.Is and map each to a distinct response.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfRequest       = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest  = errors.New("a pending friend request already exists between these users")
	ErrRequestNotFound   = errors.New("friend request not found")
	ErrNotFriends        = errors.New("users are not friends")
	ErrSelfChat          = errors.New("cannot start a chat with yourself")
	ErrChatAlreadyExists = errors.New("a chat between these users already exists")
	ErrChatNotFound      = errors.New("chat not found")

	// ErrPersistence wraps store-layer faults (connectivity, driver errors).
	// Recoverable domain conditions above are never wrapped in it.
	ErrPersistence = errors.New("persistence failure")
)

func persistence(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrPersistence, op, err)
}
