package world

import "errors"

var (
	// ErrUnknownRoom is returned when a room ID does not exist.
	ErrUnknownRoom = errors.New("unknown room")
	// ErrUnknownDoor is returned when a door ID does not exist.
	ErrUnknownDoor = errors.New("unknown door")
	// ErrUnknownItem is returned when an item ID does not exist or was removed.
	ErrUnknownItem = errors.New("unknown item")
	// ErrInvalidContent wraps structural content problems.
	ErrInvalidContent = errors.New("invalid content")
)
