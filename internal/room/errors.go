package room

import "errors"

var (
	// ErrRoomNumberExists is returned when the room number is already listed.
	ErrRoomNumberExists = errors.New("room number already exists")
	// ErrRoomNotFound signals that no room matched the request.
	ErrRoomNotFound = errors.New("room not found")
)
