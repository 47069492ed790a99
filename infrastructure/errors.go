package infrastructure

import "errors"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidInput = errors.New("invalid input")
	ErrInternal     = errors.New("internal server error")

	// ErrNotConnected is returned when a direct message is attempted between
	// users without an accepted connection.
	ErrNotConnected = errors.New("users are not connected")

	// ErrNotMember is returned when a user acts on a group they have not
	// accepted membership in.
	ErrNotMember = errors.New("user is not an accepted group member")

	// ErrMalformedEvent marks an unparseable or unknown realtime envelope.
	// The connection stays open; the event is dropped.
	ErrMalformedEvent = errors.New("malformed event")

	// ErrChannelClosed means the delivery target is no longer live. Expected
	// condition, not a fault: the persisted copy is authoritative.
	ErrChannelClosed = errors.New("channel closed")

	ErrMissingToken = errors.New("missing access token")
	ErrInvalidToken = errors.New("invalid access token")
)
