package errors

import "errors"

var (
	ErrUnknownTopic     = errors.New("unknown topic")
	ErrConnectionClosed = errors.New("connection closed")
	ErrInvalidMessage   = errors.New("invalid client message")
)
