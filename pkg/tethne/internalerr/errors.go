package internalerr

import "errors"

// Sentinel errors for common cases
var (
	ErrSourceNotFound       = errors.New("source not found")
	ErrMalformedRow         = errors.New("malformed row")
	ErrTopicIndexOutOfRange = errors.New("topic index out of range")
	ErrEmptyTopic           = errors.New("topic has no word assignments")
	ErrInvalidConfig        = errors.New("invalid configuration")
	ErrRunNotFound          = errors.New("run not found")
)
