package service

import "errors"

var (
	// ErrNotConfigured is returned by PrintMessage before a source is set.
	ErrNotConfigured = errors.New("message printer: message source is not configured")
	// ErrInvalidArgument is returned when a nil source is passed in.
	ErrInvalidArgument = errors.New("message printer: invalid argument")
)
