package git

import "errors"

var (
	// ErrInvalidArg represent family of errors to report about bad argument used to make a call.
	ErrInvalidArg = errors.New("invalid argument")
	// ErrReferenceNotFound is returned when a reference does not exist.
	ErrReferenceNotFound = errors.New("reference not found")
	// ErrNotFound represents an error when the resource can't be found.
	ErrNotFound = errors.New("not found")
)
