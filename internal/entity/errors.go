package entity

import "errors"

// Domain errors
var (
	ErrInputNotFound     = errors.New("input document list not found")
	ErrNoDocuments       = errors.New("no generated documents found")
	ErrGenerationAborted = errors.New("generation aborted by user")
)
