package entities

import "errors"

// Domain errors
var (
	// Minutes errors
	ErrMinutesNotFound      = errors.New("minutes not found")
	ErrMinutesAlreadyExists = errors.New("minutes already exist for meeting")
	ErrInvalidStatus        = errors.New("invalid minutes status")
)
