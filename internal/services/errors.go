package services

import "errors"

var (
	// ErrArtworkNotFound is returned when an artwork id does not exist.
	ErrArtworkNotFound = errors.New("artwork not found")

	// ErrBioNotFound is returned when the bio record has not been
	// provisioned yet.
	ErrBioNotFound = errors.New("bio not found")

	// ErrNoUpdateFields is returned when a partial update supplies none
	// of the recognized fields. No write is performed.
	ErrNoUpdateFields = errors.New("no valid fields provided for update")
)
