package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrDuplicateSlug    = errors.New("slug already in use")
	ErrInvalidCapacity  = errors.New("capacity and registered must be zero or greater")
	ErrGameNameRequired = errors.New("game name is required")
	ErrInvalidSlug      = errors.New("slug must contain at least one letter or digit")
)
