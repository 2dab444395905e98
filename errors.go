package openft

import (
	"github.com/pkg/errors"
)

var (
	// Package load failures. Each aborts the load of one package only.
	ErrEncoding            = errors.New("manifest is neither valid utf-8 nor shift-jis")
	ErrMalformedDocument   = errors.New("malformed manifest document")
	ErrMissingRoot         = errors.New("manifest has no plug-in element")
	ErrMissingMetadata     = errors.New("missing required metadata")
	ErrUnresolvedReference = errors.New("unresolved picture reference")
	ErrUnknownContribution = errors.New("unknown contribution type")
	ErrInvalidContribution = errors.New("invalid contribution")

	// ErrUnimplemented is returned for image data we parse but cannot draw (autotiles).
	ErrUnimplemented = errors.New("not implemented")

	// Placement failures, returned to the caller so speculative placement is cheap.
	ErrOutOfBounds       = errors.New("placement is out of bounds")
	ErrCollision         = errors.New("placement collides with an existing entity")
	ErrUnknownEntityType = errors.New("unknown entity type")
	ErrUnknownGroundType = errors.New("unknown ground type")
	ErrNoEntity          = errors.New("no such entity")
)
