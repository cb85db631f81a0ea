package domain

import (
	"errors"
	"fmt"
)

// ErrUnreachableLocation is returned when the instance generator cannot build
// an outline for a location.
var ErrUnreachableLocation = errors.New("unreachable location")

// ErrUnknownAxis is returned by strict spaces for location entries naming undeclared axes.
var ErrUnknownAxis = errors.New("unknown axis")

// ErrDuplicateInstance is returned when an instance already exists at a location.
var ErrDuplicateInstance = errors.New("instance already exists at location")

// ErrGestureActive is returned when an operation requires an idle controller.
var ErrGestureActive = errors.New("gesture in progress")

// ErrNoGesture is returned when a sample or end arrives without a begun gesture.
var ErrNoGesture = errors.New("no gesture in progress")

// ErrDocumentNotFound is returned when a document ID is not registered.
var ErrDocumentNotFound = errors.New("document not found")

// ErrUnknownLocationName is returned when a quick-jump name matches nothing.
var ErrUnknownLocationName = errors.New("unknown location name")

// ErrStateNotFound is returned by stores when no state is saved for a document.
var ErrStateNotFound = errors.New("document state not found")

// UnreachableError carries the glyph and location that failed to generate.
type UnreachableError struct {
	Glyph    string
	Location Location
	Cause    error
}

func (e *UnreachableError) Error() string {
	return fmt.Sprintf("cannot generate glyph %q at %s: %v", e.Glyph, e.Location, e.Cause)
}

func (e *UnreachableError) Unwrap() []error {
	return []error{ErrUnreachableLocation, e.Cause}
}
