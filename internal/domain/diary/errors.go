package diary

import "errors"

var (
	// ErrReadOnly indicates a save was attempted without read-write mode and
	// a credential.
	ErrReadOnly = errors.New("saving requires read-write mode with a credential")
	// ErrInvalidStatus indicates an unrecognized status marker.
	ErrInvalidStatus = errors.New("invalid status marker")
	// ErrInvalidPoints indicates a point value outside its allowed range.
	ErrInvalidPoints = errors.New("point value out of range")
)
