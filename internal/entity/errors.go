package entity

import "errors"

// Caller-contract errors. Data-quality problems (partial telemetry, sparse
// history) are defaulted instead of raised; these errors mark programming
// mistakes in the surrounding application.
var (
	ErrInvalidUserID = errors.New("invalid user ID")
	ErrInvalidLimit  = errors.New("recommendation limit must not be negative")
	ErrInvalidFilter = errors.New("invalid recommendation filter expression")
	ErrNilProfile    = errors.New("user profile required")
	ErrNilFeature    = errors.New("feature definition required")
	ErrUnknownItem   = errors.New("unknown content item")
)
