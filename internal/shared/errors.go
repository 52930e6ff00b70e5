package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Catalog data errors
	ErrMissingData   = fmt.Errorf("catalog data unavailable")
	ErrNotFound      = fmt.Errorf("record not found")
	ErrDuplicateSlug = fmt.Errorf("duplicate slug")
	ErrMalformedData = fmt.Errorf("malformed catalog data")

	// Remote and service errors
	ErrRequest            = fmt.Errorf("request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrTimeout            = fmt.Errorf("operation timed out")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
