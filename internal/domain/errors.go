package domain

import "errors"

// Failure classes of a report run. Concrete errors wrap one of these, so
// callers classify them with errors.Is.
var (
	ErrInvalidRegion      = errors.New("invalid region")
	ErrFetch              = errors.New("fetch forecast")
	ErrMalformedData      = errors.New("malformed forecast data")
	ErrDocumentGeneration = errors.New("generate document")
	ErrPublish            = errors.New("publish report")
)
