package firemodel

import "github.com/m-mizutani/goerr/v2"

// Errors returned by the client. Returned errors wrap one of these, so use
// errors.Is to tell them apart.
var (
	// ErrAlreadyExists is returned by Create for a model that already has a reference.
	ErrAlreadyExists = goerr.New("model already has a reference")
	// ErrNoReference is returned for operations that need a persisted model.
	ErrNoReference = goerr.New("model has no reference")
	// ErrInvalidTimestamp is returned when server assigned timestamps are in an unexpected state.
	ErrInvalidTimestamp = goerr.New("invalid timestamp state")
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = goerr.New("document not found")
	// ErrDecode is returned when a stored document cannot be decoded into the model.
	ErrDecode = goerr.New("failed to decode document")
	// ErrReferenceResolution is returned when a sub-collection path cannot be built.
	ErrReferenceResolution = goerr.New("failed to resolve collection reference")
	// ErrNoIndexAdmin is returned by Provision when no index admin is available.
	ErrNoIndexAdmin = goerr.New("index admin is not configured")
)
