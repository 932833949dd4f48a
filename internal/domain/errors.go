package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist in the database.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, capacity out of range).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrForbidden is returned when the caller is authenticated but not permitted
// to perform the operation (e.g. updating a ride they do not host).
// Handlers should map this to HTTP 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation collides with existing state: a
// duplicate active request, a self-request against one's own ride, or a
// transaction aborted by the store's conflict detection. Callers may safely
// retry the conflicting operation.
var ErrConflict = errors.New("conflict")

// ErrCapacityExceeded is returned when an operation would push the number of
// approved requests for a ride past its capacity.
var ErrCapacityExceeded = errors.New("capacity exceeded")

// ErrInvalidState is returned when a lifecycle transition is attempted from a
// state that does not permit it (e.g. rejecting an already-rejected request).
var ErrInvalidState = errors.New("invalid state")
