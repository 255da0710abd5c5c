package domain

import "errors"

// ErrSessionNotFound is returned when a session ID cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// ErrEmptyInput is returned for blank or whitespace-only user input.
// An empty input produces no conversation turn at all.
var ErrEmptyInput = errors.New("empty input")

// ErrUnknownDocument is returned for an upload against a label that is not
// in the session's outstanding document set.
var ErrUnknownDocument = errors.New("document not requested")

// ErrUnsupportedFile is returned when the uploaded file extension is not one
// of the accepted document formats.
var ErrUnsupportedFile = errors.New("unsupported file type")

// ErrNotApproved is returned when a sanction letter is requested before the
// session reached the approved stage.
var ErrNotApproved = errors.New("loan not approved")
