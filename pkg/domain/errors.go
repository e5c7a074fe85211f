package domain

import "errors"

// ErrNotFound is returned when a key or record cannot be found in a store.
var ErrNotFound = errors.New("not found")

// ErrEmptyInput is returned when a chat submission is empty or whitespace only.
var ErrEmptyInput = errors.New("empty input")

// ErrInvalidTransition is returned when an operation is not allowed in the current stage.
var ErrInvalidTransition = errors.New("invalid transition")

// ErrRefreshLimit is returned when the lens refresh cap has been reached.
var ErrRefreshLimit = errors.New("refresh limit reached")

// ErrPending is returned when a generation request is still outstanding.
var ErrPending = errors.New("generation pending")

// ErrFlowClosed is returned when a flow was finished or closed.
var ErrFlowClosed = errors.New("flow closed")

// ErrUnknownCard is returned when a selected card is not part of the offered batch.
var ErrUnknownCard = errors.New("unknown card")

// ErrFlowActive is returned when a flow is opened while another one is still active.
var ErrFlowActive = errors.New("a flow is already active")

// ErrFlowNotFound is returned when a flow ID is not known to the session manager.
var ErrFlowNotFound = errors.New("flow not found")

// ErrDuplicateSession is returned when a session with the same ID is archived twice.
var ErrDuplicateSession = errors.New("duplicate session")

// ErrNoContent is returned by a generation strategy that has nothing to offer.
var ErrNoContent = errors.New("no content")
