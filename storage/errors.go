package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with the same key already exists")

// ErrConditionFailed is returned when a guarded write loses against the current state,
// e.g. resolving a nomination that is no longer pending.
var ErrConditionFailed = errors.New("conditional write rejected by current state")
