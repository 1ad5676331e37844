package db

import "errors"

// ErrNotFound is returned when a referenced recall or staff member
// does not exist (or a recall is no longer active where an active
// recall is required).
var ErrNotFound = errors.New("not found")

// ErrAlreadyAssigned is returned when an award is attempted against a
// recall that already has an assignment. The storage layer enforces
// this atomically so two concurrent awards cannot both succeed.
var ErrAlreadyAssigned = errors.New("recall already assigned")
