// Package state holds the in-memory session record for one retroai run.
//
// A Session carries four things: whether the last probe reached the
// archive, the current result set, the last submitted query and the
// append-only log of questions sent to the model. Nothing is persisted.
//
// The session loop owns the value and passes it explicitly; there is no
// package-level state. All access happens on the loop goroutine, so the
// type has no locking. ReplaceResults copies its input and Snapshot returns
// a deep copy, so a caller holding a slice can never mutate the session.
//
// Result selection is bounds-checked: Result(i) returns ErrInvalidIndex
// for any i outside [0, len(Results)) and leaves the session unchanged.
package state
