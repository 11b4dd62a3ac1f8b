package session

import "errors"

var (
	// ErrOffline reports that archive search was requested while the probe failed.
	ErrOffline = errors.New("offline mode — archive search unavailable")
	// ErrNoPrevious reports a repeat search with nothing to repeat or no network.
	ErrNoPrevious = errors.New("no previous search or offline")
	// ErrUnknownCommand reports an unrecognized result command.
	ErrUnknownCommand = errors.New("unrecognized command")
	// ErrInvalidOption reports an unrecognized menu choice.
	ErrInvalidOption = errors.New("invalid option")
	// ErrEmptyInput reports a blank query or question.
	ErrEmptyInput = errors.New("input is empty")
)
