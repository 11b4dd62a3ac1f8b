package state

import (
	"errors"
	"fmt"
	"strings"

	"github.com/five82/retroai/internal/archive"
)

// ErrInvalidIndex reports a result selection outside the current result set.
var ErrInvalidIndex = errors.New("invalid item number")

// Session is the in-memory record of one program run. It is owned by the
// session loop and only touched from that goroutine.
type Session struct {
	Online    bool
	Results   []archive.Result
	LastQuery string
	AIMemory  []string
}

// SetOnline records the outcome of the most recent probe.
func (s *Session) SetOnline(online bool) {
	s.Online = online
}

// RecordQuery stores query as the one "repeat last search" re-runs.
func (s *Session) RecordQuery(query string) {
	s.LastQuery = strings.TrimSpace(query)
}

// HasQuery reports whether a previous search can be repeated.
func (s *Session) HasQuery() bool {
	return s.LastQuery != ""
}

// ReplaceResults swaps in a new result set. The slice is copied so callers
// can't mutate the session through it.
func (s *Session) ReplaceResults(results []archive.Result) {
	s.Results = cloneResults(results)
}

// Result returns the result at zero-based index i.
func (s *Session) Result(i int) (archive.Result, error) {
	if i < 0 || i >= len(s.Results) {
		return archive.Result{}, fmt.Errorf("%w: %d (choose 1-%d)", ErrInvalidIndex, i+1, len(s.Results))
	}
	return s.Results[i], nil
}

// Remember appends a submitted AI question to the memory log.
func (s *Session) Remember(question string) {
	s.AIMemory = append(s.AIMemory, question)
}

// Snapshot returns a deep copy of the session.
func (s *Session) Snapshot() Session {
	snap := *s
	snap.Results = cloneResults(s.Results)
	if len(s.AIMemory) > 0 {
		snap.AIMemory = append([]string(nil), s.AIMemory...)
	}
	return snap
}

func cloneResults(items []archive.Result) []archive.Result {
	if len(items) == 0 {
		return nil
	}
	dup := make([]archive.Result, len(items))
	copy(dup, items)
	return dup
}
