// Package report drives the ledger and revenue screens: sequenced filter
// views over the ledger store, the exchange rate future, and a text
// renderer for both reports.
package report

import "fmt"

// Status is the lifecycle of a view's current query.
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is the displayed state of a view. Data always holds the last list
// that resolved successfully, so an error never blanks the screen.
type State[Q, T any] struct {
	Query  Q
	Data   T
	Err    string
	Seq    uint64
	Status Status
	loaded bool
}

// Loaded reports whether any fetch has resolved yet.
func (s State[Q, T]) Loaded() bool {
	return s.loaded
}

type eventKind int

const (
	eventIssued eventKind = iota
	eventResolved
	eventFailed
	eventDismissed
)

type event[Q, T any] struct {
	query Q
	data  T
	err   error
	seq   uint64
	kind  eventKind
}

func issued[Q, T any](seq uint64, q Q) event[Q, T] {
	return event[Q, T]{kind: eventIssued, seq: seq, query: q}
}

func resolved[Q, T any](seq uint64, data T) event[Q, T] {
	return event[Q, T]{kind: eventResolved, seq: seq, data: data}
}

func failed[Q, T any](seq uint64, err error) event[Q, T] {
	return event[Q, T]{kind: eventFailed, seq: seq, err: err}
}

func dismissed[Q, T any]() event[Q, T] {
	return event[Q, T]{kind: eventDismissed}
}

// reduce is the only way a State changes. The second result is false when
// the event was discarded because it answers a superseded request.
func reduce[Q, T any](s State[Q, T], ev event[Q, T]) (State[Q, T], bool) {
	switch ev.kind {
	case eventIssued:
		if ev.seq <= s.Seq {
			return s, false
		}
		s.Seq = ev.seq
		s.Query = ev.query
		s.Status = StatusLoading
		return s, true

	case eventResolved:
		if ev.seq != s.Seq {
			return s, false
		}
		s.Data = ev.data
		s.Err = ""
		s.Status = StatusReady
		s.loaded = true
		return s, true

	case eventFailed:
		if ev.seq != s.Seq {
			return s, false
		}
		s.Err = ev.err.Error()
		s.Status = StatusError
		return s, true

	case eventDismissed:
		if s.Status != StatusError {
			return s, false
		}
		s.Err = ""
		if s.loaded {
			s.Status = StatusReady
		} else {
			s.Status = StatusIdle
		}
		return s, true
	}

	return s, false
}
