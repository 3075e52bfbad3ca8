package projections

import (
	"fmt"
)

// ProjectionError reports a handler failure for one event. The apply path
// catches these per event: a malformed record never derails a replay, it
// is logged, counted and skipped.
type ProjectionError struct {
	EventID   string
	EventType string
	Position  int64
	Err       error
}

func (e *ProjectionError) Error() string {
	return fmt.Sprintf("projection failed to handle event %s (type: %s, position: %d): %v",
		e.EventID, e.EventType, e.Position, e.Err)
}

func (e *ProjectionError) Unwrap() error {
	return e.Err
}

// RebuildError reports that a full rebuild could not read the event
// history. The rebuild guard is cleared before this is returned, so the
// caller may retry.
type RebuildError struct {
	Err error
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf("rebuild failed to read event history: %v", e.Err)
}

func (e *RebuildError) Unwrap() error {
	return e.Err
}
