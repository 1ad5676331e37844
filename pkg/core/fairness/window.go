package fairness

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidWindow is returned for a recall window that cannot be parsed
// or whose end is not after its start.
var ErrInvalidWindow = errors.New("invalid recall window")

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04"
	dateTimeLayout = "2006-01-02 15:04"
)

// Window is a recall time window: a single calendar date with a start
// and end time of day. Windows are same-day; a shift spanning midnight
// is represented as two windows.
type Window struct {
	Date  string // "2006-01-02"
	Start string // "15:04"
	End   string // "15:04"
}

// bounds parses the window into absolute start and end instants
func (w Window) bounds() (time.Time, time.Time, error) {
	start, err := time.Parse(dateTimeLayout, w.Date+" "+w.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad start %q %q", ErrInvalidWindow, w.Date, w.Start)
	}

	end, err := time.Parse(dateTimeLayout, w.Date+" "+w.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: bad end %q %q", ErrInvalidWindow, w.Date, w.End)
	}

	return start, end, nil
}

// Validate checks that the window parses and that the end is strictly
// after the start
func (w Window) Validate() error {
	start, end, err := w.bounds()
	if err != nil {
		return err
	}

	if !end.After(start) {
		return fmt.Errorf("%w: end %q is not after start %q", ErrInvalidWindow, w.End, w.Start)
	}

	return nil
}

// Hours returns the duration of the window in hours
func (w Window) Hours() (float64, error) {
	if err := w.Validate(); err != nil {
		return 0, err
	}

	start, end, _ := w.bounds()
	return end.Sub(start).Hours(), nil
}

// Overlaps reports whether two windows overlap in time. Windows on
// different dates never overlap. The comparison is open-interval:
// back-to-back windows where one ends exactly when the other starts
// do not overlap.
func (w Window) Overlaps(other Window) bool {
	if w.Date != other.Date {
		return false
	}

	start1, end1, err := w.bounds()
	if err != nil {
		return false
	}

	start2, end2, err := other.bounds()
	if err != nil {
		return false
	}

	return start1.Before(end2) && start2.Before(end1)
}
