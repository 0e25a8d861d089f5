package domain

import "time"

// TimeRange is an inclusive [Start, End] interval.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange fails with ErrInvalidRange when end is before start.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if end.Before(start) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// Contains reports whether t lies within the range, ends included.
func (r TimeRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// ContainsRange reports whether other is a subset of r.
func (r TimeRange) ContainsRange(other TimeRange) bool {
	return !other.Start.Before(r.Start) && !other.End.After(r.End)
}

// Overlaps reports whether the two ranges share more than an endpoint.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return r.Start.Before(other.End) && other.Start.Before(r.End)
}

func (r TimeRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Equal compares instants, ignoring location.
func (r TimeRange) Equal(other TimeRange) bool {
	return r.Start.Equal(other.Start) && r.End.Equal(other.End)
}

// In returns the same range expressed in loc.
func (r TimeRange) In(loc *time.Location) TimeRange {
	return TimeRange{Start: r.Start.In(loc), End: r.End.In(loc)}
}
