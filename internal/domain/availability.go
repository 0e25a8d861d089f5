package domain

import "time"

// ComputeAvailability walks the window in steps of duration and returns the
// free slots, in chronological order.
//
// A candidate that overlaps a booked or blocked range moves the cursor to
// the end of that range, so later slots are anchored to the conflict rather
// than to a fixed grid. Slots starting at or before now are skipped.
func ComputeAvailability(window TimeRange, duration time.Duration, orders, blocked []TimeRange, now time.Time) []TimeRange {
	slots := make([]TimeRange, 0)
	if duration <= 0 {
		return slots
	}

	cursor := window.Start
	for !cursor.Add(duration).After(window.End) {
		candidate := TimeRange{Start: cursor, End: cursor.Add(duration)}

		if end, ok := conflictEnd(candidate, orders); ok {
			cursor = end
			continue
		}
		if end, ok := conflictEnd(candidate, blocked); ok {
			cursor = end
			continue
		}

		if candidate.Start.After(now) {
			slots = append(slots, candidate)
		}
		cursor = candidate.End
	}

	return slots
}

// conflictEnd returns the end of the first range overlapping candidate.
// Overlap guarantees the end is after candidate.Start, so the walk always advances.
func conflictEnd(candidate TimeRange, ranges []TimeRange) (time.Time, bool) {
	for _, r := range ranges {
		if candidate.Overlaps(r) {
			return r.End, true
		}
	}
	return time.Time{}, false
}

// FindSlot returns the slot that starts exactly at start.
func FindSlot(slots []TimeRange, start time.Time) (TimeRange, bool) {
	for _, s := range slots {
		if s.Start.Equal(start) {
			return s, true
		}
	}
	return TimeRange{}, false
}

// DayWindow combines a date with the schedule entry's hours.
// The date's location decides the wall clock.
func DayWindow(date time.Time, entry ScheduleEntry) (TimeRange, error) {
	return NewTimeRange(entry.StartTime.On(date), entry.EndTime.On(date))
}
