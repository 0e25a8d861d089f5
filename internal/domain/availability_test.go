package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

var mondayMorning = ScheduleEntry{
	DayOfWeek: time.Monday,
	StartTime: types.MustTimeString("09:00"),
	EndTime:   types.MustTimeString("11:00"),
}

func TestComputeAvailability_NoOrders(t *testing.T) {
	window, err := DayWindow(at(0, 0), mondayMorning)
	require.NoError(t, err)

	slots := ComputeAvailability(window, time.Hour, nil, nil, at(0, 0).Add(-24*time.Hour))

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Equal(mustRange(t, at(9, 0), at(10, 0))))
	assert.True(t, slots[1].Equal(mustRange(t, at(10, 0), at(11, 0))))
}

func TestComputeAvailability_ExistingOrder(t *testing.T) {
	window, err := DayWindow(at(0, 0), mondayMorning)
	require.NoError(t, err)

	orders := []TimeRange{mustRange(t, at(9, 0), at(10, 0))}
	slots := ComputeAvailability(window, time.Hour, orders, nil, at(0, 0))

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(mustRange(t, at(10, 0), at(11, 0))))
}

func TestComputeAvailability_MisalignedOrderShiftsGrid(t *testing.T) {
	window := mustRange(t, at(9, 0), at(12, 0))

	orders := []TimeRange{mustRange(t, at(9, 30), at(10, 15))}
	slots := ComputeAvailability(window, time.Hour, orders, nil, at(0, 0))

	require.Len(t, slots, 1)
	assert.True(t, slots[0].Equal(mustRange(t, at(10, 15), at(11, 15))))
}

func TestComputeAvailability_BlockedPeriod(t *testing.T) {
	window := mustRange(t, at(9, 0), at(12, 0))

	blocked := []TimeRange{mustRange(t, at(10, 0), at(11, 0))}
	slots := ComputeAvailability(window, time.Hour, nil, blocked, at(0, 0))

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Equal(mustRange(t, at(9, 0), at(10, 0))))
	assert.True(t, slots[1].Equal(mustRange(t, at(11, 0), at(12, 0))))
}

func TestComputeAvailability_SkipsPastAndInProgress(t *testing.T) {
	window := mustRange(t, at(9, 0), at(12, 0))

	slots := ComputeAvailability(window, time.Hour, nil, nil, at(9, 0))

	require.Len(t, slots, 2)
	assert.True(t, slots[0].Start.Equal(at(10, 0)))
}

func TestComputeAvailability_ZeroDuration(t *testing.T) {
	window := mustRange(t, at(9, 0), at(12, 0))
	assert.Empty(t, ComputeAvailability(window, 0, nil, nil, at(0, 0)))
}

func TestComputeAvailability_Properties(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		window := mustRange(t, at(8, 0), at(8, 0).Add(time.Duration(1+rnd.Intn(12))*time.Hour))
		duration := time.Duration(15*(1+rnd.Intn(8))) * time.Minute
		now := at(rnd.Intn(14), rnd.Intn(60))

		orders := randomRanges(t, rnd, 4)
		blocked := randomRanges(t, rnd, 2)

		slots := ComputeAvailability(window, duration, orders, blocked, now)
		again := ComputeAvailability(window, duration, orders, blocked, now)
		require.Equal(t, slots, again)

		for j, s := range slots {
			require.Equal(t, duration, s.Duration())
			require.True(t, window.ContainsRange(s))
			require.True(t, s.Start.After(now))
			for _, o := range orders {
				require.False(t, s.Overlaps(o))
			}
			for _, b := range blocked {
				require.False(t, s.Overlaps(b))
			}
			if j > 0 {
				require.False(t, s.Start.Before(slots[j-1].End))
			}
		}
	}
}

func randomRanges(t *testing.T, rnd *rand.Rand, max int) []TimeRange {
	n := rnd.Intn(max + 1)
	out := make([]TimeRange, 0, n)
	for i := 0; i < n; i++ {
		start := at(8, 0).Add(time.Duration(rnd.Intn(12*60)) * time.Minute)
		out = append(out, mustRange(t, start, start.Add(time.Duration(5+rnd.Intn(120))*time.Minute)))
	}
	return out
}

func TestFindSlot(t *testing.T) {
	slots := []TimeRange{mustRange(t, at(9, 0), at(10, 0))}

	_, ok := FindSlot(slots, at(9, 0))
	assert.True(t, ok)

	_, ok = FindSlot(slots, at(9, 30))
	assert.False(t, ok)
}
