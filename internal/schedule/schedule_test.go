package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var paris = mustLoad("Europe/Paris")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic(err)
	}
	return loc
}

func workday(t *testing.T) (time.Time, time.Time) {
	t.Helper()
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, paris)
	end := time.Date(2026, 3, 10, 17, 0, 0, 0, paris)
	return start, end
}

func TestGenerateSlotsTiling(t *testing.T) {
	start, end := workday(t)
	slots := GenerateSlots(start, end, 30*time.Minute)

	require.Len(t, slots, 16)
	assert.True(t, slots[0].Start.Equal(start))
	assert.True(t, slots[len(slots)-1].End.Equal(end))
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].End.Equal(slots[i].Start), "slots must be contiguous at index %d", i)
	}
}

func TestGenerateSlotsUnevenRemainder(t *testing.T) {
	start, end := workday(t)
	slots := GenerateSlots(start, end, 45*time.Minute)

	// 8h day / 45min = 10 full slots, 30 minutes left unused. Tiling is
	// contiguous from day start, so the final slot runs 15:45-16:30 and
	// the trailing half hour stays unbookable.
	require.Len(t, slots, 10)
	last := slots[len(slots)-1]
	assert.Equal(t, "15:45", last.Start.Format("15:04"))
	assert.Equal(t, "16:30", last.End.Format("15:04"))
	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].End.Equal(slots[i].Start), "slots must be contiguous at index %d", i)
	}
}

func TestGenerateSlotsDurationLongerThanDay(t *testing.T) {
	start, end := workday(t)
	assert.Empty(t, GenerateSlots(start, end, 9*time.Hour))
}

func TestGenerateSlotsNonPositiveDuration(t *testing.T) {
	start, end := workday(t)
	assert.Empty(t, GenerateSlots(start, end, 0))
	assert.Empty(t, GenerateSlots(start, end, -time.Minute))
}

func TestFilterAvailableRemovesConflicts(t *testing.T) {
	start, end := workday(t)
	slots := GenerateSlots(start, end, 30*time.Minute)
	busy := []Interval{{
		Start: time.Date(2026, 3, 10, 10, 0, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 10, 30, 0, 0, paris),
	}}

	available := FilterAvailable(slots, busy)

	require.Len(t, available, 15)
	starts := make([]string, 0, len(available))
	for _, s := range available {
		starts = append(starts, s.Start.Format("15:04"))
	}
	assert.NotContains(t, starts, "10:00")
	assert.Contains(t, starts, "09:30")
	assert.Contains(t, starts, "10:30")
}

func TestFilterAvailableTouchingEndpointsAreFree(t *testing.T) {
	slot := Interval{
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 9, 30, 0, 0, paris),
	}
	beforeTouch := Interval{
		Start: time.Date(2026, 3, 10, 8, 0, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 9, 0, 0, 0, paris),
	}
	afterTouch := Interval{
		Start: time.Date(2026, 3, 10, 9, 30, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 10, 0, 0, 0, paris),
	}

	available := FilterAvailable([]Interval{slot}, []Interval{beforeTouch, afterTouch})
	assert.Len(t, available, 1)
}

func TestFilterAvailablePartialOverlapConflicts(t *testing.T) {
	slot := Interval{
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 9, 45, 0, 0, paris),
	}
	busy := Interval{
		Start: time.Date(2026, 3, 10, 9, 30, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 10, 0, 0, 0, paris),
	}

	assert.Empty(t, FilterAvailable([]Interval{slot}, []Interval{busy}))
}

func TestFilterAvailableBusyInsideSlot(t *testing.T) {
	slot := Interval{
		Start: time.Date(2026, 3, 10, 9, 0, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 10, 0, 0, 0, paris),
	}
	busy := Interval{
		Start: time.Date(2026, 3, 10, 9, 15, 0, 0, paris),
		End:   time.Date(2026, 3, 10, 9, 30, 0, 0, paris),
	}

	assert.Empty(t, FilterAvailable([]Interval{slot}, []Interval{busy}))
}

func TestFilterAvailableNoBusyKeepsOrder(t *testing.T) {
	start, end := workday(t)
	slots := GenerateSlots(start, end, 30*time.Minute)
	available := FilterAvailable(slots, nil)
	require.Equal(t, slots, available)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("09:00")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 9}, c)

	c, err = ParseClock("16:45")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 16, Minute: 45}, c)

	_, err = ParseClock("9am")
	assert.Error(t, err)
}

func TestClockOn(t *testing.T) {
	at := Clock{Hour: 9, Minute: 30}.On(2026, time.March, 10, paris)
	assert.Equal(t, "2026-03-10 09:30", at.Format("2006-01-02 15:04"))
	assert.Equal(t, paris, at.Location())
}
