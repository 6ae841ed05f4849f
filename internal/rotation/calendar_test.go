package rotation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

func testCalendar(t *testing.T) *Calendar {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// Понедельник, старт ротационной недели 1
	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	return NewCalendar(loc, anchor)
}

func TestRotationWeek_AlternatesEveryCalendarWeek(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	tests := []struct {
		name string
		date time.Time
		want int
	}{
		{"anchor monday", time.Date(2024, 1, 1, 0, 0, 0, 0, loc), 1},
		{"friday of anchor week", time.Date(2024, 1, 5, 0, 0, 0, 0, loc), 1},
		{"sunday of anchor week", time.Date(2024, 1, 7, 0, 0, 0, 0, loc), 1},
		{"next monday", time.Date(2024, 1, 8, 0, 0, 0, 0, loc), 2},
		{"end of second week", time.Date(2024, 1, 14, 0, 0, 0, 0, loc), 2},
		{"third week wraps back", time.Date(2024, 1, 15, 0, 0, 0, 0, loc), 1},
		{"full cycle is 14 days", time.Date(2024, 1, 1, 0, 0, 0, 0, loc).AddDate(0, 0, 14), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.RotationWeek(tt.date))
		})
	}
}

func TestRotationWeek_BeforeAnchor(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	// Неделя непосредственно перед якорем - неделя 2, чередование
	// непрерывно продолжается в прошлое
	assert.Equal(t, 2, c.RotationWeek(time.Date(2023, 12, 31, 0, 0, 0, 0, loc)))
	assert.Equal(t, 2, c.RotationWeek(time.Date(2023, 12, 25, 0, 0, 0, 0, loc)))
	assert.Equal(t, 1, c.RotationWeek(time.Date(2023, 12, 18, 0, 0, 0, 0, loc)))
}

func TestRotationWeek_IgnoresTimeOfDay(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	morning := time.Date(2024, 1, 8, 0, 0, 1, 0, loc)
	night := time.Date(2024, 1, 8, 23, 59, 59, 0, loc)

	assert.Equal(t, c.RotationWeek(morning), c.RotationWeek(night))
}

func TestAssignedWeekdays_SwapBetweenWeeks(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	week1 := time.Date(2024, 1, 3, 0, 0, 0, 0, loc)
	week2 := time.Date(2024, 1, 10, 0, 0, 0, 0, loc)

	assert.Equal(t,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday},
		c.AssignedWeekdays(domain.Batch1, week1))
	assert.Equal(t,
		[]time.Weekday{time.Thursday, time.Friday},
		c.AssignedWeekdays(domain.Batch2, week1))

	// На второй неделе батчи меняются местами
	assert.Equal(t,
		[]time.Weekday{time.Thursday, time.Friday},
		c.AssignedWeekdays(domain.Batch1, week2))
	assert.Equal(t,
		[]time.Weekday{time.Monday, time.Tuesday, time.Wednesday},
		c.AssignedWeekdays(domain.Batch2, week2))
}

func TestAssignedWeekdays_BatchesAreDisjointAndCoverWorkweek(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	for _, date := range []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, loc),
		time.Date(2024, 1, 8, 0, 0, 0, 0, loc),
	} {
		seen := map[time.Weekday]int{}
		for _, wd := range c.AssignedWeekdays(domain.Batch1, date) {
			seen[wd]++
		}
		for _, wd := range c.AssignedWeekdays(domain.Batch2, date) {
			seen[wd]++
		}

		// Каждый будний день закреплен ровно за одним батчем
		assert.Len(t, seen, 5)
		for wd, count := range seen {
			assert.Equal(t, 1, count, "weekday %s assigned to %d batches", wd, count)
			assert.NotEqual(t, time.Saturday, wd)
			assert.NotEqual(t, time.Sunday, wd)
		}
	}
}

func TestIsRegularDay(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	tests := []struct {
		name  string
		batch domain.Batch
		date  time.Time
		want  bool
	}{
		{"batch1 monday week1", domain.Batch1, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), true},
		{"batch1 wednesday week1", domain.Batch1, time.Date(2024, 1, 3, 0, 0, 0, 0, loc), true},
		{"batch1 thursday week1", domain.Batch1, time.Date(2024, 1, 4, 0, 0, 0, 0, loc), false},
		{"batch2 thursday week1", domain.Batch2, time.Date(2024, 1, 4, 0, 0, 0, 0, loc), true},
		{"batch2 monday week1", domain.Batch2, time.Date(2024, 1, 1, 0, 0, 0, 0, loc), false},
		{"batch1 monday week2", domain.Batch1, time.Date(2024, 1, 8, 0, 0, 0, 0, loc), false},
		{"batch1 friday week2", domain.Batch1, time.Date(2024, 1, 12, 0, 0, 0, 0, loc), true},
		{"batch2 tuesday week2", domain.Batch2, time.Date(2024, 1, 9, 0, 0, 0, 0, loc), true},
		{"saturday never regular", domain.Batch1, time.Date(2024, 1, 6, 0, 0, 0, 0, loc), false},
		{"sunday never regular", domain.Batch2, time.Date(2024, 1, 7, 0, 0, 0, 0, loc), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.IsRegularDay(tt.batch, tt.date))
		})
	}
}

func TestStartOfDay_NormalizesToPolicyTimezone(t *testing.T) {
	c := testCalendar(t)
	loc := c.Location()

	// 20:00 UTC 1 января - уже 2 января по IST (+05:30)
	utcEvening := time.Date(2024, 1, 1, 20, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, loc), c.StartOfDay(utcEvening))
}
