package eligibility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/rotation"
	"github.com/wissen-infra/seat-booking-service/pkg/types"
)

func testEvaluator(t *testing.T) (*Evaluator, *time.Location) {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	anchor := time.Date(2024, 1, 1, 0, 0, 0, 0, loc)
	calendar := rotation.NewCalendar(loc, anchor)

	cutoff, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)
	extraOpen, err := types.NewTimeStringFromString("15:00")
	require.NoError(t, err)

	return NewEvaluator(calendar, 14, cutoff, extraOpen), loc
}

func ist(loc *time.Location, day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, loc)
}

func TestEvaluate_PastDate(t *testing.T) {
	e, loc := testEvaluator(t)

	now := ist(loc, 10, 10, 0)
	decision := e.Evaluate(domain.Batch1, ist(loc, 9, 0, 0), now)

	assert.False(t, decision.Allowed)
	assert.Equal(t, domain.ReasonPastDate, decision.Reason)
}

func TestEvaluate_Horizon(t *testing.T) {
	e, loc := testEvaluator(t)

	// 1 января, понедельник недели 1, батч 1
	now := ist(loc, 1, 10, 0)

	t.Run("beyond horizon denied", func(t *testing.T) {
		decision := e.Evaluate(domain.Batch1, ist(loc, 21, 0, 0), now)
		assert.False(t, decision.Allowed)
		assert.Equal(t, domain.ReasonBeyondHorizon, decision.Reason)
	})

	t.Run("exactly 14 days ahead allowed", func(t *testing.T) {
		// 15 января - понедельник недели 1 следующего цикла, регулярный день батча 1
		decision := e.Evaluate(domain.Batch1, ist(loc, 15, 0, 0), now)
		assert.True(t, decision.Allowed)
		assert.False(t, decision.IsExtra)
	})
}

func TestEvaluate_RegularDayCutoff(t *testing.T) {
	e, loc := testEvaluator(t)

	// 1 января - регулярный день батча 1 (понедельник недели 1)
	target := ist(loc, 1, 0, 0)

	tests := []struct {
		name    string
		now     time.Time
		allowed bool
		reason  domain.DenyReason
	}{
		{"morning of target day", ist(loc, 1, 10, 0), true, ""},
		{"one minute before cutoff", ist(loc, 1, 14, 59), true, ""},
		{"exactly at cutoff window is closed", ist(loc, 1, 15, 0), false, domain.ReasonCutoffPassed},
		{"after cutoff", ist(loc, 1, 18, 30), false, domain.ReasonCutoffPassed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := e.Evaluate(domain.Batch1, target, tt.now)
			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, tt.reason, decision.Reason)
			} else {
				assert.False(t, decision.IsExtra)
			}
		})
	}
}

func TestEvaluate_CutoffOnlyAppliesToSameDay(t *testing.T) {
	e, loc := testEvaluator(t)

	// Вечер понедельника, бронь на вторник (регулярный день батча 1):
	// cutoff относится только к дню брони
	decision := e.Evaluate(domain.Batch1, ist(loc, 2, 0, 0), ist(loc, 1, 18, 0))

	assert.True(t, decision.Allowed)
	assert.False(t, decision.IsExtra)
}

func TestEvaluate_ExtraWindow(t *testing.T) {
	e, loc := testEvaluator(t)

	// 1 января - не день батча 2 (у него Чт/Пт на неделе 1), значит extra-слот
	target := ist(loc, 1, 0, 0)

	tests := []struct {
		name    string
		now     time.Time
		allowed bool
		reason  domain.DenyReason
	}{
		{"two days before", time.Date(2023, 12, 30, 16, 0, 0, 0, loc), false, domain.ReasonWindowNotOpen},
		{"eve before open time", time.Date(2023, 12, 31, 14, 59, 0, 0, loc), false, domain.ReasonWindowNotOpen},
		{"eve exactly at open time", time.Date(2023, 12, 31, 15, 0, 0, 0, loc), true, ""},
		{"morning of target day", ist(loc, 1, 9, 0), true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := e.Evaluate(domain.Batch2, target, tt.now)
			assert.Equal(t, tt.allowed, decision.Allowed)
			assert.True(t, decision.IsExtra)
			if !tt.allowed {
				assert.Equal(t, tt.reason, decision.Reason)
			}
		})
	}
}

func TestEvaluate_WeekendIsAlwaysExtra(t *testing.T) {
	e, loc := testEvaluator(t)

	// 6 января - суббота, выходные не закреплены ни за одним батчем
	target := ist(loc, 6, 0, 0)

	denied := e.Evaluate(domain.Batch1, target, ist(loc, 5, 14, 0))
	assert.False(t, denied.Allowed)
	assert.Equal(t, domain.ReasonWindowNotOpen, denied.Reason)
	assert.True(t, denied.IsExtra)

	allowed := e.Evaluate(domain.Batch1, target, ist(loc, 5, 15, 0))
	assert.True(t, allowed.Allowed)
	assert.True(t, allowed.IsExtra)
}

func TestEvaluate_NormalizesNowToPolicyTimezone(t *testing.T) {
	e, loc := testEvaluator(t)

	// 09:30 UTC = ровно 15:00 IST: окно регулярной брони на сегодня закрыто
	target := ist(loc, 1, 0, 0)

	atCutoff := e.Evaluate(domain.Batch1, target, time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC))
	assert.False(t, atCutoff.Allowed)
	assert.Equal(t, domain.ReasonCutoffPassed, atCutoff.Reason)

	beforeCutoff := e.Evaluate(domain.Batch1, target, time.Date(2024, 1, 1, 9, 29, 0, 0, time.UTC))
	assert.True(t, beforeCutoff.Allowed)
}
