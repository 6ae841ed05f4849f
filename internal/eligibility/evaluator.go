package eligibility

import (
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
	"github.com/wissen-infra/seat-booking-service/internal/rotation"
	"github.com/wissen-infra/seat-booking-service/pkg/types"
)

// Evaluator решает, разрешено ли бронирование для тройки
// (батч, целевая дата, текущий момент), и классифицирует его как
// регулярное или extra. Чистая функция своих входов: "now" всегда
// передается явно, скрытого состояния нет
type Evaluator struct {
	calendar      *rotation.Calendar
	horizonDays   int
	regularCutoff types.TimeString // закрытие регулярного бронирования в целевой день
	extraOpen     types.TimeString // открытие extra-бронирования накануне целевого дня
}

// NewEvaluator создает evaluator правил бронирования
func NewEvaluator(calendar *rotation.Calendar, horizonDays int, regularCutoff, extraOpen types.TimeString) *Evaluator {
	return &Evaluator{
		calendar:      calendar,
		horizonDays:   horizonDays,
		regularCutoff: regularCutoff,
		extraOpen:     extraOpen,
	}
}

// Evaluate применяет правила по порядку, первое сработавшее - решающее:
//  1. дата в прошлом - отказ
//  2. дата дальше горизонта бронирования - отказ
//  3. регулярный день: разрешено до cutoff в сам день (в день брони
//     ровно в 15:00 окно уже закрыто)
//  4. нерегулярный день: extra-слот, открывается в 15:00 накануне
//     (ровно в 15:00 окно уже открыто) и действует до горизонта
func (e *Evaluator) Evaluate(batch domain.Batch, targetDate, now time.Time) domain.Decision {
	localNow := e.calendar.ToLocal(now)
	today := e.calendar.StartOfDay(localNow)
	target := e.calendar.StartOfDay(targetDate)

	if target.Before(today) {
		return domain.Deny(domain.ReasonPastDate, false)
	}

	horizon := today.AddDate(0, 0, e.horizonDays)
	if target.After(horizon) {
		return domain.Deny(domain.ReasonBeyondHorizon, false)
	}

	if e.calendar.IsRegularDay(batch, target) {
		if target.Equal(today) && !types.NewTimeString(localNow).IsBefore(e.regularCutoff) {
			return domain.Deny(domain.ReasonCutoffPassed, false)
		}
		return domain.Allow(false)
	}

	if !localNow.Before(e.extraOpenInstant(target)) {
		return domain.Allow(true)
	}
	return domain.Deny(domain.ReasonWindowNotOpen, true)
}

// extraOpenInstant момент открытия extra-окна: extraOpen накануне целевой даты
func (e *Evaluator) extraOpenInstant(target time.Time) time.Time {
	prev := target.AddDate(0, 0, -1)
	hour, minute, _ := e.extraOpen.Clock()
	return time.Date(prev.Year(), prev.Month(), prev.Day(), hour, minute, 0, 0, e.calendar.Location())
}
