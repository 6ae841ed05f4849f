package rotation

import (
	"time"

	"github.com/wissen-infra/seat-booking-service/internal/domain"
)

// Calendar отображает календарное время на двухнедельную ротацию посещения
// офиса. Все вычисления ведутся в одном фиксированном часовом поясе
// организации: политика ("до 15:00") должна оцениваться по одним и тем же
// настенным часам независимо от того, откуда пришел запрос.
type Calendar struct {
	loc    *time.Location
	anchor time.Time // начало дня-якоря в loc, старт ротационной недели 1
}

// NewCalendar создает календарь ротации
// anchor интерпретируется как локальная календарная дата в loc
func NewCalendar(loc *time.Location, anchor time.Time) *Calendar {
	c := &Calendar{loc: loc}
	c.anchor = c.StartOfDay(anchor.In(loc))
	return c
}

// Location возвращает часовой пояс политики
func (c *Calendar) Location() *time.Location {
	return c.loc
}

// ToLocal проецирует произвольный абсолютный момент в часовой пояс политики
func (c *Calendar) ToLocal(t time.Time) time.Time {
	return t.In(c.loc)
}

// StartOfDay отбрасывает время суток, оставляя локальную календарную дату
func (c *Calendar) StartOfDay(t time.Time) time.Time {
	local := c.ToLocal(t)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc)
}

// daysSinceAnchor считает количество календарных дней между якорем и датой
// Считаем через полночь UTC, чтобы переводы часов не ломали арифметику дней
func (c *Calendar) daysSinceAnchor(date time.Time) int {
	d := c.StartOfDay(date)
	dUTC := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	aUTC := time.Date(c.anchor.Year(), c.anchor.Month(), c.anchor.Day(), 0, 0, 0, 0, time.UTC)
	return int(dUTC.Sub(aUTC) / (24 * time.Hour))
}

// floorDiv целочисленное деление с округлением вниз (а не к нулю),
// чтобы даты до якоря продолжали чередоваться корректно
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// RotationWeek возвращает активную ротационную неделю {1, 2} для даты
// Чередование идет по чётности недели от якоря, а не по числу дней
func (c *Calendar) RotationWeek(date time.Time) int {
	weeks := floorDiv(c.daysSinceAnchor(date), 7)
	parity := weeks % 2
	if parity < 0 {
		parity += 2
	}
	if parity == 0 {
		return 1
	}
	return 2
}

// AssignedWeekdays возвращает дни недели, закрепленные за батчем на дату
// Неделя 1: батч 1 - Пн/Вт/Ср, батч 2 - Чт/Пт; неделя 2 - наоборот
// Выходные не закрепляются ни за одним батчем
func (c *Calendar) AssignedWeekdays(batch domain.Batch, date time.Time) []time.Weekday {
	week := c.RotationWeek(date)

	earlyWeek := []time.Weekday{time.Monday, time.Tuesday, time.Wednesday}
	lateWeek := []time.Weekday{time.Thursday, time.Friday}

	if week == 1 {
		if batch == domain.Batch1 {
			return earlyWeek
		}
		return lateWeek
	}
	if batch == domain.Batch1 {
		return lateWeek
	}
	return earlyWeek
}

// IsRegularDay возвращает true, если дата - закрепленный за батчем будний день
func (c *Calendar) IsRegularDay(batch domain.Batch, date time.Time) bool {
	weekday := c.ToLocal(date).Weekday()
	if weekday == time.Saturday || weekday == time.Sunday {
		return false
	}

	for _, assigned := range c.AssignedWeekdays(batch, date) {
		if assigned == weekday {
			return true
		}
	}
	return false
}
