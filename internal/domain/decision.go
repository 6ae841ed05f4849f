package domain

// DenyReason is a user-facing reason why a booking attempt was rejected
type DenyReason string

const (
	// ReasonPastDate целевая дата раньше сегодняшней
	ReasonPastDate DenyReason = "past date"

	// ReasonBeyondHorizon целевая дата дальше горизонта бронирования
	ReasonBeyondHorizon DenyReason = "exceeds advance-booking horizon"

	// ReasonCutoffPassed окно регулярного бронирования на сегодня закрыто
	ReasonCutoffPassed DenyReason = "regular-booking cutoff passed"

	// ReasonWindowNotOpen окно extra-бронирования еще не открылось
	ReasonWindowNotOpen DenyReason = "extra-booking window not yet open"
)

// Decision is the outcome of the eligibility evaluation for a
// (batch, target date, now) triple. IsExtra is meaningful on both
// allowed and denied outcomes: it classifies what kind of slot the
// attempt was, not whether it succeeded.
type Decision struct {
	Allowed bool
	Reason  DenyReason // empty when Allowed
	IsExtra bool
}

// Allow возвращает положительное решение
func Allow(isExtra bool) Decision {
	return Decision{Allowed: true, IsExtra: isExtra}
}

// Deny возвращает отрицательное решение с причиной
func Deny(reason DenyReason, isExtra bool) Decision {
	return Decision{Allowed: false, Reason: reason, IsExtra: isExtra}
}
