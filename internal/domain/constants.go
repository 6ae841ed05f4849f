package domain

// Default policy values, overridable via config.toml
const (
	DefaultTotalSeats         = 50
	DefaultTimezone           = "Asia/Kolkata"
	DefaultAnchorDate         = "2024-01-01" // Monday, start of rotation-week 1
	DefaultAdvanceBookingDays = 14
	DefaultRegularCutoff      = "15:00" // same-day regular booking closes
	DefaultExtraOpen          = "15:00" // previous-day extra booking opens
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04"      // HH:MM
)
