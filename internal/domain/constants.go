package domain

import "time"

// Offering limits
const (
	MinOfferings = 1
	MaxOfferings = 5
)

// Business validation constants
const (
	MinSignLength   = 3
	MaxSignLength   = 16
	MinNameLength   = 1
	MaxNameLength   = 30
	MaxTitleLength  = 60
	MaxNoteLength   = 500
	DefaultCurrency = "CAD"
)

// Ledger defaults
const (
	DefaultPlatformFeeRate = "0.08"
	DefaultHoldPeriod      = 48 * time.Hour
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
