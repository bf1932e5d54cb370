package domain

import "errors"

// Default policy values applied when a rule payload leaves them unset.
const (
	DefaultSlotDurationMinutes = 30
	DefaultSlotCapacity        = 1
)

// Business validation constants.
const (
	MaxNotesLength  = 500
	MaxReasonLength = 500
)

// Time format constants.
const (
	InstantFormat  = "2006-01-02T15:04:05" // hospital-local instants in API payloads
	EndOfDayMarker = "24:00"
)

// ErrWindowEndNotAfterStart is returned when a visiting window's end does
// not lie strictly after its start.
var ErrWindowEndNotAfterStart = errors.New("domain: visit window end must be after start")
