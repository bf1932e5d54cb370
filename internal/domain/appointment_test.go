package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppointment_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name   string
		from   AppointmentStatus
		to     AppointmentStatus
		wantOK bool
	}{
		{"requested to booked", StatusRequested, StatusBooked, true},
		{"requested to denied", StatusRequested, StatusDenied, true},
		{"requested to cancelled", StatusRequested, StatusCancelled, true},
		{"requested to completed", StatusRequested, StatusCompleted, false},
		{"requested to no_show", StatusRequested, StatusNoShow, false},
		{"booked to cancelled", StatusBooked, StatusCancelled, true},
		{"booked to no_show", StatusBooked, StatusNoShow, true},
		{"booked to completed", StatusBooked, StatusCompleted, true},
		{"booked to requested", StatusBooked, StatusRequested, false},
		{"booked to denied", StatusBooked, StatusDenied, false},
		{"cancelled is terminal", StatusCancelled, StatusBooked, false},
		{"denied is terminal", StatusDenied, StatusBooked, false},
		{"no_show is terminal", StatusNoShow, StatusCompleted, false},
		{"completed is terminal", StatusCompleted, StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appt := &Appointment{Status: tt.from}
			assert.Equal(t, tt.wantOK, appt.CanTransitionTo(tt.to))
		})
	}
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: StatusRequested}).IsActive())
	assert.True(t, (&Appointment{Status: StatusBooked}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCancelled}).IsActive())
	assert.False(t, (&Appointment{Status: StatusDenied}).IsActive())
	assert.False(t, (&Appointment{Status: StatusNoShow}).IsActive())
	assert.False(t, (&Appointment{Status: StatusCompleted}).IsActive())
}

func TestEntryStatus(t *testing.T) {
	assert.Equal(t, StatusRequested, EntryStatus(true))
	assert.Equal(t, StatusBooked, EntryStatus(false))
}

func TestParseAppointmentStatus(t *testing.T) {
	got, ok := ParseAppointmentStatus("no_show")
	assert.True(t, ok)
	assert.Equal(t, StatusNoShow, got)

	_, ok = ParseAppointmentStatus("checked_in")
	assert.False(t, ok)

	_, ok = ParseAppointmentStatus("")
	assert.False(t, ok)
}
