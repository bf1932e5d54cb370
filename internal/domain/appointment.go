package domain

import "time"

// AppointmentStatus is the state of an appointment in its lifecycle.
type AppointmentStatus string

const (
	StatusRequested AppointmentStatus = "requested"
	StatusBooked    AppointmentStatus = "booked"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusDenied    AppointmentStatus = "denied"
	StatusNoShow    AppointmentStatus = "no_show"
	StatusCompleted AppointmentStatus = "completed"
)

// allowedTransitions is the appointment state machine:
// requested → booked | denied | cancelled
// booked    → cancelled | no_show | completed
// Everything else is rejected.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusRequested: {StatusBooked, StatusDenied, StatusCancelled},
	StatusBooked:    {StatusCancelled, StatusNoShow, StatusCompleted},
}

// ActiveStatuses are the statuses that hold slot capacity. The uniqueness
// constraint "at most capacity active appointments per slot" counts exactly
// these.
var ActiveStatuses = []AppointmentStatus{
	StatusRequested,
	StatusBooked,
}

// ParseAppointmentStatus validates a wire-level status string.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusRequested, StatusBooked, StatusCancelled, StatusDenied, StatusNoShow, StatusCompleted:
		return AppointmentStatus(s), true
	}
	return "", false
}

// Appointment binds one visitor to one visit slot.
type Appointment struct {
	ID        int64
	Reference string // public UUID handed to the visitor
	SlotID    int64
	VisitorID int64
	Status    AppointmentStatus
	Notes     *string

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment currently holds slot capacity.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusRequested || a.Status == StatusBooked
}

// IsCancelled returns true once the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanTransitionTo reports whether moving to the target status is allowed by
// the state machine.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[a.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

// EntryStatus returns the status a freshly booked appointment enters at:
// requested when the slot demands staff approval, booked otherwise.
func EntryStatus(requiresApproval bool) AppointmentStatus {
	if requiresApproval {
		return StatusRequested
	}
	return StatusBooked
}
