package appointments

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	appointmentstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/appointment"
	slotstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/slot"
)

type fakeApptRepo struct {
	appointments map[int64]*domain.Appointment

	// readStatus, when set, makes GetByID report a stale status while the
	// stored row keeps its real one, as if another writer landed in between.
	readStatus *domain.AppointmentStatus
}

func (f *fakeApptRepo) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.appointments[id]
	if !ok {
		return nil, appointmentstorage.ErrAppointmentNotFound
	}
	copied := *appt
	if f.readStatus != nil {
		copied.Status = *f.readStatus
	}
	return &copied, nil
}

func (f *fakeApptRepo) GetByVisitor(_ context.Context, visitorID int64, status *domain.AppointmentStatus) ([]*domain.Appointment, error) {
	out := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.VisitorID != visitorID {
			continue
		}
		if status != nil && a.Status != *status {
			continue
		}
		copied := *a
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeApptRepo) UpdateStatus(_ context.Context, id int64, status, from domain.AppointmentStatus) error {
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return appointmentstorage.ErrStatusConflict
	}
	appt.Status = status
	return nil
}

func (f *fakeApptRepo) Cancel(_ context.Context, id int64, reason *string, from domain.AppointmentStatus) error {
	now := time.Now()
	appt, ok := f.appointments[id]
	if !ok || appt.Status != from {
		return appointmentstorage.ErrStatusConflict
	}
	appt.Status = domain.StatusCancelled
	appt.CancellationReason = reason
	appt.CancelledAt = &now
	return nil
}

type fakeSlotRepo struct {
	slots map[int64]*domain.VisitSlot
}

func (f *fakeSlotRepo) GetByID(_ context.Context, id int64) (*domain.VisitSlot, error) {
	slot, ok := f.slots[id]
	if !ok {
		return nil, slotstorage.ErrSlotNotFound
	}
	return slot, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService(status domain.AppointmentStatus) (*Service, *fakeApptRepo) {
	apptRepo := &fakeApptRepo{appointments: map[int64]*domain.Appointment{
		1: {ID: 1, Reference: "ref-1", SlotID: 10, VisitorID: 7, Status: status},
	}}
	slotRepo := &fakeSlotRepo{slots: map[int64]*domain.VisitSlot{
		10: {ID: 10, BedID: 5, StartsAt: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC)},
	}}
	return NewService(apptRepo, slotRepo, nopLogger{}), apptRepo
}

func TestService_GetByID(t *testing.T) {
	svc, _ := newTestService(domain.StatusBooked)

	view, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), view.Appointment.ID)
	assert.Equal(t, int64(5), view.Slot.BedID)

	_, err = svc.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestService_Cancel(t *testing.T) {
	svc, repo := newTestService(domain.StatusBooked)

	view, err := svc.Cancel(context.Background(), 1, "family emergency")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, view.Appointment.Status)
	require.NotNil(t, view.Appointment.CancellationReason)
	assert.Equal(t, "family emergency", *view.Appointment.CancellationReason)
	assert.NotNil(t, repo.appointments[1].CancelledAt)
}

func TestService_Cancel_Idempotent(t *testing.T) {
	svc, _ := newTestService(domain.StatusCancelled)

	view, err := svc.Cancel(context.Background(), 1, "again")
	require.NoError(t, err, "cancelling a cancelled appointment is a no-op success")
	assert.Equal(t, domain.StatusCancelled, view.Appointment.Status)
}

func TestService_Cancel_TerminalStates(t *testing.T) {
	for _, status := range []domain.AppointmentStatus{
		domain.StatusCompleted,
		domain.StatusNoShow,
		domain.StatusDenied,
	} {
		svc, _ := newTestService(status)
		_, err := svc.Cancel(context.Background(), 1, "too late")
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestService_Cancel_ConcurrentStatusChange(t *testing.T) {
	svc, repo := newTestService(domain.StatusCompleted)
	stale := domain.StatusBooked
	repo.readStatus = &stale

	_, err := svc.Cancel(context.Background(), 1, "too late")
	assert.ErrorIs(t, err, ErrInvalidTransition,
		"a cancel that saw booked must not land on a row that completed meanwhile")
	assert.Equal(t, domain.StatusCompleted, repo.appointments[1].Status)
}

func TestService_Transition_ConcurrentStatusChange(t *testing.T) {
	svc, repo := newTestService(domain.StatusCancelled)
	stale := domain.StatusBooked
	repo.readStatus = &stale

	_, err := svc.Transition(context.Background(), 1, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, domain.StatusCancelled, repo.appointments[1].Status,
		"the cancelled appointment must not be revived")
}

func TestService_Transition(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AppointmentStatus
		to      domain.AppointmentStatus
		wantErr bool
	}{
		{"approve", domain.StatusRequested, domain.StatusBooked, false},
		{"deny", domain.StatusRequested, domain.StatusDenied, false},
		{"no show", domain.StatusBooked, domain.StatusNoShow, false},
		{"complete", domain.StatusBooked, domain.StatusCompleted, false},
		{"complete a request", domain.StatusRequested, domain.StatusCompleted, true},
		{"revive a denial", domain.StatusDenied, domain.StatusBooked, true},
		{"re-book completed", domain.StatusCompleted, domain.StatusBooked, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(tt.from)
			view, err := svc.Transition(context.Background(), 1, tt.to)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, view.Appointment.Status)
		})
	}
}

func TestService_GetByVisitor(t *testing.T) {
	svc, repo := newTestService(domain.StatusBooked)
	repo.appointments[2] = &domain.Appointment{ID: 2, SlotID: 10, VisitorID: 7, Status: domain.StatusCancelled}
	repo.appointments[3] = &domain.Appointment{ID: 3, SlotID: 10, VisitorID: 8, Status: domain.StatusBooked}

	views, err := svc.GetByVisitor(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Len(t, views, 2)

	booked := domain.StatusBooked
	views, err = svc.GetByVisitor(context.Background(), 7, &booked)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, int64(1), views[0].Appointment.ID)

	views, err = svc.GetByVisitor(context.Background(), 99, nil)
	require.NoError(t, err)
	assert.Empty(t, views, "unknown visitor yields an empty list, not an error")
}
