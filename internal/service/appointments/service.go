package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	appointmentstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/appointment"
	slotstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/slot"
)

// AppointmentView is an appointment enriched with its slot times.
type AppointmentView struct {
	Appointment *domain.Appointment
	Slot        *domain.VisitSlot
}

// Service drives the appointment status lifecycle. All transitions go
// through the domain state machine; the service never writes a status the
// machine forbids.
type Service struct {
	apptRepo AppointmentRepository
	slotRepo SlotRepository
	logger   Logger
}

func NewService(apptRepo AppointmentRepository, slotRepo SlotRepository, logger Logger) *Service {
	return &Service{
		apptRepo: apptRepo,
		slotRepo: slotRepo,
		logger:   logger,
	}
}

// GetByID returns the appointment with its slot.
func (s *Service) GetByID(ctx context.Context, id int64) (*AppointmentView, error) {
	appt, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, appt)
}

// GetByVisitor returns the visitor's appointments, optionally filtered by
// status, newest first. A visitor with no appointments gets an empty list.
func (s *Service) GetByVisitor(ctx context.Context, visitorID int64, status *domain.AppointmentStatus) ([]*AppointmentView, error) {
	appts, err := s.apptRepo.GetByVisitor(ctx, visitorID, status)
	if err != nil {
		s.logger.Error("GetByVisitor: repository error for visitor id=%d: %v", visitorID, err)
		return nil, fmt.Errorf("%w: GetByVisitor - list appointments: %v", ErrInternal, err)
	}

	views := make([]*AppointmentView, 0, len(appts))
	for _, appt := range appts {
		view, err := s.enrich(ctx, appt)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}

	return views, nil
}

// Cancel cancels an appointment. Cancelling an already cancelled appointment
// is a no-op success, so clients can retry safely. A cancelled appointment
// stops counting against slot capacity the moment the write lands.
func (s *Service) Cancel(ctx context.Context, id int64, reason string) (*AppointmentView, error) {
	appt, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if appt.IsCancelled() {
		s.logger.Info("Cancel: appointment id=%d already cancelled, no-op", id)
		return s.enrich(ctx, appt)
	}

	if !appt.CanTransitionTo(domain.StatusCancelled) {
		return nil, fmt.Errorf("%w: cannot cancel appointment %d in status %s", ErrInvalidTransition, id, appt.Status)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}

	if err := s.apptRepo.Cancel(ctx, id, reasonPtr, appt.Status); err != nil {
		if errors.Is(err, appointmentstorage.ErrStatusConflict) {
			s.logger.Warn("Cancel: appointment id=%d left status %s concurrently", id, appt.Status)
			return nil, fmt.Errorf("%w: appointment %d changed status concurrently", ErrInvalidTransition, id)
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - update appointment: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: appointment id=%d cancelled from status %s", id, appt.Status)

	appt, err = s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, appt)
}

// Transition moves the appointment to the target status. Approve is
// requested to booked, deny is requested to denied, no-show and completed
// require booked. Anything else fails with ErrInvalidTransition.
func (s *Service) Transition(ctx context.Context, id int64, target domain.AppointmentStatus) (*AppointmentView, error) {
	appt, err := s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	if !appt.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: appointment %d cannot move from %s to %s", ErrInvalidTransition, id, appt.Status, target)
	}

	if err := s.apptRepo.UpdateStatus(ctx, id, target, appt.Status); err != nil {
		if errors.Is(err, appointmentstorage.ErrStatusConflict) {
			s.logger.Warn("Transition: appointment id=%d left status %s concurrently", id, appt.Status)
			return nil, fmt.Errorf("%w: appointment %d changed status concurrently", ErrInvalidTransition, id)
		}
		s.logger.Error("Transition: repository error for appointment id=%d, target=%s: %v", id, target, err)
		return nil, fmt.Errorf("%w: Transition - update status: %v", ErrInternal, err)
	}

	s.logger.Info("Transition: appointment id=%d moved from %s to %s", id, appt.Status, target)

	appt, err = s.loadAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	return s.enrich(ctx, appt)
}

func (s *Service) loadAppointment(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentstorage.ErrAppointmentNotFound) {
			return nil, fmt.Errorf("%w: appointment %d", ErrAppointmentNotFound, id)
		}
		s.logger.Error("loadAppointment: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: loadAppointment: %v", ErrInternal, err)
	}

	return appt, nil
}

func (s *Service) enrich(ctx context.Context, appt *domain.Appointment) (*AppointmentView, error) {
	slot, err := s.slotRepo.GetByID(ctx, appt.SlotID)
	if err != nil {
		if errors.Is(err, slotstorage.ErrSlotNotFound) {
			// Slot rows are never deleted while appointments reference
			// them, so treat a miss as corruption.
			s.logger.Error("enrich: slot id=%d missing for appointment id=%d", appt.SlotID, appt.ID)
			return nil, fmt.Errorf("%w: enrich - slot %d missing", ErrInternal, appt.SlotID)
		}
		s.logger.Error("enrich: repository error for slot id=%d, appointment id=%d: %v", appt.SlotID, appt.ID, err)
		return nil, fmt.Errorf("%w: enrich - load slot: %v", ErrInternal, err)
	}

	return &AppointmentView{Appointment: appt, Slot: slot}, nil
}
