package book_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	slotstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/slot"
	visitorstorage "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/visitor"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/hierarchy"
)

// UseCase books a visitor into a visit slot. The capacity check and the
// insert run inside one serializable transaction with the slot row and the
// active appointment rows locked, so two concurrent bookings of the last
// spot cannot both succeed.
type UseCase struct {
	slotRepo     SlotRepository
	apptRepo     AppointmentRepository
	visitorRepo  VisitorRepository
	hierarchy    HierarchyService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

func NewUseCase(
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	visitorRepo VisitorRepository,
	hierarchySvc HierarchyService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		slotRepo:     slotRepo,
		apptRepo:     apptRepo,
		visitorRepo:  visitorRepo,
		hierarchy:    hierarchySvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute books the slot for the visitor. The appointment enters as
// requested when the slot demands approval and as booked otherwise.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("BookAppointment: invalid request: %v", err)
		return nil, err
	}

	// Visitor lookup does not need the lock, keep it outside the transaction.
	if _, err := uc.visitorRepo.GetByID(ctx, req.VisitorID); err != nil {
		if errors.Is(err, visitorstorage.ErrVisitorNotFound) {
			return nil, fmt.Errorf("%w: visitor %d", ErrVisitorNotFound, req.VisitorID)
		}
		uc.logger.Error("BookAppointment: failed to load visitor %d: %v", req.VisitorID, err)
		return nil, fmt.Errorf("%w: Execute - load visitor: %v", ErrInternal, err)
	}

	var created *domain.Appointment
	var slot *domain.VisitSlot

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		var txErr error
		created, slot, txErr = uc.bookLocked(txCtx, req)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("BookAppointment: appointment %d (%s) created for visitor %d on slot %d with status %s",
		created.ID, created.Reference, created.VisitorID, created.SlotID, created.Status)

	return &Response{
		ID:        created.ID,
		Reference: created.Reference,
		SlotID:    created.SlotID,
		VisitorID: created.VisitorID,
		Status:    created.Status,
		StartsAt:  slot.StartsAt,
		EndsAt:    slot.EndsAt,
		CreatedAt: created.CreatedAt,
	}, nil
}

// bookLocked runs inside the serializable transaction. GetByID and
// ListActiveBySlot add FOR UPDATE in transactional context, so the slot and
// its active appointments stay fixed until commit.
func (uc *UseCase) bookLocked(ctx context.Context, req *Request) (*domain.Appointment, *domain.VisitSlot, error) {
	slot, err := uc.slotRepo.GetByID(ctx, req.SlotID)
	if err != nil {
		if errors.Is(err, slotstorage.ErrSlotNotFound) {
			return nil, nil, fmt.Errorf("%w: slot %d", ErrSlotNotFound, req.SlotID)
		}
		uc.logger.Error("BookAppointment: failed to load slot %d: %v", req.SlotID, err)
		return nil, nil, fmt.Errorf("%w: bookLocked - load slot: %v", ErrInternal, err)
	}

	if slot.IsBlocked() {
		return nil, nil, fmt.Errorf("%w: slot %d is blocked", ErrSlotUnavailable, slot.ID)
	}

	if slot.IsPast(uc.timeProvider.Now()) {
		return nil, nil, fmt.Errorf("%w: slot %d has already started", ErrSlotUnavailable, slot.ID)
	}

	active, err := uc.hierarchy.IsActive(ctx, slot.BedID)
	if err != nil {
		if errors.Is(err, hierarchy.ErrUnitNotFound) {
			return nil, nil, fmt.Errorf("%w: bed %d for slot %d", ErrSlotNotFound, slot.BedID, slot.ID)
		}
		uc.logger.Error("BookAppointment: failed to check bed %d activity: %v", slot.BedID, err)
		return nil, nil, fmt.Errorf("%w: bookLocked - check bed activity: %v", ErrInternal, err)
	}
	if !active {
		return nil, nil, fmt.Errorf("%w: bed %d is inactive", ErrSlotUnavailable, slot.BedID)
	}

	occupants, err := uc.apptRepo.ListActiveBySlot(ctx, slot.ID)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to list active appointments for slot %d: %v", slot.ID, err)
		return nil, nil, fmt.Errorf("%w: bookLocked - list active appointments: %v", ErrInternal, err)
	}

	if len(occupants) >= slot.Capacity {
		uc.logger.Info("BookAppointment: slot %d at capacity: %d of %d", slot.ID, len(occupants), slot.Capacity)
		return nil, nil, fmt.Errorf("%w: slot %d is at capacity", ErrSlotUnavailable, slot.ID)
	}

	appt := &domain.Appointment{
		Reference: uuid.NewString(),
		SlotID:    slot.ID,
		VisitorID: req.VisitorID,
		Status:    domain.EntryStatus(slot.RequiresApproval),
		Notes:     req.Notes,
	}

	created, err := uc.apptRepo.Create(ctx, appt)
	if err != nil {
		uc.logger.Error("BookAppointment: failed to create appointment for slot %d: %v", slot.ID, err)
		return nil, nil, fmt.Errorf("%w: bookLocked - create appointment: %v", ErrInternal, err)
	}

	return created, slot, nil
}
