package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/hierarchy"
	"github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

// UseCase materializes and lists visit slots for a bed. Materialization is
// idempotent: the conflict-free upsert never duplicates a (bed, start, end)
// slot and never touches existing rows, so administratively blocked slots
// stay blocked across any number of regenerations.
type UseCase struct {
	resolver     PolicyResolver
	hierarchy    HierarchyService
	slotRepo     SlotRepository
	apptRepo     AppointmentRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the get-available-slots use case.
func NewUseCase(
	resolver PolicyResolver,
	hierarchySvc HierarchyService,
	slotRepo SlotRepository,
	apptRepo AppointmentRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		resolver:     resolver,
		hierarchy:    hierarchySvc,
		slotRepo:     slotRepo,
		apptRepo:     apptRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute resolves policy over the range, materializes missing slots and
// returns all persisted slots with their remaining capacity.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: bed=%d, from=%s, to=%s",
		req.BedID, req.From.Format(domain.InstantFormat), req.To.Format(domain.InstantFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// A disabled bed (or disabled ancestor) exposes no slots.
	active, err := uc.hierarchy.IsActive(ctx, req.BedID)
	if err != nil {
		return nil, uc.mapHierarchyError(req.BedID, err)
	}
	if !active {
		uc.logger.Info("GetAvailableSlots: bed=%d is inactive, returning no slots", req.BedID)
		return &Response{BedID: req.BedID, From: req.From, To: req.To, Slots: []Slot{}}, nil
	}

	// 1. Resolve the effective policy.
	policy, err := uc.resolver.Execute(ctx, &resolve_policy.Request{
		BedID: req.BedID,
		From:  req.From,
		To:    req.To,
	})
	if err != nil {
		return nil, uc.mapResolverError(req.BedID, err)
	}

	// 2. Partition invariant check. A violation here means the resolver is
	//    broken; fail loudly.
	if err := validatePartition(req.From, req.To, policy.Segments); err != nil {
		uc.logger.Error("GetAvailableSlots: bed=%d: %v", req.BedID, err)
		return nil, err
	}

	// 3. Materialize. Past candidates are skipped; duplicates are skipped by
	//    the conflict-free insert.
	candidates := generateCandidates(req.BedID, policy.Segments, uc.timeProvider.Now())
	if len(candidates) > 0 {
		if err := uc.slotRepo.UpsertMany(ctx, candidates); err != nil {
			uc.logger.Error("GetAvailableSlots: failed to upsert %d candidates for bed=%d: %v",
				len(candidates), req.BedID, err)
			return nil, fmt.Errorf("%w: upsert slots: %v", ErrInternal, err)
		}
	}

	// 4. Read back the persisted truth.
	slots, err := uc.slotRepo.GetByBedAndRange(ctx, req.BedID, req.From, req.To)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get slots for bed=%d: %v", req.BedID, err)
		return nil, fmt.Errorf("%w: get slots: %v", ErrInternal, err)
	}

	slotIDs := make([]int64, len(slots))
	for i, s := range slots {
		slotIDs[i] = s.ID
	}

	counts, err := uc.apptRepo.CountActiveBySlots(ctx, slotIDs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to count appointments for bed=%d: %v", req.BedID, err)
		return nil, fmt.Errorf("%w: count appointments: %v", ErrInternal, err)
	}

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			ID:               s.ID,
			StartsAt:         s.StartsAt,
			EndsAt:           s.EndsAt,
			Status:           s.Status,
			Capacity:         s.Capacity,
			AvailableSpots:   s.AvailableSpots(counts[s.ID]),
			RequiresApproval: s.RequiresApproval,
			RuleSetID:        s.RuleSetID,
			ExceptionID:      s.ExceptionID,
		}
	}

	uc.logger.Info("GetAvailableSlots: bed=%d, %d candidates generated, %d slots returned",
		req.BedID, len(candidates), len(result))

	return &Response{
		BedID: req.BedID,
		From:  req.From,
		To:    req.To,
		Slots: result,
	}, nil
}

func (uc *UseCase) mapResolverError(bedID int64, err error) error {
	switch {
	case errors.Is(err, resolve_policy.ErrBedNotFound):
		uc.logger.Warn("GetAvailableSlots: bed id=%d not found", bedID)
		return ErrBedNotFound
	case errors.Is(err, resolve_policy.ErrNotABed):
		uc.logger.Warn("GetAvailableSlots: unit id=%d is not a bed", bedID)
		return ErrNotABed
	case errors.Is(err, resolve_policy.ErrInvalidInterval):
		return ErrInvalidInterval
	}
	uc.logger.Error("GetAvailableSlots: resolver error for bed id=%d: %v", bedID, err)
	return fmt.Errorf("%w: resolve policy: %v", ErrInternal, err)
}

func (uc *UseCase) mapHierarchyError(bedID int64, err error) error {
	if errors.Is(err, hierarchy.ErrUnitNotFound) {
		uc.logger.Warn("GetAvailableSlots: bed id=%d not found", bedID)
		return ErrBedNotFound
	}
	uc.logger.Error("GetAvailableSlots: hierarchy error for bed id=%d: %v", bedID, err)
	return fmt.Errorf("%w: check bed activity: %v", ErrInternal, err)
}
