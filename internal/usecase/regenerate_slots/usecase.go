package regenerate_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	locationRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/locationunit"
	"github.com/vkotelnikov/HVS-VisitService/internal/usecase/resolve_policy"
)

// UseCase re-materializes visit slots after an administrative rule or
// exception change. Only future, open, appointment-free slots are
// invalidated; booked, past and blocked slots are never touched. The
// delete-and-regenerate step runs in one serializable transaction, so a
// failing regeneration leaves the previous slots intact.
type UseCase struct {
	locationRepo LocationUnitRepository
	resolver     PolicyResolver
	slotRepo     SlotRepository
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase creates the regenerate-slots use case.
func NewUseCase(
	locRepo LocationUnitRepository,
	resolver PolicyResolver,
	slotRepo SlotRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		locationRepo: locRepo,
		resolver:     resolver,
		slotRepo:     slotRepo,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute regenerates slots for every bed under req.UnitID.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RegenerateSlots: unit=%d, from=%s, to=%s",
		req.UnitID, req.From.Format(domain.InstantFormat), req.To.Format(domain.InstantFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("RegenerateSlots: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	from := req.From
	if from.Before(now) {
		// Past slots are immutable history.
		from = now
	}
	if !req.To.After(from) {
		uc.logger.Info("RegenerateSlots: unit=%d: range is entirely in the past, nothing to do", req.UnitID)
		return &Response{UnitID: req.UnitID}, nil
	}

	if _, err := uc.locationRepo.GetByID(ctx, req.UnitID); err != nil {
		if errors.Is(err, locationRepo.ErrUnitNotFound) {
			uc.logger.Warn("RegenerateSlots: unit id=%d not found", req.UnitID)
			return nil, ErrUnitNotFound
		}
		uc.logger.Error("RegenerateSlots: failed to get unit id=%d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: get unit: %v", ErrInternal, err)
	}

	beds, err := uc.locationRepo.ListBedsUnder(ctx, req.UnitID)
	if err != nil {
		uc.logger.Error("RegenerateSlots: failed to list beds under unit id=%d: %v", req.UnitID, err)
		return nil, fmt.Errorf("%w: list beds: %v", ErrInternal, err)
	}
	if len(beds) == 0 {
		uc.logger.Info("RegenerateSlots: unit=%d has no beds", req.UnitID)
		return &Response{UnitID: req.UnitID}, nil
	}

	bedIDs := make([]int64, len(beds))
	for i, bed := range beds {
		bedIDs[i] = bed.ID
	}

	var deleted int64
	var candidateCount int

	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		d, err := uc.slotRepo.DeleteRegenerable(txCtx, bedIDs, from, req.To)
		if err != nil {
			return fmt.Errorf("%w: delete regenerable slots: %v", ErrInternal, err)
		}
		deleted = d

		for _, bedID := range bedIDs {
			policy, err := uc.resolver.Execute(txCtx, &resolve_policy.Request{
				BedID: bedID,
				From:  from,
				To:    req.To,
			})
			if err != nil {
				return fmt.Errorf("%w: resolve policy for bed id=%d: %v", ErrInternal, bedID, err)
			}

			if err := validatePartition(from, req.To, policy.Segments); err != nil {
				uc.logger.Error("RegenerateSlots: bed=%d: %v", bedID, err)
				return err
			}

			candidates := generateCandidates(bedID, policy.Segments, now)
			candidateCount += len(candidates)
			if len(candidates) == 0 {
				continue
			}
			if err := uc.slotRepo.UpsertMany(txCtx, candidates); err != nil {
				return fmt.Errorf("%w: upsert slots for bed id=%d: %v", ErrInternal, bedID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RegenerateSlots: unit=%d, beds=%d, deleted=%d, candidates=%d",
		req.UnitID, len(beds), deleted, candidateCount)

	return &Response{
		UnitID:       req.UnitID,
		BedsAffected: len(beds),
		SlotsDeleted: deleted,
		Candidates:   candidateCount,
	}, nil
}

func validateRequest(req *Request) error {
	if req.UnitID <= 0 {
		return fmt.Errorf("%w: unitID must be positive", ErrInvalidInput)
	}
	if req.From.IsZero() || req.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidInput)
	}
	if !req.To.After(req.From) {
		return ErrInvalidInterval
	}
	if req.To.Sub(req.From).Hours() > resolve_policy.MaxRangeDays*24 {
		return fmt.Errorf("%w: range exceeds %d days", ErrInvalidInterval, resolve_policy.MaxRangeDays)
	}
	return nil
}

// generateCandidates and validatePartition mirror the slot generator: both
// use the same cutting rules so on-demand and administrative
// materialization agree.
func generateCandidates(bedID int64, segments []domain.PolicySegment, notBefore time.Time) []*domain.VisitSlot {
	candidates := make([]*domain.VisitSlot, 0)

	for _, seg := range segments {
		if !seg.Open || seg.SlotDurationMinutes <= 0 {
			continue
		}

		step := time.Duration(seg.SlotDurationMinutes) * time.Minute
		for start := alignToGrid(seg, step); ; start = start.Add(step) {
			end := start.Add(step)
			if end.After(seg.End) {
				break
			}
			if start.Before(notBefore) {
				continue
			}

			candidates = append(candidates, &domain.VisitSlot{
				BedID:            bedID,
				StartsAt:         start,
				EndsAt:           end,
				Status:           domain.SlotOpen,
				Capacity:         seg.Capacity,
				RequiresApproval: seg.RequiresApproval,
				RuleSetID:        seg.RuleSetID,
				ExceptionID:      seg.ExceptionID,
			})
		}
	}

	return candidates
}

func alignToGrid(seg domain.PolicySegment, step time.Duration) time.Time {
	if seg.WindowStart.IsZero() || !seg.WindowStart.Before(seg.Start) {
		return seg.Start
	}
	if rem := seg.Start.Sub(seg.WindowStart) % step; rem != 0 {
		return seg.Start.Add(step - rem)
	}
	return seg.Start
}

func validatePartition(from, to time.Time, segments []domain.PolicySegment) error {
	if len(segments) == 0 {
		return fmt.Errorf("%w: empty partition", ErrPolicyConflict)
	}
	if !segments[0].Start.Equal(from) {
		return fmt.Errorf("%w: partition starts at %s, want %s", ErrPolicyConflict, segments[0].Start, from)
	}
	for i := 0; i+1 < len(segments); i++ {
		if !segments[i].End.Equal(segments[i+1].Start) {
			return fmt.Errorf("%w: gap or overlap at %s", ErrPolicyConflict, segments[i].End)
		}
	}
	if !segments[len(segments)-1].End.Equal(to) {
		return fmt.Errorf("%w: partition ends at %s, want %s", ErrPolicyConflict, segments[len(segments)-1].End, to)
	}
	return nil
}
