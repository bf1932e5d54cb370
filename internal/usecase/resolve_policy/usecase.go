package resolve_policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/internal/service/hierarchy"
)

// UseCase resolves the effective visiting policy for a bed over an interval.
// Resolution is a pure function of the current rule and exception state:
// it performs no mutation and is safe under concurrent invocation.
type UseCase struct {
	hierarchy     HierarchyService
	hospitalRepo  HospitalRepository
	ruleSetRepo   RuleSetRepository
	exceptionRepo ExceptionRepository
	logger        Logger
}

// NewUseCase creates the resolve-policy use case.
func NewUseCase(
	hierarchySvc HierarchyService,
	hospitalRepo HospitalRepository,
	ruleSetRepo RuleSetRepository,
	exceptionRepo ExceptionRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		hierarchy:     hierarchySvc,
		hospitalRepo:  hospitalRepo,
		ruleSetRepo:   ruleSetRepo,
		exceptionRepo: exceptionRepo,
		logger:        logger,
	}
}

// Execute resolves the policy for req.BedID over [req.From, req.To).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ResolvePolicy: bed=%d, from=%s, to=%s",
		req.BedID, req.From.Format(domain.InstantFormat), req.To.Format(domain.InstantFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ResolvePolicy: validation failed: %v", err)
		return nil, err
	}

	// 1. Ancestor chain, most specific first. Chain position gives each
	//    scope its specificity rank.
	chain, err := uc.hierarchy.Ancestors(ctx, req.BedID)
	if err != nil {
		switch {
		case errors.Is(err, hierarchy.ErrUnitNotFound):
			uc.logger.Warn("ResolvePolicy: bed id=%d not found", req.BedID)
			return nil, ErrBedNotFound
		case errors.Is(err, hierarchy.ErrCycleDetected):
			uc.logger.Error("ResolvePolicy: cycle detected resolving bed id=%d", req.BedID)
			return nil, ErrCycleDetected
		}
		uc.logger.Error("ResolvePolicy: hierarchy error for bed id=%d: %v", req.BedID, err)
		return nil, fmt.Errorf("%w: resolve ancestors: %v", ErrInternal, err)
	}

	bed := chain[0]
	if bed.UnitType != domain.UnitBed {
		uc.logger.Warn("ResolvePolicy: unit id=%d is a %s, not a bed", req.BedID, bed.UnitType)
		return nil, ErrNotABed
	}

	// 2. Hospital timezone for daily window interpretation.
	hosp, err := uc.hospitalRepo.GetByID(ctx, bed.HospitalID)
	if err != nil {
		uc.logger.Error("ResolvePolicy: failed to get hospital id=%d: %v", bed.HospitalID, err)
		return nil, fmt.Errorf("%w: get hospital: %v", ErrInternal, err)
	}
	loc := hosp.Location()

	// 3. Collect candidates across the whole chain.
	scopeIDs := make([]int64, len(chain))
	specificityByScope := make(map[int64]int, len(chain))
	for i, unit := range chain {
		scopeIDs[i] = unit.ID
		specificityByScope[unit.ID] = unit.UnitType.Specificity()
	}

	ruleSets, err := uc.ruleSetRepo.GetActiveByScopes(ctx, scopeIDs, req.From, req.To)
	if err != nil {
		uc.logger.Error("ResolvePolicy: failed to get rule sets for bed id=%d: %v", req.BedID, err)
		return nil, fmt.Errorf("%w: get rule sets: %v", ErrInternal, err)
	}

	exceptions, err := uc.exceptionRepo.GetActiveByScopes(ctx, scopeIDs, req.From, req.To)
	if err != nil {
		uc.logger.Error("ResolvePolicy: failed to get exceptions for bed id=%d: %v", req.BedID, err)
		return nil, fmt.Errorf("%w: get exceptions: %v", ErrInternal, err)
	}

	candidates := make([]scopedRuleSet, 0, len(ruleSets))
	for _, rs := range ruleSets {
		candidates = append(candidates, scopedRuleSet{
			rs:          rs,
			specificity: specificityByScope[rs.ScopeUnitID],
		})
	}

	// 4. Deterministic merge.
	segments := resolveSegments(req.From, req.To, loc, candidates, exceptions)

	uc.logger.Info("ResolvePolicy: bed=%d resolved to %d segments (%d rule sets, %d exceptions)",
		req.BedID, len(segments), len(ruleSets), len(exceptions))

	return &Response{
		BedID:    req.BedID,
		Timezone: hosp.Timezone,
		From:     req.From,
		To:       req.To,
		Segments: segments,
	}, nil
}
