package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	locationRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/locationunit"
)

// Service resolves ancestor chains over the location-unit tree. It is a
// read-only traversal: the hospital's units are loaded once into an arena
// keyed by identifier and walked via parent links.
type Service struct {
	locationRepo LocationUnitRepository
	logger       Logger
}

// NewService creates a hierarchy service.
func NewService(locationRepo LocationUnitRepository, logger Logger) *Service {
	return &Service{
		locationRepo: locationRepo,
		logger:       logger,
	}
}

// Ancestors returns the chain from the given unit up to and including the
// building-level root, most specific first (the unit itself is first).
func (s *Service) Ancestors(ctx context.Context, unitID int64) ([]*domain.LocationUnit, error) {
	unit, err := s.getUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	arena, err := s.loadArena(ctx, unit.HospitalID)
	if err != nil {
		return nil, err
	}

	chain, err := walkUp(unit, arena)
	if err != nil {
		if errors.Is(err, ErrCycleDetected) {
			s.logger.Error("Ancestors: cycle detected walking up from unit id=%d", unitID)
		}
		return nil, err
	}

	return chain, nil
}

// IsActive reports whether the unit and every one of its ancestors are
// active. A disabled ward disables every bed beneath it.
func (s *Service) IsActive(ctx context.Context, unitID int64) (bool, error) {
	chain, err := s.Ancestors(ctx, unitID)
	if err != nil {
		return false, err
	}

	for _, unit := range chain {
		if !unit.Active {
			return false, nil
		}
	}
	return true, nil
}

func (s *Service) getUnit(ctx context.Context, unitID int64) (*domain.LocationUnit, error) {
	unit, err := s.locationRepo.GetByID(ctx, unitID)
	if err != nil {
		if errors.Is(err, locationRepo.ErrUnitNotFound) {
			s.logger.Warn("Ancestors: unit id=%d not found", unitID)
			return nil, ErrUnitNotFound
		}
		s.logger.Error("Ancestors: repository error for unit id=%d: %v", unitID, err)
		return nil, fmt.Errorf("%w: get unit: %v", ErrInternal, err)
	}
	return unit, nil
}

func (s *Service) loadArena(ctx context.Context, hospitalID int64) (map[int64]*domain.LocationUnit, error) {
	units, err := s.locationRepo.ListByHospital(ctx, hospitalID)
	if err != nil {
		s.logger.Error("Ancestors: failed to list units for hospital id=%d: %v", hospitalID, err)
		return nil, fmt.Errorf("%w: list hospital units: %v", ErrInternal, err)
	}

	arena := make(map[int64]*domain.LocationUnit, len(units))
	for _, u := range units {
		arena[u.ID] = u
	}
	return arena, nil
}

// walkUp follows parent links from unit to the root, detecting broken links
// and cycles.
func walkUp(unit *domain.LocationUnit, arena map[int64]*domain.LocationUnit) ([]*domain.LocationUnit, error) {
	chain := make([]*domain.LocationUnit, 0, 5)
	visited := make(map[int64]struct{}, 5)

	current := unit
	for {
		if _, seen := visited[current.ID]; seen {
			return nil, ErrCycleDetected
		}
		visited[current.ID] = struct{}{}
		chain = append(chain, current)

		if current.ParentID == nil {
			return chain, nil
		}

		parent, ok := arena[*current.ParentID]
		if !ok {
			return nil, fmt.Errorf("%w: parent id=%d of unit id=%d", ErrUnitNotFound, *current.ParentID, current.ID)
		}
		current = parent
	}
}
