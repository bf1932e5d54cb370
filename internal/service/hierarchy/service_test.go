package hierarchy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	locationRepo "github.com/vkotelnikov/HVS-VisitService/internal/infra/storage/locationunit"
	"github.com/vkotelnikov/HVS-VisitService/pkg/ptr"
)

type fakeLocationRepo struct {
	units map[int64]*domain.LocationUnit
}

func (f *fakeLocationRepo) GetByID(_ context.Context, id int64) (*domain.LocationUnit, error) {
	unit, ok := f.units[id]
	if !ok {
		return nil, locationRepo.ErrUnitNotFound
	}
	return unit, nil
}

func (f *fakeLocationRepo) ListByHospital(_ context.Context, hospitalID int64) ([]*domain.LocationUnit, error) {
	out := make([]*domain.LocationUnit, 0, len(f.units))
	for _, u := range f.units {
		if u.HospitalID == hospitalID {
			out = append(out, u)
		}
	}
	return out, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func testTree() map[int64]*domain.LocationUnit {
	return map[int64]*domain.LocationUnit{
		1: {ID: 1, HospitalID: 1, UnitType: domain.UnitBuilding, Active: true},
		2: {ID: 2, HospitalID: 1, ParentID: ptr.Ptr(int64(1)), UnitType: domain.UnitFloor, Active: true},
		3: {ID: 3, HospitalID: 1, ParentID: ptr.Ptr(int64(2)), UnitType: domain.UnitWard, Active: true},
		4: {ID: 4, HospitalID: 1, ParentID: ptr.Ptr(int64(3)), UnitType: domain.UnitRoom, Active: true},
		5: {ID: 5, HospitalID: 1, ParentID: ptr.Ptr(int64(4)), UnitType: domain.UnitBed, Active: true},
	}
}

func TestService_Ancestors(t *testing.T) {
	svc := NewService(&fakeLocationRepo{units: testTree()}, nopLogger{})

	chain, err := svc.Ancestors(context.Background(), 5)
	require.NoError(t, err)

	require.Len(t, chain, 5)
	ids := make([]int64, len(chain))
	for i, u := range chain {
		ids[i] = u.ID
	}
	assert.Equal(t, []int64{5, 4, 3, 2, 1}, ids, "most specific first")
	assert.Equal(t, domain.UnitBed, chain[0].UnitType)
	assert.Equal(t, domain.UnitBuilding, chain[4].UnitType)
}

func TestService_Ancestors_UnitNotFound(t *testing.T) {
	svc := NewService(&fakeLocationRepo{units: testTree()}, nopLogger{})

	_, err := svc.Ancestors(context.Background(), 99)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestService_Ancestors_BrokenParentLink(t *testing.T) {
	units := testTree()
	units[3].ParentID = ptr.Ptr(int64(42)) // dangling
	svc := NewService(&fakeLocationRepo{units: units}, nopLogger{})

	_, err := svc.Ancestors(context.Background(), 5)
	assert.ErrorIs(t, err, ErrUnitNotFound)
}

func TestService_Ancestors_CycleDetected(t *testing.T) {
	units := testTree()
	units[1].ParentID = ptr.Ptr(int64(4)) // building points back down
	svc := NewService(&fakeLocationRepo{units: units}, nopLogger{})

	_, err := svc.Ancestors(context.Background(), 5)
	assert.ErrorIs(t, err, ErrCycleDetected)
}

func TestService_IsActive(t *testing.T) {
	units := testTree()
	svc := NewService(&fakeLocationRepo{units: units}, nopLogger{})

	active, err := svc.IsActive(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, active)

	// Disabling the ward disables every bed beneath it.
	units[3].Active = false
	active, err = svc.IsActive(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, active)
}
