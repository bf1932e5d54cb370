package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitType_Specificity(t *testing.T) {
	ordered := []UnitType{UnitBuilding, UnitFloor, UnitWard, UnitRoom, UnitBed}
	for i := 1; i < len(ordered); i++ {
		assert.Greater(t, ordered[i].Specificity(), ordered[i-1].Specificity(),
			"%s must be more specific than %s", ordered[i], ordered[i-1])
	}

	assert.True(t, UnitWard.IsValid())
	assert.False(t, UnitType("wing").IsValid())
	assert.Zero(t, UnitType("wing").Specificity())
}

func TestLocationUnit_CanParent(t *testing.T) {
	ward := &LocationUnit{UnitType: UnitWard}

	assert.True(t, ward.CanParent(UnitRoom))
	assert.True(t, ward.CanParent(UnitBed))
	assert.False(t, ward.CanParent(UnitWard))
	assert.False(t, ward.CanParent(UnitFloor))
}

func TestLocationUnit_IsRoot(t *testing.T) {
	building := &LocationUnit{UnitType: UnitBuilding}
	assert.True(t, building.IsRoot())

	parent := int64(1)
	floor := &LocationUnit{UnitType: UnitFloor, ParentID: &parent}
	assert.False(t, floor.IsRoot())
}

func TestHospital_Location(t *testing.T) {
	assert.Equal(t, "UTC", (&Hospital{}).Location().String())
	assert.Equal(t, "UTC", (&Hospital{Timezone: "Mars/Olympus"}).Location().String())

	loc := (&Hospital{Timezone: "Europe/Moscow"}).Location()
	assert.Equal(t, "Europe/Moscow", loc.String())
}
