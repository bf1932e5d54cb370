package domain

import "time"

// UnitType is the level of a location unit in the hospital tree.
// Specificity strictly increases from building down to bed.
type UnitType string

const (
	UnitBuilding UnitType = "building"
	UnitFloor    UnitType = "floor"
	UnitWard     UnitType = "ward"
	UnitRoom     UnitType = "room"
	UnitBed      UnitType = "bed"
)

// unitSpecificity orders unit types from least (building) to most (bed) specific.
var unitSpecificity = map[UnitType]int{
	UnitBuilding: 1,
	UnitFloor:    2,
	UnitWard:     3,
	UnitRoom:     4,
	UnitBed:      5,
}

// Specificity returns the specificity rank of the unit type (higher = more
// specific). Unknown types rank below building.
func (t UnitType) Specificity() int {
	return unitSpecificity[t]
}

// IsValid returns true for a known unit type.
func (t UnitType) IsValid() bool {
	_, ok := unitSpecificity[t]
	return ok
}

// Hospital is the root scope of a location tree. Its timezone defines how
// the wall-clock visiting windows of rule payloads are interpreted.
type Hospital struct {
	ID       int64
	Name     string
	Timezone string // IANA name, e.g. "Europe/Moscow"

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location returns the hospital's *time.Location, falling back to UTC when
// the timezone name is empty or unknown.
func (h *Hospital) Location() *time.Location {
	if h.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(h.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// LocationUnit is one node in a hospital's building → floor → ward → room →
// bed tree. A unit's parent must be strictly less specific than the unit
// itself. Units are soft-disabled via Active, never hard-deleted while
// appointments reference them transitively.
type LocationUnit struct {
	ID         int64
	HospitalID int64
	ParentID   *int64 // nil for building-level roots
	UnitType   UnitType
	Name       string
	Code       string
	Active     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsRoot returns true when the unit has no parent.
func (u *LocationUnit) IsRoot() bool {
	return u.ParentID == nil
}

// CanParent reports whether u may be the parent of a unit of type child:
// the parent's type must be strictly less specific.
func (u *LocationUnit) CanParent(child UnitType) bool {
	return u.UnitType.Specificity() < child.Specificity()
}
