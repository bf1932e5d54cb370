package locationunit

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/psqlbuilder"
)

const columns = "id, hospital_id, parent_id, unit_type, name, code, active, created_at, updated_at"

// Repository reads the location-unit relation. The hierarchy service builds
// the tree in memory; this layer only fetches rows.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a location-unit repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a single location unit.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.LocationUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectUnits().
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	unit, err := scanUnit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUnitNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan unit: %v", ErrScanRow, err)
	}

	return unit, nil
}

// ListByHospital fetches every unit of a hospital, ordered by identifier.
// The result is the arena the hierarchy service walks.
func (r *Repository) ListByHospital(ctx context.Context, hospitalID int64) ([]*domain.LocationUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectUnits().
		Where(squirrel.Eq{"hospital_id": hospitalID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHospital - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByHospital - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	units := make([]*domain.LocationUnit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByHospital - scan unit: %v", ErrScanRow, err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByHospital - rows error: %v", ErrScanRow, err)
	}

	return units, nil
}

// ListBedsUnder fetches all bed-type descendants of the given unit, the unit
// itself included when it is a bed. Used by slot regeneration over a ward or
// room scope.
func (r *Repository) ListBedsUnder(ctx context.Context, unitID int64) ([]*domain.LocationUnit, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Recursive descent over parent links.
	query := `
		WITH RECURSIVE descendants AS (
			SELECT ` + columns + ` FROM location_units WHERE id = $1
			UNION ALL
			SELECT u.id, u.hospital_id, u.parent_id, u.unit_type, u.name, u.code, u.active, u.created_at, u.updated_at
			FROM location_units u
			JOIN descendants d ON u.parent_id = d.id
		)
		SELECT ` + columns + ` FROM descendants WHERE unit_type = $2 ORDER BY id ASC`

	rows, err := executor.QueryContext(ctx, query, unitID, domain.UnitBed)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBedsUnder - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	beds := make([]*domain.LocationUnit, 0)
	for rows.Next() {
		unit, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListBedsUnder - scan unit: %v", ErrScanRow, err)
		}
		beds = append(beds, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBedsUnder - rows error: %v", ErrScanRow, err)
	}

	return beds, nil
}

func selectUnits() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"hospital_id",
		"parent_id",
		"unit_type",
		"name",
		"code",
		"active",
		"created_at",
		"updated_at",
	).From("location_units")
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUnit(row rowScanner) (*domain.LocationUnit, error) {
	var unit domain.LocationUnit
	var parentID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&unit.ID,
		&unit.HospitalID,
		&parentID,
		&unit.UnitType,
		&unit.Name,
		&unit.Code,
		&unit.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if parentID.Valid {
		unit.ParentID = &parentID.Int64
	}
	unit.CreatedAt = createdAt.Time
	unit.UpdatedAt = updatedAt.Time

	return &unit, nil
}
