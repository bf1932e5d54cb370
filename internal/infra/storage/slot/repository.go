package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/psqlbuilder"
)

// Repository persists materialized visit slots. The unique constraint on
// (bed_id, starts_at, ends_at) is what makes materialization idempotent.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a visit-slot repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a slot by identifier. Inside a transaction the row is
// locked with FOR UPDATE so concurrent bookers on the same slot serialize.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectSlots().Where(squirrel.Eq{"id": id})
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("%w: GetByID - rows error: %v", ErrScanRow, err)
		}
		return nil, ErrSlotNotFound
	}

	slot, err := scanSlot(rows)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}
	return slot, nil
}

// GetByBedAndRange fetches every slot for the bed overlapping [from, to),
// ordered by start.
func (r *Repository) GetByBedAndRange(ctx context.Context, bedID int64, from, to time.Time) ([]*domain.VisitSlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectSlots().
		Where(squirrel.Eq{"bed_id": bedID}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("starts_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBedAndRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByBedAndRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.VisitSlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByBedAndRange - scan slot: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByBedAndRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// UpsertMany inserts slot candidates, silently skipping rows that collide on
// (bed_id, starts_at, ends_at). Existing slots, blocked ones in particular,
// are never modified by regeneration.
func (r *Repository) UpsertMany(ctx context.Context, slots []*domain.VisitSlot) error {
	if len(slots) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("visit_slots").
		Columns(
			"bed_id",
			"starts_at",
			"ends_at",
			"status",
			"capacity",
			"requires_approval",
			"rule_set_id",
			"exception_id",
		)

	for _, s := range slots {
		insertBuilder = insertBuilder.Values(
			s.BedID,
			s.StartsAt,
			s.EndsAt,
			s.Status,
			s.Capacity,
			s.RequiresApproval,
			s.RuleSetID,
			s.ExceptionID,
		)
	}

	query, args, err := insertBuilder.
		Suffix("ON CONFLICT (bed_id, starts_at, ends_at) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertMany - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertMany - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// UpdateStatus flips a slot between open and blocked.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SlotStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("visit_slots").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// DeleteRegenerable removes open slots of the given beds starting in
// [from, to) that hold no active appointment. Past slots are excluded by the
// caller passing from >= now; blocked and booked slots survive regeneration.
func (r *Repository) DeleteRegenerable(ctx context.Context, bedIDs []int64, from, to time.Time) (int64, error) {
	if len(bedIDs) == 0 {
		return 0, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("visit_slots").
		Where(squirrel.Eq{"bed_id": bedIDs}).
		Where(squirrel.GtOrEq{"starts_at": from}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Eq{"status": domain.SlotOpen}).
		Where(squirrel.Expr(
			"NOT EXISTS (SELECT 1 FROM appointments a WHERE a.slot_id = visit_slots.id AND a.status = ANY(?))",
			pq.Array(activeStatusStrings()),
		)).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRegenerable - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRegenerable - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteRegenerable - get rows affected: %v", ErrExecQuery, err)
	}

	return deleted, nil
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

func selectSlots() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"id",
		"bed_id",
		"starts_at",
		"ends_at",
		"status",
		"capacity",
		"requires_approval",
		"rule_set_id",
		"exception_id",
		"created_at",
		"updated_at",
	).From("visit_slots")
}

func scanSlot(rows *sql.Rows) (*domain.VisitSlot, error) {
	var s domain.VisitSlot
	var ruleSetID, exceptionID sql.NullInt64
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&s.ID,
		&s.BedID,
		&s.StartsAt,
		&s.EndsAt,
		&s.Status,
		&s.Capacity,
		&s.RequiresApproval,
		&ruleSetID,
		&exceptionID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if ruleSetID.Valid {
		s.RuleSetID = &ruleSetID.Int64
	}
	if exceptionID.Valid {
		s.ExceptionID = &exceptionID.Int64
	}
	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}
