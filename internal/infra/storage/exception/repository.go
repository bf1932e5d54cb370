package exception

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/psqlbuilder"
)

// Repository reads rule exceptions. Like rule sets, exceptions are authored
// by the administrative collaborator; this layer only consumes them.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an exception repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByScopes fetches active exceptions scoped to any of the given
// units whose window intersects [from, to).
func (r *Repository) GetActiveByScopes(ctx context.Context, scopeIDs []int64, from, to time.Time) ([]*domain.RuleException, error) {
	if len(scopeIDs) == 0 {
		return []*domain.RuleException{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope_unit_id",
		"kind",
		"status",
		"starts_at",
		"ends_at",
		"override_capacity",
		"reason",
		"supersedes_id",
		"created_at",
		"updated_at",
	).
		From("rule_exceptions").
		Where(squirrel.Eq{"scope_unit_id": scopeIDs}).
		Where(squirrel.Eq{"status": domain.ExceptionActive}).
		Where(squirrel.Lt{"starts_at": to}).
		Where(squirrel.Gt{"ends_at": from}).
		OrderBy("created_at ASC, id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	exceptions := make([]*domain.RuleException, 0)
	for rows.Next() {
		var exc domain.RuleException
		var overrideCapacity sql.NullInt64
		var reason sql.NullString
		var supersedesID sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&exc.ID,
			&exc.ScopeUnitID,
			&exc.Kind,
			&exc.Status,
			&exc.StartsAt,
			&exc.EndsAt,
			&overrideCapacity,
			&reason,
			&supersedesID,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetActiveByScopes - scan exception: %v", ErrScanRow, err)
		}

		if overrideCapacity.Valid {
			capacity := int(overrideCapacity.Int64)
			exc.OverrideCapacity = &capacity
		}
		if reason.Valid {
			exc.Reason = &reason.String
		}
		if supersedesID.Valid {
			exc.SupersedesID = &supersedesID.Int64
		}
		exc.CreatedAt = createdAt.Time
		exc.UpdatedAt = updatedAt.Time

		exceptions = append(exceptions, &exc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - rows error: %v", ErrScanRow, err)
	}

	return exceptions, nil
}
