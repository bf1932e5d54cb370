package ruleset

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/dbmetrics"
	"github.com/vkotelnikov/HVS-VisitService/pkg/psqlbuilder"
)

// Repository reads versioned rule sets. The scheduling core never writes
// rule sets: authoring happens in the administrative collaborator, and this
// layer only consumes committed, active records.
type Repository struct {
	db DBExecutor
}

// NewRepository creates a rule-set repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveByScopes fetches active rule sets scoped to any of the given
// units whose effective window intersects [from, to).
func (r *Repository) GetActiveByScopes(ctx context.Context, scopeIDs []int64, from, to time.Time) ([]*domain.RuleSet, error) {
	if len(scopeIDs) == 0 {
		return []*domain.RuleSet{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope_unit_id",
		"status",
		"effective_from",
		"effective_to",
		"priority",
		"payload",
		"supersedes_id",
		"created_at",
		"updated_at",
	).
		From("rule_sets").
		Where(squirrel.Eq{"scope_unit_id": scopeIDs}).
		Where(squirrel.Eq{"status": domain.RuleSetActive}).
		Where(squirrel.Lt{"effective_from": to}).
		Where(squirrel.Or{
			squirrel.Eq{"effective_to": nil},
			squirrel.Gt{"effective_to": from},
		}).
		OrderBy("scope_unit_id ASC, priority DESC, effective_from DESC, created_at DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	ruleSets := make([]*domain.RuleSet, 0)
	for rows.Next() {
		rs, err := scanRuleSet(rows)
		if err != nil {
			return nil, err
		}
		ruleSets = append(ruleSets, rs)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetActiveByScopes - rows error: %v", ErrScanRow, err)
	}

	return ruleSets, nil
}

// GetByID fetches a rule set by identifier, regardless of status. Used to
// surface provenance details.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RuleSet, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"scope_unit_id",
		"status",
		"effective_from",
		"effective_to",
		"priority",
		"payload",
		"supersedes_id",
		"created_at",
		"updated_at",
	).
		From("rule_sets").
		Where(squirrel.Eq{"id": id}).
		ToSql()

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
		return nil, ErrRuleSetNotFound
	}

	return scanRuleSet(rows)
}

func scanRuleSet(rows *sql.Rows) (*domain.RuleSet, error) {
	var rs domain.RuleSet
	var effectiveTo sql.NullTime
	var supersedesID sql.NullInt64
	var payload []byte
	var createdAt, updatedAt sql.NullTime

	err := rows.Scan(
		&rs.ID,
		&rs.ScopeUnitID,
		&rs.Status,
		&rs.EffectiveFrom,
		&effectiveTo,
		&rs.Priority,
		&payload,
		&supersedesID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRuleSetNotFound
		}
		return nil, fmt.Errorf("%w: scan rule set: %v", ErrScanRow, err)
	}

	// Unknown payload fields are dropped here on purpose: the payload is a
	// forward-compatible policy document.
	if err := json.Unmarshal(payload, &rs.Payload); err != nil {
		return nil, fmt.Errorf("%w: rule set id=%d: %v", ErrDecodePayload, rs.ID, err)
	}

	if effectiveTo.Valid {
		rs.EffectiveTo = &effectiveTo.Time
	}
	if supersedesID.Valid {
		rs.SupersedesID = &supersedesID.Int64
	}
	rs.CreatedAt = createdAt.Time
	rs.UpdatedAt = updatedAt.Time

	return &rs, nil
}
