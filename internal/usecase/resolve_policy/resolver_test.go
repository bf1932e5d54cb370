package resolve_policy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkotelnikov/HVS-VisitService/internal/domain"
	"github.com/vkotelnikov/HVS-VisitService/pkg/ptr"
	"github.com/vkotelnikov/HVS-VisitService/pkg/types"
)

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func at(d, hour, minute int) time.Time {
	return time.Date(2026, 9, d, hour, minute, 0, 0, time.UTC)
}

func dailyPayload(start, end string, capacity, duration int) domain.RulePayload {
	return domain.RulePayload{
		Windows:             []domain.VisitWindow{{Start: types.TimeString(start), End: types.TimeString(end)}},
		Capacity:            capacity,
		SlotDurationMinutes: duration,
	}
}

func requirePartition(t *testing.T, from, to time.Time, segments []domain.PolicySegment) {
	t.Helper()
	require.NotEmpty(t, segments)
	assert.True(t, segments[0].Start.Equal(from), "partition starts at %s, want %s", segments[0].Start, from)
	for i := 0; i+1 < len(segments); i++ {
		assert.True(t, segments[i].End.Equal(segments[i+1].Start),
			"segment %d ends at %s, segment %d starts at %s", i, segments[i].End, i+1, segments[i+1].Start)
	}
	assert.True(t, segments[len(segments)-1].End.Equal(to), "partition ends at %s, want %s",
		segments[len(segments)-1].End, to)
}

func TestResolveSegments_NoRulesClosedByDefault(t *testing.T) {
	from, to := day(1), day(3)

	segments := resolveSegments(from, to, time.UTC, nil, nil)

	requirePartition(t, from, to, segments)
	require.Len(t, segments, 1, "uniform decision merges into one segment")
	assert.False(t, segments[0].Open)
	assert.Nil(t, segments[0].RuleSetID, "closed by default carries no provenance")
	assert.Nil(t, segments[0].ExceptionID)
}

func TestResolveSegments_SingleDailyWindow(t *testing.T) {
	from, to := day(1), day(2)

	ward := &domain.RuleSet{
		ID:            10,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
		CreatedAt:     day(1).AddDate(0, -1, 0),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: ward, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	require.Len(t, segments, 3)

	assert.False(t, segments[0].Open)
	assert.Equal(t, int64(10), *segments[0].RuleSetID, "closed under a covering rule keeps its provenance")

	open := segments[1]
	assert.True(t, open.Open)
	assert.True(t, open.Start.Equal(at(1, 10, 0)))
	assert.True(t, open.End.Equal(at(1, 12, 0)))
	assert.Equal(t, 1, open.Capacity)
	assert.Equal(t, 30, open.SlotDurationMinutes)
	assert.Equal(t, int64(10), *open.RuleSetID)

	assert.False(t, segments[2].Open)
}

func TestResolveSegments_SpecificityBeatsPriority(t *testing.T) {
	from, to := day(1), day(2)

	ward := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Priority:      10,
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}
	room := &domain.RuleSet{
		ID:            2,
		ScopeUnitID:   4,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Priority:      0,
		Payload:       dailyPayload("10:00", "12:00", 2, 20),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{
		{rs: ward, specificity: 3},
		{rs: room, specificity: 4},
	}, nil)

	requirePartition(t, from, to, segments)
	open := segments[1]
	require.True(t, open.Open)
	assert.Equal(t, 2, open.Capacity, "room-level rule wins despite lower priority")
	assert.Equal(t, 20, open.SlotDurationMinutes)
	assert.Equal(t, int64(2), *open.RuleSetID)
}

func TestResolveSegments_PriorityWithinSameScope(t *testing.T) {
	from, to := day(1), day(2)

	low := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Priority:      0,
		Payload:       dailyPayload("08:00", "20:00", 1, 30),
	}
	high := &domain.RuleSet{
		ID:            2,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Priority:      5,
		Payload:       dailyPayload("10:00", "12:00", 2, 30),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{
		{rs: low, specificity: 3},
		{rs: high, specificity: 3},
	}, nil)

	requirePartition(t, from, to, segments)
	for _, seg := range segments {
		if seg.Open {
			// The higher-priority rule decides everywhere it is effective,
			// so only its window opens.
			assert.True(t, seg.Start.Equal(at(1, 10, 0)))
			assert.True(t, seg.End.Equal(at(1, 12, 0)))
			assert.Equal(t, int64(2), *seg.RuleSetID)
		}
	}
}

func TestResolveSegments_BlackoutSplitsOpenWindow(t *testing.T) {
	from, to := day(1), day(2)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "18:00", 1, 30),
	}
	blackout := &domain.RuleException{
		ID:          100,
		ScopeUnitID: 3,
		Kind:        domain.ExceptionBlackout,
		StartsAt:    at(1, 14, 0),
		EndsAt:      at(1, 16, 0),
		CreatedAt:   day(1).AddDate(0, 0, -1),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: rule, specificity: 3}},
		[]*domain.RuleException{blackout})

	requirePartition(t, from, to, segments)
	require.Len(t, segments, 5)

	assert.True(t, segments[1].Open)
	assert.True(t, segments[1].End.Equal(at(1, 14, 0)))

	closed := segments[2]
	assert.False(t, closed.Open)
	assert.True(t, closed.Start.Equal(at(1, 14, 0)))
	assert.True(t, closed.End.Equal(at(1, 16, 0)))
	assert.Equal(t, int64(100), *closed.ExceptionID)
	assert.Nil(t, closed.RuleSetID)

	assert.True(t, segments[3].Open)
	assert.True(t, segments[3].Start.Equal(at(1, 16, 0)))
	assert.True(t, segments[3].End.Equal(at(1, 18, 0)))
}

func TestResolveSegments_ExtraOpenOutsideWindows(t *testing.T) {
	from, to := day(1), day(2)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}
	extra := &domain.RuleException{
		ID:               200,
		ScopeUnitID:      3,
		Kind:             domain.ExceptionExtraOpen,
		StartsAt:         at(1, 20, 0),
		EndsAt:           at(1, 21, 0),
		OverrideCapacity: ptr.Ptr(2),
		CreatedAt:        day(1).AddDate(0, 0, -1),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: rule, specificity: 3}},
		[]*domain.RuleException{extra})

	requirePartition(t, from, to, segments)

	var opened *domain.PolicySegment
	for i := range segments {
		if segments[i].Open && segments[i].ExceptionID != nil {
			opened = &segments[i]
		}
	}
	require.NotNil(t, opened)
	assert.True(t, opened.Start.Equal(at(1, 20, 0)))
	assert.True(t, opened.End.Equal(at(1, 21, 0)))
	assert.Equal(t, 2, opened.Capacity)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, opened.SlotDurationMinutes,
		"no open base policy underneath, default slot length applies")
	assert.Nil(t, opened.RuleSetID)
}

func TestResolveSegments_LatestCreatedExceptionWins(t *testing.T) {
	from, to := day(1), day(2)

	older := &domain.RuleException{
		ID:        1,
		Kind:      domain.ExceptionExtraOpen,
		StartsAt:  at(1, 14, 0),
		EndsAt:    at(1, 16, 0),
		CreatedAt: at(1, 9, 0),
	}
	newer := &domain.RuleException{
		ID:        2,
		Kind:      domain.ExceptionBlackout,
		StartsAt:  at(1, 14, 0),
		EndsAt:    at(1, 16, 0),
		CreatedAt: at(1, 11, 0),
	}

	segments := resolveSegments(from, to, time.UTC, nil, []*domain.RuleException{older, newer})

	requirePartition(t, from, to, segments)
	for _, seg := range segments {
		assert.False(t, seg.Open, "the newer blackout overrides the older extra_open")
		if seg.ExceptionID != nil {
			assert.Equal(t, int64(2), *seg.ExceptionID)
		}
	}
}

func TestResolveSegments_EffectiveFromMidRange(t *testing.T) {
	from, to := day(1), day(3)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(2),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: rule, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	for _, seg := range segments {
		if seg.Open {
			assert.False(t, seg.Start.Before(day(2)), "rule must not open before it takes effect")
		}
	}
}

func TestResolveSegments_HospitalTimezone(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Moscow") // UTC+3, no DST
	require.NoError(t, err)

	from, to := day(1), day(2)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}

	segments := resolveSegments(from, to, loc, []scopedRuleSet{{rs: rule, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	var open *domain.PolicySegment
	for i := range segments {
		if segments[i].Open {
			open = &segments[i]
		}
	}
	require.NotNil(t, open)
	assert.True(t, open.Start.Equal(at(1, 7, 0)), "10:00 Moscow is 07:00 UTC, got %s", open.Start)
	assert.True(t, open.End.Equal(at(1, 9, 0)))
}

func TestResolveSegments_ClampedRangeKeepsWindowAnchor(t *testing.T) {
	from, to := at(1, 10, 15), at(1, 12, 0)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: rule, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	require.Len(t, segments, 1)
	open := segments[0]
	require.True(t, open.Open)
	assert.True(t, open.Start.Equal(at(1, 10, 15)), "segment clamps to the requested range")
	assert.True(t, open.WindowStart.Equal(at(1, 10, 0)),
		"anchor stays at the window start, got %s", open.WindowStart)
}

func TestResolveSegments_ExtraOpenAnchorsAtExceptionStart(t *testing.T) {
	from, to := at(1, 20, 30), at(1, 22, 0)

	extra := &domain.RuleException{
		ID:        200,
		Kind:      domain.ExceptionExtraOpen,
		StartsAt:  at(1, 20, 0),
		EndsAt:    at(1, 21, 0),
		CreatedAt: day(1).AddDate(0, 0, -1),
	}

	segments := resolveSegments(from, to, time.UTC, nil, []*domain.RuleException{extra})

	requirePartition(t, from, to, segments)
	open := segments[0]
	require.True(t, open.Open)
	assert.True(t, open.Start.Equal(at(1, 20, 30)))
	assert.True(t, open.WindowStart.Equal(at(1, 20, 0)))
}

func TestResolveSegments_DSTTransitionDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// 2026-03-08: clocks jump from 02:00 EST to 03:00 EDT, so this local
	// day is 23 hours long and midnight-plus-duration arithmetic drifts.
	from := time.Date(2026, 3, 8, 0, 0, 0, 0, loc)
	to := from.AddDate(0, 0, 1)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: from.AddDate(0, -1, 0),
		Payload:       dailyPayload("10:00", "12:00", 1, 30),
	}

	segments := resolveSegments(from, to, loc, []scopedRuleSet{{rs: rule, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	var open *domain.PolicySegment
	for i := range segments {
		if segments[i].Open {
			open = &segments[i]
		}
	}
	require.NotNil(t, open)
	assert.True(t, open.Start.Equal(time.Date(2026, 3, 8, 10, 0, 0, 0, loc)),
		"window opens at 10:00 wall clock, got %s", open.Start.In(loc))
	assert.Equal(t, 14, open.Start.UTC().Hour(), "10:00 EDT is 14:00 UTC")
	assert.True(t, open.End.Equal(time.Date(2026, 3, 8, 12, 0, 0, 0, loc)))
}

func TestResolveSegments_EndOfDayWindow(t *testing.T) {
	from, to := day(1), day(2)

	rule := &domain.RuleSet{
		ID:            1,
		ScopeUnitID:   3,
		EffectiveFrom: day(1).AddDate(0, -1, 0),
		Payload:       dailyPayload("22:00", "24:00", 1, 30),
	}

	segments := resolveSegments(from, to, time.UTC, []scopedRuleSet{{rs: rule, specificity: 3}}, nil)

	requirePartition(t, from, to, segments)
	last := segments[len(segments)-1]
	assert.True(t, last.Open)
	assert.True(t, last.Start.Equal(at(1, 22, 0)))
	assert.True(t, last.End.Equal(day(2)), "24:00 runs to the next midnight")
}
